package config

import (
	"flag"
	"os"

	"httpshare/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line
// flags, mirroring the original tool's surface (directory, port, host).
//
// Supported flags:
//
//	-d string   directory to serve
//	-p int      port to listen on
//	-H string   host to bind
//	-u string   upload directory
//	-n          disable the terminal monitor
//	-mint-token string  print a bearer token for the given subject and exit
//
// Only the flags handled here are parsed (via flagx.FilterArgs), so flags
// owned by other layers never collide.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-p", "-H", "-u", "-n", "-mint-token"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.Dir, "d", config.Dir, "directory to serve")
	fs.IntVar(&config.Port, "p", config.Port, "port to listen on")
	fs.StringVar(&config.Host, "H", config.Host, "host to bind")
	fs.StringVar(&config.UploadDir, "u", config.UploadDir, "upload directory")
	fs.BoolVar(&config.NoTUI, "n", config.NoTUI, "disable the terminal monitor")
	fs.StringVar(&config.MintTokenSubject, "mint-token", "", "print a bearer token for the given subject and exit")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
