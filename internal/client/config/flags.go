package config

import (
	"flag"
	"os"

	"httpshare/internal/checksum"
	"httpshare/internal/flagx"
)

// ValueFlags lists the flags that take a value; the positional file argument
// is whatever remains after these are stripped.
var ValueFlags = []string{"-H", "-p", "-d", "-o", "-b", "-a", "-t"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-H string   server host
//	-p int      server port
//	-d string   base directory the file argument is resolved against
//	-o string   directory the server writes received files into
//	-b string   multipart boundary token
//	-a string    checksum algorithm (md5, sha256, blake2b)
//	-t duration  dial timeout (e.g. 10s)
//
// Only the flags listed here are parsed (via flagx.FilterArgs), so the
// positional file name never confuses the flag set.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], ValueFlags)

	fs := flag.NewFlagSet("uploadcheck", flag.ContinueOnError)

	fs.StringVar(&config.Host, "H", config.Host, "server host")
	fs.IntVar(&config.Port, "p", config.Port, "server port")
	fs.StringVar(&config.BaseDir, "d", config.BaseDir, "base directory")
	fs.StringVar(&config.OutputDir, "o", config.OutputDir, "server output directory")
	fs.StringVar(&config.Boundary, "b", config.Boundary, "multipart boundary token")

	fs.DurationVar(&config.DialTimeout, "t", config.DialTimeout, "dial timeout (e.g. 10s)")

	algorithm := fs.String("a", string(config.Algorithm), "checksum algorithm")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.Algorithm = checksum.Algorithm(*algorithm)
}
