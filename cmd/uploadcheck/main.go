// Command uploadcheck uploads one file to a running httpshare server by
// hand-building a multipart HTTP/1.0 request over a raw TCP connection,
// prints the first line of the reply, and verifies that the copy the server
// wrote is byte-identical to the source via checksum comparison. The copy is
// deleted when the check finishes, pass or fail.
//
// Usage:
//
//	uploadcheck [flags] <file>
//
// The file name is resolved against UPLOAD_BASE_DIR. UPLOAD_BOUNDARY and
// UPLOAD_PORT come from the environment (optionally via a .env file); see
// internal/client/config for the full surface.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"httpshare/internal/client/config"
	"httpshare/internal/client/verify"
	"httpshare/internal/flagx"
)

func main() {
	_ = godotenv.Load()

	report := verify.NewReporter(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		report.Error(err)
		os.Exit(1)
	}

	names := flagx.NonFlagArgs(os.Args[1:], config.ValueFlags)
	if len(names) != 1 {
		fmt.Fprintln(os.Stderr, "usage: uploadcheck [flags] <file>")
		os.Exit(2)
	}

	runner := verify.New(cfg, report)

	// A mismatch is reported but keeps the exit code at zero; only a
	// failed step (missing file, refused connection, absent output file)
	// is fatal.
	if _, err := runner.Run(context.Background(), names[0]); err != nil {
		report.Error(err)
		os.Exit(1)
	}
}
