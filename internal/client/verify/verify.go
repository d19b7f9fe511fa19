// Package verify runs the whole upload round-trip check: send a file to the
// server over a raw TCP connection, print the first line of the reply, then
// compare checksums of the source and the server-written copy. The flow is
// strictly sequential, with no retries; the output file is removed
// unconditionally at the end of a run.
package verify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"httpshare/internal/checksum"
	"httpshare/internal/client/config"
	"httpshare/internal/client/rawhttp"
	"httpshare/internal/common"
)

// Result captures the outcome of one round-trip check.
type Result struct {
	// FileName is the positional argument the check ran against.
	FileName string
	// StatusLine is the first line of the server's reply, verbatim.
	StatusLine string
	// SourceSum / OutputSum are the hex digests compared for equality.
	SourceSum string
	OutputSum string
	// Match is true when the two digests are byte-identical.
	Match bool
}

// Runner wires the configuration to the individual steps. Output (status
// line, pass/fail report) goes to the reporter.
type Runner struct {
	cfg    *config.Config
	report *Reporter
}

func New(cfg *config.Config, report *Reporter) *Runner {
	return &Runner{cfg: cfg, report: report}
}

// outputPath resolves where the server is expected to have written the
// received copy. A relative OutputDir is taken relative to BaseDir.
func (r *Runner) outputPath(name string) string {
	dir := r.cfg.OutputDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(r.cfg.BaseDir, dir)
	}
	return filepath.Join(dir, filepath.Base(name))
}

// Run performs the check for the named file (relative to BaseDir) and
// returns the Result. A checksum mismatch is not an error; any failed step
// is.
func (r *Runner) Run(ctx context.Context, name string) (*Result, error) {
	src := filepath.Join(r.cfg.BaseDir, name)

	fi, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("source file: %w", err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("source file %s: is a directory", src)
	}

	sourceSum, err := checksum.File(r.cfg.Algorithm, src)
	if err != nil {
		return nil, fmt.Errorf("checksum source: %w", err)
	}

	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	upload := &rawhttp.Upload{
		Host:      r.cfg.Addr(),
		Path:      r.cfg.TargetPath,
		Boundary:  r.cfg.Boundary,
		Field:     common.UploadFieldName,
		FileName:  filepath.Base(name),
		FileSize:  fi.Size(),
		AuthToken: r.cfg.AuthToken,
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.DialTimeout)
	defer cancel()

	statusLine, err := rawhttp.Do(ctx, r.cfg.Addr(), upload, f)
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	r.report.StatusLine(statusLine)

	out := r.outputPath(name)
	// The output file goes away no matter how the comparison ends.
	defer os.Remove(out)

	outputSum, err := checksum.File(r.cfg.Algorithm, out)
	if err != nil {
		return nil, fmt.Errorf("checksum output: %w", err)
	}

	res := &Result{
		FileName:   name,
		StatusLine: statusLine,
		SourceSum:  sourceSum,
		OutputSum:  outputSum,
		Match:      sourceSum == outputSum,
	}
	r.report.Result(res)

	return res, nil
}
