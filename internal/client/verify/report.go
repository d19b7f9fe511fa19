package verify

import (
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
	"golang.org/x/term"
)

// Reporter prints check progress and the final pass/fail verdict. Colors
// are dropped automatically when the destination is not a terminal.
type Reporter struct {
	w     io.Writer
	color bool
}

// NewReporter builds a Reporter writing to w. Color is enabled only when w
// is os.Stdout or os.Stderr attached to a terminal.
func NewReporter(w io.Writer) *Reporter {
	enabled := false
	if f, ok := w.(*os.File); ok {
		enabled = term.IsTerminal(int(f.Fd()))
	}
	return &Reporter{w: w, color: enabled}
}

// StatusLine echoes the first line of the server's reply.
func (r *Reporter) StatusLine(line string) {
	fmt.Fprintln(r.w, line)
}

// Result prints the verdict. On mismatch both digests are listed so the
// difference is visible in logs.
func (r *Reporter) Result(res *Result) {
	if res.Match {
		fmt.Fprintln(r.w, r.paint(color.Green, fmt.Sprintf("PASS: %s round-tripped intact (%s)", res.FileName, res.SourceSum)))
		return
	}

	fmt.Fprintln(r.w, r.paint(color.Red, fmt.Sprintf("FAIL: %s corrupted in transit", res.FileName)))
	fmt.Fprintf(r.w, "  source: %s\n", res.SourceSum)
	fmt.Fprintf(r.w, "  output: %s\n", res.OutputSum)
}

// Error reports a failed step.
func (r *Reporter) Error(err error) {
	fmt.Fprintln(r.w, r.paint(color.Red, fmt.Sprintf("ERROR: %v", err)))
}

func (r *Reporter) paint(c color.Color, s string) string {
	if !r.color {
		return s
	}
	return c.Render(s)
}
