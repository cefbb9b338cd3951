// Package ui renders run progress and summaries to the terminal.
package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

// Stats summarizes one completed indexing run for display.
type Stats struct {
	Documents int
	Added     int
	Removed   int
	Modified  int
	Unchanged int
	Tokens    int
	Warnings  int
	ColdStart bool
	Duration  time.Duration
}

// Renderer writes plain-text output, with color only when the writer is
// a terminal.
type Renderer struct {
	out   io.Writer
	color bool
}

// NewRenderer creates a renderer for the given writer.
func NewRenderer(out io.Writer) *Renderer {
	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Renderer{out: out, color: color}
}

// Stepf prints a progress line.
func (r *Renderer) Stepf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format+"\n", args...)
}

// Warnf prints a warning line.
func (r *Renderer) Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if r.color {
		_, _ = fmt.Fprintf(r.out, "\x1b[33mWARN\x1b[0m: %s\n", msg)
		return
	}
	_, _ = fmt.Fprintf(r.out, "WARN: %s\n", msg)
}

// Summary prints the completion summary for a run.
func (r *Renderer) Summary(stats Stats) {
	if stats.ColdStart {
		_, _ = fmt.Fprintf(r.out, "Built full index: %d documents, %d tokens in %s\n",
			stats.Documents, stats.Tokens, stats.Duration.Round(10*time.Millisecond))
	} else {
		_, _ = fmt.Fprintf(r.out, "Index updated: +%d -%d ~%d (%d unchanged), %d tokens in %s\n",
			stats.Added, stats.Removed, stats.Modified, stats.Unchanged,
			stats.Tokens, stats.Duration.Round(10*time.Millisecond))
	}

	if stats.Warnings > 0 {
		r.Warnf("%d document(s) failed extraction and were indexed as empty", stats.Warnings)
	}
}
