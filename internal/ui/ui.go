// Package ui prints progress and diagnostics to stderr. Chart output itself
// goes to stdout through the render package.
package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/papapumpkin/bazi/internal/ansi"
	"github.com/papapumpkin/bazi/internal/archive"
	"github.com/papapumpkin/bazi/internal/batch"
	"github.com/papapumpkin/bazi/internal/chart"
)

// Printer writes status lines for the CLI. Chart output itself goes to
// stdout through the render package; Printer only handles diagnostics.
type Printer struct {
	w     io.Writer
	color bool
}

// New returns a Printer on stderr, colored when stderr is a terminal.
func New() *Printer {
	return &Printer{w: os.Stderr, color: ansi.Enabled(os.Stderr)}
}

// NewWriter returns a Printer on w.
func NewWriter(w io.Writer, color bool) *Printer {
	return &Printer{w: w, color: color}
}

func (p *Printer) sgr(codes ...string) string {
	if !p.color {
		return ""
	}
	return strings.Join(codes, "")
}

func (p *Printer) reset() string { return p.sgr(ansi.Reset) }

// Error prints an error line.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.w, "%serror: %s%s\n", p.sgr(ansi.Red, ansi.Bold), p.reset(), msg)
}

// Warn prints a warning line.
func (p *Printer) Warn(msg string) {
	fmt.Fprintf(p.w, "%swarning: %s%s\n", p.sgr(ansi.Yellow, ansi.Bold), p.reset(), msg)
}

// Info prints a dimmed informational line.
func (p *Printer) Info(msg string) {
	fmt.Fprintf(p.w, "%s%s%s\n", p.sgr(ansi.Dim), msg, p.reset())
}

// BuildError explains a failed chart build. A nonexistent or out-of-range
// moment is reported as unavailable rather than as an internal failure.
func (p *Printer) BuildError(label string, err error) {
	if errors.Is(err, chart.ErrChartUnavailable) {
		fmt.Fprintf(p.w, "%s✗ chart unavailable%s %s: %v\n", p.sgr(ansi.Yellow, ansi.Bold), p.reset(), label, err)
		return
	}
	p.Error(fmt.Sprintf("%s: %v", label, err))
}

// Saved confirms an archived chart.
func (p *Printer) Saved(rec archive.Record) {
	fmt.Fprintf(p.w, "%s✓ saved%s %s %s(%s)%s\n",
		p.sgr(ansi.Green, ansi.Bold), p.reset(), rec.ID, p.sgr(ansi.Dim), rec.Pillars, p.reset())
}

// Deleted confirms a removed archive record.
func (p *Printer) Deleted(id string) {
	fmt.Fprintf(p.w, "%s✓ deleted%s %s\n", p.sgr(ansi.Green, ansi.Bold), p.reset(), id)
}

// BatchResults lists failed records and the pass summary.
func (p *Printer) BatchResults(out []batch.Outcome, sum batch.Summary) {
	for _, o := range out {
		if o.Err != nil {
			p.BuildError(o.Person.Label(), o.Err)
		}
	}
	color := ansi.Green
	if sum.Unavailable+sum.Failed > 0 {
		color = ansi.Yellow
	}
	fmt.Fprintf(p.w, "%s◆ batch %s%s %d built, %d unavailable, %d failed of %d\n",
		p.sgr(color, ansi.Bold), shortID(sum.RunID), p.reset(), sum.Built, sum.Unavailable, sum.Failed, sum.Total)
}

// Watching announces that a roster is being watched.
func (p *Printer) Watching(path string) {
	fmt.Fprintf(p.w, "%s◆ watching%s %s %s(ctrl-c to stop)%s\n",
		p.sgr(ansi.Cyan, ansi.Bold), p.reset(), path, p.sgr(ansi.Dim), p.reset())
}

// Reloading announces a roster change.
func (p *Printer) Reloading(path string) {
	if p.color {
		fmt.Fprint(p.w, "\r"+ansi.ClearLine)
	}
	fmt.Fprintf(p.w, "%s↻ %s changed%s\n", p.sgr(ansi.Cyan), path, p.reset())
}

// TablesResult reports the outcome of the table self-check.
func (p *Printer) TablesResult(err error) {
	if err == nil {
		fmt.Fprintf(p.w, "%s✓ tables consistent%s\n", p.sgr(ansi.Green, ansi.Bold), p.reset())
		return
	}
	fmt.Fprintf(p.w, "%s✗ table check failed%s\n", p.sgr(ansi.Red, ansi.Bold), p.reset())
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			fmt.Fprintf(p.w, "  %s•%s %v\n", p.sgr(ansi.Red), p.reset(), e)
		}
		return
	}
	fmt.Fprintf(p.w, "  %s•%s %v\n", p.sgr(ansi.Red), p.reset(), err)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
