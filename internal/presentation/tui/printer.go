package tui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aretw0/automata/pkg/runner"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Printer writes walk progress for humans. Colors are used only on terminals.
type Printer struct {
	w       io.Writer
	profile termenv.Profile
}

// NewPrinter creates a Printer on w, detecting color support when w is a terminal.
func NewPrinter(w io.Writer) *Printer {
	profile := termenv.Ascii
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		profile = termenv.EnvColorProfile()
	}
	return NewPrinterWithProfile(w, profile)
}

// NewPrinterWithProfile creates a Printer with a fixed color profile.
func NewPrinterWithProfile(w io.Writer, profile termenv.Profile) *Printer {
	return &Printer{w: w, profile: profile}
}

// Step writes one walk step.
func (p *Printer) Step(s runner.Step) {
	index := p.profile.String(fmt.Sprintf("#%-3d", s.Index)).Foreground(p.profile.Color("#818cf8"))
	state := p.profile.String(s.State).Bold()
	fmt.Fprintf(p.w, "  %s %s", index, state)
	if s.Tracer != nil {
		fmt.Fprintf(p.w, " -> %v", s.Tracer)
	}
	fmt.Fprintf(p.w, " %s\n", p.dim(s.Elapsed.Round(time.Microsecond).String()))
}

// Done writes the summary of a finished walk.
func (p *Printer) Done(res runner.Result) {
	check := p.profile.String("done").Foreground(p.profile.Color("#22c55e"))
	fmt.Fprintf(p.w, "%s %d steps %s\n", check, res.Steps, p.dim("run "+res.RunID))
}

// Info writes a plain line.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Warn writes a highlighted line.
func (p *Printer) Warn(format string, args ...any) {
	label := p.profile.String("warn").Foreground(p.profile.Color("#fbbf24"))
	fmt.Fprintf(p.w, "%s %s\n", label, fmt.Sprintf(format, args...))
}

func (p *Printer) dim(s string) string {
	return p.profile.String(s).Faint().String()
}
