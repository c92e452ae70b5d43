package ui

import (
	"fmt"
	"io"
)

// Printer writes themed status lines and panels.
type Printer struct {
	Out, Err io.Writer
	Theme    Theme
}

// NewPrinter returns a printer writing results to out and failures to errw.
func NewPrinter(out, errw io.Writer, theme Theme) *Printer {
	return &Printer{Out: out, Err: errw, Theme: theme}
}

func (p *Printer) OK(msg string) {
	fmt.Fprintln(p.Out, p.Theme.Success.Sprint(p.Theme.SymDone+" "+msg))
}

func (p *Printer) Fail(msg string) {
	fmt.Fprintln(p.Err, p.Theme.Error.Sprint(p.Theme.SymFail+" "+msg))
}

// Hint prints a muted follow-up line on the error stream.
func (p *Printer) Hint(msg string) {
	fmt.Fprintln(p.Err, p.Theme.Muted.Sprint(msg))
}
