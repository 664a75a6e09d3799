package cli

// This file provides terminal output helpers built on pterm.
// Color is disabled automatically when stdout is not a terminal.

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// Printer writes human-oriented output. A quiet printer drops everything
// except explicit Printf/Println output.
type Printer struct {
	Quiet bool
	Out   io.Writer
}

// DefaultPrinter writes to stdout.
var DefaultPrinter = &Printer{}

func (p *Printer) writer() io.Writer {
	if p == nil || p.Out == nil {
		return os.Stdout
	}
	return p.Out
}

// Println writes a line regardless of quiet mode.
func (p *Printer) Println(a ...any) {
	_, _ = fmt.Fprintln(p.writer(), a...)
}

// Printf writes formatted output regardless of quiet mode.
func (p *Printer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(p.writer(), format, a...)
}

// Section prints a section title.
func (p *Printer) Section(title string) {
	if p.Quiet {
		return
	}
	_, _ = fmt.Fprint(p.writer(), pterm.DefaultSection.Sprintln(title))
}

// Step prints a progress line.
func (p *Printer) Step(msg string) {
	if p.Quiet {
		return
	}
	_, _ = fmt.Fprintln(p.writer(), Cyan("→"), msg)
}

// Info prints an informational line.
func (p *Printer) Info(msg string) {
	if p.Quiet {
		return
	}
	_, _ = fmt.Fprint(p.writer(), pterm.Info.Sprintln(msg))
}

// Warn prints a warning line.
func (p *Printer) Warn(msg string) {
	if p.Quiet {
		return
	}
	_, _ = fmt.Fprint(p.writer(), pterm.Warning.Sprintln(msg))
}

// Header prints a full width header.
func (p *Printer) Header(title string) {
	if p.Quiet {
		return
	}
	_, _ = fmt.Fprint(p.writer(), pterm.DefaultHeader.WithFullWidth().Sprintln(title))
}

// SpinnerStart starts a spinner and returns a function that stops it with a
// success or failure message. The spinner is only drawn on an interactive
// stdout; quiet printers and printers with their own writer get a no-op.
func (p *Printer) SpinnerStart(msg string) func(ok bool, final string) {
	if p.Quiet || p.Out != nil || !isTerminal() {
		return func(bool, string) {}
	}
	spinner, err := pterm.DefaultSpinner.Start(msg)
	if err != nil {
		return func(bool, string) {}
	}
	return func(ok bool, final string) {
		if ok {
			spinner.Success(final)
			return
		}
		spinner.Fail(final)
	}
}

// Table renders data with the first row as header.
func (p *Printer) Table(data [][]string) {
	p.renderTable(data, false)
}

// TableBoxed renders data inside a box with the first row as header.
func (p *Printer) TableBoxed(data [][]string) {
	p.renderTable(data, true)
}

func (p *Printer) renderTable(data [][]string, boxed bool) {
	if len(data) == 0 {
		return
	}
	table := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData(data))
	if boxed {
		table = table.WithBoxed()
	}
	out, err := table.Srender()
	if err != nil {
		return
	}
	_, _ = fmt.Fprintln(p.writer(), out)
}

// Success prints a success line on stdout.
func Success(msg string) { pterm.Success.Println(msg) }

// Error prints an error line on stderr.
func Error(msg string) { pterm.Error.WithWriter(os.Stderr).Println(msg) }

func Green(s string) string  { return pterm.FgGreen.Sprint(s) }
func Yellow(s string) string { return pterm.FgYellow.Sprint(s) }
func Red(s string) string    { return pterm.FgRed.Sprint(s) }
func Cyan(s string) string   { return pterm.FgCyan.Sprint(s) }

// ConfigureColor disables styled output when stdout is not a terminal.
func ConfigureColor() {
	if !isTerminal() {
		pterm.DisableStyling()
	}
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
