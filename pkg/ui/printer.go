// Package ui prints user facing messages and asks the user questions.
//
// Messages may carry style tags (see pkg/ui/markup); they are styled on a
// colour terminal and stripped otherwise. Severity is marked with pterm
// prefix printers.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/dotsetup/pkg/ui/markup"
	"github.com/arthur-debert/dotsetup/pkg/ui/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// Printer writes severity marked messages. Info and Success go to out,
// warnings and errors to errOut.
type Printer struct {
	out    io.Writer
	errOut io.Writer
	format Format
}

// NewPrinter creates a printer. FormatAuto is resolved against out when it
// is a file and falls back to plain text otherwise.
func NewPrinter(out, errOut io.Writer, format Format) *Printer {
	if format == FormatAuto {
		format = FormatText
		if f, ok := out.(*os.File); ok {
			format = DetectFormat(f)
		}
	}

	renderer := lipgloss.NewRenderer(out)
	if format == FormatText {
		renderer.SetColorProfile(termenv.Ascii)
		pterm.DisableStyling()
	} else {
		pterm.EnableStyling()
	}
	markup.SetDefaultRenderer(renderer)

	return &Printer{out: out, errOut: errOut, format: format}
}

// NewConsolePrinter prints to the process standard streams
func NewConsolePrinter() *Printer {
	return NewPrinter(os.Stdout, os.Stderr, FormatAuto)
}

// Format returns the resolved output format
func (p *Printer) Format() Format {
	return p.format
}

// Render expands style tags in a formatted message
func (p *Printer) Render(format string, a ...interface{}) string {
	text := fmt.Sprintf(format, a...)
	rendered, err := markup.ExpandTags(text, styles.StyleRegistry)
	if err != nil {
		return markup.StripTags(text)
	}
	return rendered
}

// Println prints a message without a severity marker
func (p *Printer) Println(format string, a ...interface{}) {
	fmt.Fprintln(p.out, p.Render(format, a...))
}

// Info prints an informational message
func (p *Printer) Info(format string, a ...interface{}) {
	pterm.Info.WithWriter(p.out).Println(p.Render(format, a...))
}

// Success prints a success message
func (p *Printer) Success(format string, a ...interface{}) {
	pterm.Success.WithWriter(p.out).Println(p.Render(format, a...))
}

// Warn prints a warning
func (p *Printer) Warn(format string, a ...interface{}) {
	pterm.Warning.WithWriter(p.errOut).Println(p.Render(format, a...))
}

// Error prints an error
func (p *Printer) Error(format string, a ...interface{}) {
	pterm.Error.WithWriter(p.errOut).Println(p.Render(format, a...))
}
