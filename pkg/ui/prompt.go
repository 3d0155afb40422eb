package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
)

// Prompter asks yes/no questions on the console
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewPrompter creates a prompter. With interactive set the pterm confirm
// widget is used; otherwise a line is read from in.
func NewPrompter(in io.Reader, out io.Writer, interactive bool) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, interactive: interactive}
}

// NewConsolePrompter uses the process standard streams and the interactive
// widget when stdin is a terminal
func NewConsolePrompter() *Prompter {
	return NewPrompter(os.Stdin, os.Stdout, IsTerminal(os.Stdin))
}

// Confirm asks question and reports whether the answer was yes
func (p *Prompter) Confirm(question string) (bool, error) {
	if p.interactive {
		return pterm.DefaultInteractiveConfirm.
			WithDefaultText(question).
			WithDefaultValue(false).
			Show()
	}

	fmt.Fprintf(p.out, "%s (y/n) ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}
	return ParseYes(line), nil
}

// ParseYes reports whether answer means yes
func ParseYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
