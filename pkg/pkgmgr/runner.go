package pkgmgr

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Command is one external process invocation
type Command struct {
	Name string
	Args []string

	// Quiet discards the process output
	Quiet bool
}

// Runner runs external processes. Tests substitute their own.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
	LookPath(name string) (string, error)
}

// Prompter asks the user yes/no questions
type Prompter interface {
	Confirm(question string) (bool, error)
}

// Notifier receives user facing success messages
type Notifier interface {
	Success(format string, a ...interface{})
}

// ExecRunner implements Runner with os/exec
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner creates a runner attached to the process standard streams
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes cmd and waits for it
func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Stdin = r.Stdin
	if cmd.Quiet {
		c.Stdout = io.Discard
		c.Stderr = io.Discard
	} else {
		c.Stdout = r.Stdout
		c.Stderr = r.Stderr
	}
	return c.Run()
}

// LookPath resolves a binary on PATH
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// String renders the command line, for logs and messages
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}
