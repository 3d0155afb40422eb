package pkgmgr

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	available map[string]string
	fail      map[string]bool
	commands  []Command

	// onRun lets a test change the environment, e.g. after a bootstrap
	onRun func(Command)
}

func newFakeRunner(binaries ...string) *fakeRunner {
	r := &fakeRunner{available: map[string]string{}, fail: map[string]bool{}}
	for _, b := range binaries {
		r.available[b] = "/usr/bin/" + b
	}
	return r
}

func (r *fakeRunner) Run(ctx context.Context, cmd Command) error {
	r.commands = append(r.commands, cmd)
	if r.onRun != nil {
		r.onRun(cmd)
	}
	if r.fail[cmd.String()] {
		return fmt.Errorf("exit status 100")
	}
	return nil
}

func (r *fakeRunner) LookPath(name string) (string, error) {
	if path, ok := r.available[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("%s: not found", name)
}

func (r *fakeRunner) lines() []string {
	out := make([]string, len(r.commands))
	for i, c := range r.commands {
		out[i] = c.String()
	}
	return out
}

type fakePrompter struct {
	answer bool
	asked  int
}

func (p *fakePrompter) Confirm(question string) (bool, error) {
	p.asked++
	return p.answer, nil
}

type fakeNotifier struct {
	messages []string
}

func (n *fakeNotifier) Success(format string, a ...interface{}) {
	n.messages = append(n.messages, fmt.Sprintf(format, a...))
}

func intPtr(v int) *int { return &v }

func TestInstall_PriorityOrder(t *testing.T) {
	tests := []struct {
		name      string
		available []string
		euid      int
		expected  string
	}{
		{"brew wins and never uses sudo", []string{"brew", "apt", "sudo"}, 1000, "/usr/bin/brew install jq"},
		{"apt with sudo", []string{"apt", "apt-get", "sudo"}, 1000, "/usr/bin/sudo /usr/bin/apt install -y jq"},
		{"apt as root", []string{"apt", "sudo"}, 0, "/usr/bin/apt install -y jq"},
		{"dnf without sudo installed", []string{"dnf", "yum"}, 1000, "/usr/bin/dnf install -y jq"},
		{"pacman", []string{"pacman", "sudo"}, 1000, "/usr/bin/sudo /usr/bin/pacman -S jq"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := newFakeRunner(tt.available...)
			notifier := &fakeNotifier{}
			inst := New(runner, nil, notifier, Options{GOOS: "linux", EUID: intPtr(tt.euid)})

			require.NoError(t, inst.Install(context.Background(), "jq", true))
			assert.Equal(t, []string{tt.expected}, runner.lines())
			assert.Equal(t, []string{"Installed jq"}, notifier.messages)
		})
	}
}

func TestInstall_PromptsOnce(t *testing.T) {
	runner := newFakeRunner("apt", "sudo")
	prompter := &fakePrompter{answer: true}
	inst := New(runner, prompter, nil, Options{GOOS: "linux", EUID: intPtr(1000), PromptUpdate: true})

	ctx := context.Background()
	require.NoError(t, inst.Install(ctx, "jq", false))
	require.NoError(t, inst.Install(ctx, "fzf", false))

	assert.Equal(t, 1, prompter.asked)
	assert.Equal(t, []string{
		"/usr/bin/sudo /usr/bin/apt update",
		"/usr/bin/sudo /usr/bin/apt install -y jq",
		"/usr/bin/sudo /usr/bin/apt install -y fzf",
	}, runner.lines())
	assert.True(t, runner.commands[0].Quiet)
	assert.False(t, runner.commands[1].Quiet)
}

func TestInstall_DeclinedUpdate(t *testing.T) {
	runner := newFakeRunner("brew")
	prompter := &fakePrompter{answer: false}
	inst := New(runner, prompter, nil, Options{GOOS: "darwin", PromptUpdate: true})

	require.NoError(t, inst.Install(context.Background(), "jq", false))
	assert.Equal(t, []string{"/usr/bin/brew install jq"}, runner.lines())
}

func TestInstall_NoPackageManager(t *testing.T) {
	runner := newFakeRunner("sudo")
	prompter := &fakePrompter{answer: true}
	inst := New(runner, prompter, nil, Options{GOOS: "linux", PromptUpdate: true})

	err := inst.Install(context.Background(), "jq", false)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoPackageManager))
	assert.Equal(t, errors.ExitNoPackageManager, errors.ExitCode(err))
	assert.Zero(t, prompter.asked)

	// detection is not repeated
	runner.available["apt"] = "/usr/bin/apt"
	err = inst.Install(context.Background(), "jq", false)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoPackageManager))
}

func TestInstall_RequiredFailure(t *testing.T) {
	runner := newFakeRunner("brew")
	runner.fail["/usr/bin/brew install nope"] = true
	inst := New(runner, nil, nil, Options{GOOS: "darwin"})

	err := inst.Install(context.Background(), "nope", true)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRequiredInstall))
	assert.Equal(t, errors.ExitRequiredInstall, errors.ExitCode(err))
	assert.Equal(t, "nope", errors.GetErrorDetails(err)["binary"])
}

func TestInstall_OptionalFailure(t *testing.T) {
	runner := newFakeRunner("brew")
	runner.fail["/usr/bin/brew install nope"] = true
	notifier := &fakeNotifier{}
	inst := New(runner, nil, notifier, Options{GOOS: "darwin"})

	assert.NoError(t, inst.Install(context.Background(), "nope", false))
	assert.Empty(t, notifier.messages)
}

func TestInstall_BootstrapsHomebrewOnDarwin(t *testing.T) {
	runner := newFakeRunner()
	runner.onRun = func(cmd Command) {
		if cmd.Name == "/bin/bash" {
			runner.available["/opt/homebrew/bin/brew"] = "/opt/homebrew/bin/brew"
		}
	}
	inst := New(runner, nil, nil, Options{
		GOOS:              "darwin",
		BootstrapHomebrew: true,
		BootstrapURL:      "https://example.invalid/install.sh",
	})

	require.NoError(t, inst.Install(context.Background(), "jq", true))

	lines := runner.lines()
	require.Len(t, lines, 2)
	assert.True(t, strings.Contains(lines[0], "curl -fsSL https://example.invalid/install.sh"))
	assert.Equal(t, "/opt/homebrew/bin/brew install jq", lines[1])
}

func TestInstall_NoBootstrapOffDarwin(t *testing.T) {
	runner := newFakeRunner()
	inst := New(runner, nil, nil, Options{GOOS: "linux", BootstrapHomebrew: true})

	err := inst.Install(context.Background(), "jq", true)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoPackageManager))
	assert.Empty(t, runner.commands)
}

func TestDetect_CustomPriority(t *testing.T) {
	runner := newFakeRunner("brew", "pacman")
	inst := New(runner, nil, nil, Options{Priority: []string{"zypper", "pacman", "brew"}})

	m, err := inst.Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pacman", m.Name)
	assert.True(t, Supported("apt-get"))
	assert.False(t, Supported("zypper"))
}
