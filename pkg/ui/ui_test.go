package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/arthur-debert/dotsetup/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrinter() (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewPrinter(&out, &errOut, FormatText), &out, &errOut
}

func TestPrinter_StripsTagsOnPlainOutput(t *testing.T) {
	p, out, errOut := newTestPrinter()
	assert.Equal(t, FormatText, p.Format())

	p.Success("Linked <Package>%s</Package>", "vim")
	p.Warn("careful with <Path>~/.vimrc</Path>")

	assert.Contains(t, out.String(), "Linked vim")
	assert.NotContains(t, out.String(), "<Package>")
	assert.Contains(t, errOut.String(), "careful with ~/.vimrc")
	assert.Contains(t, out.String(), "SUCCESS")
	assert.Contains(t, errOut.String(), "WARNING")
}

func TestPrinter_Report(t *testing.T) {
	p, out, errOut := newTestPrinter()

	p.Report(&types.RunReport{
		Mode:     types.ModeInstall,
		Packages: []string{"foo", "vim"},
		Linked:   []string{"foo", "vim"},
		BackedUp: []types.Conflict{{Package: "foo", RelPath: "bar/baz.conf", Target: "/home/u/bar/baz.conf", Kind: types.ConflictFile}},
		Hooks: []types.HookResult{
			{Package: "foo", Ran: true, ExitCode: 3},
			{Package: "vim", Ran: true, Err: errors.New("boom")},
			{Package: "git", Ran: false},
		},
	}, func(s string) string { return strings.Replace(s, "/home/u", "~", 1) })

	assert.Contains(t, out.String(), "Backed up ~/bar/baz.conf (foo, file)")
	assert.Contains(t, out.String(), "Linked foo")
	assert.Contains(t, out.String(), "Installed foo, vim")
	assert.Contains(t, errOut.String(), "Setup hook of foo exited with status 3")
	assert.Contains(t, errOut.String(), "Setup hook of vim failed: boom")
	assert.NotContains(t, errOut.String(), "git")
}

func TestPrinter_ReportUninstall(t *testing.T) {
	p, out, errOut := newTestPrinter()

	p.Report(&types.RunReport{
		Mode:     types.ModeUninstall,
		DryRun:   true,
		Packages: []string{"foo"},
		Unlinked: []string{"foo"},
		Restored: []string{"/t/bar"},
		Kept:     []string{"/t/.foorc"},
	}, nil)

	assert.Contains(t, out.String(), "Dry run")
	assert.Contains(t, out.String(), "Restored /t/bar")
	assert.Contains(t, out.String(), "Uninstalled foo")
	assert.Contains(t, errOut.String(), "/t/.foorc already exists")
}

func TestPrompter_LineMode(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("yes\nn\n"), &out, false)

	yes, err := p.Confirm("Update?")
	require.NoError(t, err)
	assert.True(t, yes)
	assert.Contains(t, out.String(), "Update? (y/n)")

	yes, err = p.Confirm("Again?")
	require.NoError(t, err)
	assert.False(t, yes)

	_, err = p.Confirm("Eof?")
	assert.Error(t, err)
}

func TestParseYes(t *testing.T) {
	for _, answer := range []string{"y", "Y", "yes", " YES \n"} {
		assert.True(t, ParseYes(answer), answer)
	}
	for _, answer := range []string{"", "n", "no", "yep"} {
		assert.False(t, ParseYes(answer), answer)
	}
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "auto", FormatAuto.String())
	assert.Equal(t, "term", FormatTerminal.String())
	assert.Equal(t, "text", FormatText.String())
	assert.Equal(t, "unknown", Format(42).String())
}
