package ui

import (
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/types"
	"github.com/arthur-debert/dotsetup/pkg/ui/markup"
)

// Report prints the outcome of a run. display shortens absolute paths for
// messages and may be nil.
func (p *Printer) Report(r *types.RunReport, display func(string) string) {
	if display == nil {
		display = func(s string) string { return s }
	}
	path := func(s string) string {
		return "<Path>" + markup.Escape(display(s)) + "</Path>"
	}
	pkg := func(s string) string {
		return "<Package>" + markup.Escape(s) + "</Package>"
	}

	if r.DryRun {
		p.Info("<Muted>Dry run, nothing was changed</Muted>")
	}

	for _, c := range r.BackedUp {
		p.Info("Backed up %s (%s, %s)", path(c.Target), pkg(c.Package), string(c.Kind))
	}
	for _, name := range r.Linked {
		p.Success("Linked %s", pkg(name))
	}
	for _, h := range r.Hooks {
		if !h.Failed() {
			continue
		}
		if h.Err != nil {
			p.Warn("Setup hook of %s failed: %s", pkg(h.Package), markup.Escape(h.Err.Error()))
			continue
		}
		p.Warn("Setup hook of %s exited with status %d", pkg(h.Package), h.ExitCode)
	}

	for _, name := range r.Unlinked {
		p.Success("Unlinked %s", pkg(name))
	}
	for _, restored := range r.Restored {
		p.Info("Restored %s", path(restored))
	}
	for _, kept := range r.Kept {
		p.Warn("%s already exists, its backup was kept", path(kept))
	}

	switch {
	case len(r.Packages) == 0:
		p.Warn("No packages found")
	case r.Mode == types.ModeUninstall:
		p.Success("Uninstalled %s", strings.Join(quoted(r.Packages, pkg), ", "))
	default:
		p.Success("Installed %s", strings.Join(quoted(r.Packages, pkg), ", "))
	}
}

func quoted(names []string, wrap func(string) string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = wrap(n)
	}
	return out
}
