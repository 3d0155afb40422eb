package types

import (
	"fmt"
	"sort"
	"strings"
)

// Environment variables exported to hooks
const (
	EnvHookPackage    = "DOTSETUP_PACKAGE"
	EnvHookPackageDir = "DOTSETUP_PACKAGE_DIR"
	EnvHookRoot       = "DOTSETUP_ROOT"
	EnvHookTarget     = "DOTSETUP_TARGET"
	EnvHookMode       = "DOTSETUP_MODE"
	EnvHookNoScripts  = "DOTSETUP_NO_SCRIPTS"
	EnvHookPackages   = "DOTSETUP_PACKAGES"
)

// HookSnapshot is the read-only view of the invocation a hook receives
type HookSnapshot struct {
	Package    string
	PackageDir string
	Root       string
	Target     string
	Mode       Mode
	NoScripts  bool
	Packages   []string
}

// Environ returns the snapshot as KEY=value pairs, sorted by key
func (s HookSnapshot) Environ() []string {
	env := []string{
		EnvHookPackage + "=" + s.Package,
		EnvHookPackageDir + "=" + s.PackageDir,
		EnvHookRoot + "=" + s.Root,
		EnvHookTarget + "=" + s.Target,
		EnvHookMode + "=" + s.Mode.String(),
		fmt.Sprintf("%s=%t", EnvHookNoScripts, s.NoScripts),
		EnvHookPackages + "=" + strings.Join(s.Packages, " "),
	}
	sort.Strings(env)
	return env
}

// HookResult is the outcome of one package hook
type HookResult struct {
	Package string
	Path    string

	// Ran is false when the package has no executable hook
	Ran      bool
	ExitCode int
	Err      error
}

// Failed reports whether the hook ran and did not succeed
func (r HookResult) Failed() bool {
	return r.Ran && (r.ExitCode != 0 || r.Err != nil)
}

// RunReport summarizes one invocation
type RunReport struct {
	Mode     Mode
	DryRun   bool
	Packages []string

	// Linked and Unlinked list package names, in processing order
	Linked   []string
	Unlinked []string

	// BackedUp lists conflicts moved into the backup directory
	BackedUp []Conflict

	// Restored lists target paths moved back from the backup directory
	Restored []string

	// Kept lists backup entries left in place because the target was occupied
	Kept []string

	Hooks []HookResult
}
