package types

// Mode is the direction of a whole invocation
type Mode string

const (
	// ModeInstall links packages, backing up conflicting files first
	ModeInstall Mode = "install"

	// ModeUninstall removes package links and restores backed up files
	ModeUninstall Mode = "uninstall"
)

// String implements fmt.Stringer
func (m Mode) String() string {
	return string(m)
}

// Options holds the parsed command line of one invocation
type Options struct {
	Mode Mode

	// NoScripts suppresses setup hooks during install
	NoScripts bool

	// DryRun computes and reports without touching the filesystem
	DryRun bool

	// Packages is the requested package set, command line order, duplicates kept.
	// Empty means every discovered package.
	Packages []string
}

// IsUninstall reports whether the invocation removes links
func (o Options) IsUninstall() bool {
	return o.Mode == ModeUninstall
}
