package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootUse   = "setup [flags] [package ...]"
	MsgRootShort = "Link dotfiles packages into the home directory"

	// Flag descriptions
	MsgFlagUninstall  = "Unlink the packages and restore backed up files"
	MsgFlagNoScripts  = "Do not run package setup hooks"
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun     = "Preview changes without executing them"
	MsgFlagRoot       = "Dotfiles repository root (default: $DOTFILES_ROOT, the git root or the current directory)"
	MsgFlagTarget     = "Directory packages are linked into (default: $HOME)"
	MsgFlagShowConfig = "Print the effective configuration and exit"

	MsgVersionFormat   = "%s (commit %s, built %s)"
	MsgVersionTemplate = "setup version {{.Version}}\n"
	MsgUsageHint       = "Run 'setup --help' for usage."
	MsgAvailable       = "Available packages: %s"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.md
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/fallback-warning.txt
	msgFallbackWarningRaw string
	MsgFallbackWarning    = strings.TrimSpace(msgFallbackWarningRaw)
)
