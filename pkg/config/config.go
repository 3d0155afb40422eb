package config

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/pkgmgr"
)

// RootConfigFile is the optional configuration file at the repository root
const RootConfigFile = ".dotsetup.toml"

// EnvPrefix prefixes environment variable overrides
const EnvPrefix = "DOTSETUP_"

// Config is the effective configuration of one invocation
type Config struct {
	Paths          Paths          `koanf:"paths" toml:"paths"`
	Packages       Packages       `koanf:"packages" toml:"packages"`
	Link           Link           `koanf:"link" toml:"link"`
	Hooks          Hooks          `koanf:"hooks" toml:"hooks"`
	PackageManager PackageManager `koanf:"package_manager" toml:"package_manager"`
	Logging        Logging        `koanf:"logging" toml:"logging"`
}

// Paths configures repository relative locations
type Paths struct {
	BackupDir string `koanf:"backup_dir" toml:"backup_dir"`
}

// Packages configures package discovery
type Packages struct {
	Ignore []string `koanf:"ignore" toml:"ignore"`
}

// Link configures the symlink engine
type Link struct {
	SelfPackage string   `koanf:"self_package" toml:"self_package"`
	Ignore      []string `koanf:"ignore" toml:"ignore"`
}

// Hooks configures per-package setup hooks
type Hooks struct {
	FileName string `koanf:"file_name" toml:"file_name"`
}

// PackageManager configures the package manager installer
type PackageManager struct {
	Priority          []string `koanf:"priority" toml:"priority"`
	PromptUpdate      bool     `koanf:"prompt_update" toml:"prompt_update"`
	BootstrapHomebrew bool     `koanf:"bootstrap_homebrew" toml:"bootstrap_homebrew"`
	BootstrapURL      string   `koanf:"bootstrap_url" toml:"bootstrap_url"`
}

// Logging configures log output
type Logging struct {
	File bool `koanf:"file" toml:"file"`
}

// Validate checks values that would make the run unsafe
func (c *Config) Validate() error {
	backup := c.Paths.BackupDir
	if backup == "" {
		return errors.New(errors.ErrConfigParse, "paths.backup_dir cannot be empty")
	}
	if strings.ContainsRune(backup, filepath.Separator) || backup == "." || backup == ".." {
		return errors.New(errors.ErrConfigParse, "paths.backup_dir must be a single directory name").
			WithDetail("backup_dir", backup)
	}
	if !strings.HasPrefix(backup, "_") && !strings.HasPrefix(backup, ".") {
		// Anything else would be discovered as a package.
		return errors.New(errors.ErrConfigParse, "paths.backup_dir must start with '_' or '.'").
			WithDetail("backup_dir", backup)
	}
	if c.Hooks.FileName == "" {
		return errors.New(errors.ErrConfigParse, "hooks.file_name cannot be empty")
	}
	for _, name := range c.PackageManager.Priority {
		if !pkgmgr.Supported(name) {
			return errors.Newf(errors.ErrConfigParse, "unsupported package manager %q in package_manager.priority", name).
				WithDetail("priority", c.PackageManager.Priority)
		}
	}
	for _, pattern := range append(append([]string{}, c.Link.Ignore...), c.Packages.Ignore...) {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return errors.Wrapf(err, errors.ErrConfigParse, "invalid ignore pattern %q", pattern)
		}
	}
	return nil
}
