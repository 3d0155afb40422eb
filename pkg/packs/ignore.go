package packs

import (
	"path/filepath"

	"github.com/arthur-debert/dotsetup/pkg/logging"
	"github.com/arthur-debert/dotsetup/pkg/types"
	"github.com/rs/zerolog"
)

// IgnoreFileName marks a package (or a directory inside one) as ignored
const IgnoreFileName = ".dotsetupignore"

// IgnoreChecker decides which candidate packages are left out of the default set
type IgnoreChecker struct {
	fs       types.FS
	patterns []string
	logger   zerolog.Logger
}

// NewIgnoreChecker creates a new IgnoreChecker instance
func NewIgnoreChecker(fs types.FS, patterns []string) *IgnoreChecker {
	return &IgnoreChecker{
		fs:       fs,
		patterns: patterns,
		logger:   logging.GetLogger("packs.ignore"),
	}
}

// ShouldIgnore checks the configured globs and the .dotsetupignore marker
func (ic *IgnoreChecker) ShouldIgnore(pkg types.Package) bool {
	for _, pattern := range ic.patterns {
		if matched, _ := filepath.Match(pattern, pkg.Name); matched {
			ic.logger.Debug().Str("package", pkg.Name).Str("pattern", pattern).Msg("Package ignored by pattern")
			return true
		}
	}

	if HasIgnoreFile(ic.fs, pkg.Path) {
		ic.logger.Debug().Str("package", pkg.Name).Msg("Package ignored due to .dotsetupignore file")
		return true
	}
	return false
}

// HasIgnoreFile checks if a directory contains a .dotsetupignore file
func HasIgnoreFile(fs types.FS, dir string) bool {
	_, err := fs.Lstat(filepath.Join(dir, IgnoreFileName))
	return err == nil
}
