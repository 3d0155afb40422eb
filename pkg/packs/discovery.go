package packs

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/filesystem"
	"github.com/arthur-debert/dotsetup/pkg/logging"
	"github.com/arthur-debert/dotsetup/pkg/types"
)

// Candidates returns every top-level directory of root that may be named as
// a package: directories whose name does not start with '.' or '_'.
// Order is the directory listing order (sorted by name).
func Candidates(fs types.FS, root string) ([]types.Package, error) {
	logger := logging.GetLogger("packs.discovery")
	logger.Trace().Str("root", root).Msg("Getting package candidates")

	info, err := fs.Stat(root)
	if err != nil {
		if filesystem.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrNotFound, "repository root does not exist").
				WithDetail("path", root)
		}
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot access repository root").
			WithDetail("path", root)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrInvalidInput, "repository root is not a directory").
			WithDetail("path", root)
	}

	entries, err := fs.ReadDir(root)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read repository root").
			WithDetail("path", root)
	}

	var candidates []types.Package
	for _, entry := range entries {
		name := entry.Name()
		if IsReservedName(name) {
			logger.Trace().Str("name", name).Msg("Skipping reserved directory")
			continue
		}

		path := filepath.Join(root, name)
		isDir := entry.IsDir()
		if !isDir && entry.Type()&os.ModeSymlink != 0 {
			// A symlinked package directory still counts.
			if info, err := fs.Stat(path); err == nil {
				isDir = info.IsDir()
			}
		}
		if !isDir {
			continue
		}

		candidates = append(candidates, types.Package{Name: name, Path: path})
		logger.Trace().Str("path", path).Msg("Found package candidate")
	}

	return candidates, nil
}

// Discover returns the default package set: every candidate that is not
// ignored by pattern or marker file.
func Discover(fs types.FS, root string, ignore []string) ([]types.Package, error) {
	logger := logging.GetLogger("packs.discovery")

	candidates, err := Candidates(fs, root)
	if err != nil {
		return nil, err
	}

	checker := NewIgnoreChecker(fs, ignore)
	var pkgs []types.Package
	for _, pkg := range candidates {
		if checker.ShouldIgnore(pkg) {
			continue
		}
		pkgs = append(pkgs, pkg)
	}

	logger.Debug().Int("count", len(pkgs)).Msg("Discovered packages")
	return pkgs, nil
}
