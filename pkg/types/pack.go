package types

import (
	"errors"
	"os"
	"path/filepath"
)

// Package represents a top-level directory of the repository whose files are
// linked into the target directory as one unit
type Package struct {
	// Name is the directory basename
	Name string

	// Path is the absolute path to the package directory
	Path string
}

// FilePath returns the full path to a file within the package
func (p Package) FilePath(rel string) string {
	return filepath.Join(p.Path, rel)
}

// FileExists checks if a file exists within the package
func (p Package) FileExists(fs FS, rel string) (bool, error) {
	_, err := fs.Stat(p.FilePath(rel))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// PackageNames returns the names of packages, in order
func PackageNames(pkgs []Package) []string {
	names := make([]string, len(pkgs))
	for i, p := range pkgs {
		names[i] = p.Name
	}
	return names
}
