package backup

import (
	"path/filepath"
	"sort"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/filesystem"
	"github.com/arthur-debert/dotsetup/pkg/types"
)

// ledger lists the target directories installs of one package created.
// Uninstall prunes only these.
type ledger struct {
	Package string   `toml:"package"`
	Dirs    []string `toml:"dirs"`
}

// Created returns the target directories, relative to the target, that
// installs of pkg created
func (m *Manager) Created(pkg types.Package) ([]string, error) {
	path := m.paths.PackageLedger(pkg.Name)
	data, err := m.fs.ReadFile(path)
	if err != nil {
		if filesystem.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read created directories").
			WithDetail("path", path)
	}

	var l ledger
	if err := toml.Unmarshal(data, &l); err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot parse created directories").
			WithDetail("path", path)
	}
	return l.Dirs, nil
}

// RecordCreated adds dirs to the directories recorded for pkg
func (m *Manager) RecordCreated(pkg types.Package, dirs []string) error {
	if len(dirs) == 0 {
		return nil
	}
	known, err := m.Created(pkg)
	if err != nil {
		return err
	}

	seen := make(map[string]bool)
	l := ledger{Package: pkg.Name}
	for _, dir := range append(known, dirs...) {
		dir = filepath.Clean(dir)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		l.Dirs = append(l.Dirs, dir)
	}
	sort.Strings(l.Dirs)

	data, err := toml.Marshal(l)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot encode created directories")
	}
	path := m.paths.PackageLedger(pkg.Name)
	if err := m.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot create backup directory").
			WithDetail("path", filepath.Dir(path))
	}
	if err := m.fs.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot record created directories").
			WithDetail("path", path)
	}

	m.logger.Debug().
		Str("package", pkg.Name).
		Strs("dirs", l.Dirs).
		Msg("Recorded created directories")
	return nil
}

// Forget drops the record of pkg's created directories, then the backup
// root if nothing else is left in it
func (m *Manager) Forget(pkg types.Package) error {
	path := m.paths.PackageLedger(pkg.Name)
	exists, err := filesystem.Exists(m.fs, path)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot inspect created directories record").
			WithDetail("path", path)
	}
	if exists {
		if err := m.fs.Remove(path); err != nil {
			return errors.Wrap(err, errors.ErrFileAccess, "cannot remove created directories record").
				WithDetail("path", path)
		}
	}
	m.removeIfEmpty(m.paths.BackupRoot())
	return nil
}
