package backup

import (
	"context"
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/filesystem"
	"github.com/arthur-debert/dotsetup/pkg/logging"
	"github.com/arthur-debert/dotsetup/pkg/paths"
	"github.com/arthur-debert/dotsetup/pkg/stow"
	"github.com/arthur-debert/dotsetup/pkg/types"
	"github.com/rs/zerolog"
)

// Manager backs up and restores conflicting target entries
type Manager struct {
	fs     types.FS
	engine *stow.Engine
	paths  *paths.Paths
	logger zerolog.Logger
}

// New creates a Manager
func New(fsys types.FS, engine *stow.Engine, p *paths.Paths) *Manager {
	return &Manager{
		fs:     fsys,
		engine: engine,
		paths:  p,
		logger: logging.GetLogger("backup"),
	}
}

// Backup plans every package first, then moves each conflicting target
// entry into the package's backup directory. It returns the conflicts that
// were (or, with opts.DryRun, would be) backed up. An existing backup entry
// is never overwritten.
func (m *Manager) Backup(ctx context.Context, pkgs []types.Package, opts stow.Options) ([]types.Conflict, error) {
	var conflicts []types.Conflict
	seen := make(map[string]bool)

	for _, pkg := range pkgs {
		plan, err := m.engine.Plan(pkg, m.paths.Target(), opts)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrBackupFailed, "cannot check package %s for conflicts", pkg.Name).
				WithDetail("package", pkg.Name)
		}
		for _, c := range plan.Conflicts {
			if seen[c.Target] {
				continue
			}
			seen[c.Target] = true
			conflicts = append(conflicts, c)
		}
	}

	// Refuse up front so a clash does not leave a half-done backup
	for _, c := range conflicts {
		dst := m.entryPath(c)
		exists, err := filesystem.Exists(m.fs, dst)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrBackupFailed, "cannot inspect backup directory").
				WithDetail("path", dst)
		}
		if exists {
			return nil, errors.Newf(errors.ErrBackupFailed, "backup entry already exists for %s", c.RelPath).
				WithDetail("package", c.Package).
				WithDetail("path", dst)
		}
	}

	if opts.DryRun {
		return conflicts, nil
	}

	batch := filesystem.NewBatch("backup")
	planned := make(map[string]bool)
	steps := make(map[string]types.Conflict)
	for _, c := range conflicts {
		if err := m.queueParents(batch, c, planned); err != nil {
			return nil, err
		}
		label := "back up " + c.Target
		steps[label] = c
		batch.Move(m.fs, c.Target, m.entryPath(c), label)
	}

	if err := batch.Run(ctx, filesystem.Synth(m.fs)); err != nil {
		var batchErr *filesystem.BatchError
		if !stderrors.As(err, &batchErr) {
			return nil, err
		}
		if c, ok := steps[batchErr.Label]; ok {
			return nil, errors.Wrapf(batchErr.Err, errors.ErrBackupFailed, "cannot back up %s", c.RelPath).
				WithDetail("package", c.Package).
				WithDetail("path", c.Target)
		}
		return nil, errors.Wrap(batchErr, errors.ErrBackupFailed, "cannot create backup directory")
	}

	for _, c := range conflicts {
		m.logger.Info().
			Str("package", c.Package).
			Str("from", c.Target).
			Str("to", m.entryPath(c)).
			Msg("Backed up conflicting entry")
	}

	return conflicts, nil
}

// queueParents queues the directories leading to the backup entry of c.
// Directories mirroring target directories get the target's permissions,
// so an entry restored as a whole directory comes back as it was.
func (m *Manager) queueParents(batch *filesystem.Batch, c types.Conflict, planned map[string]bool) error {
	root := m.paths.PackageBackupDir(c.Package)
	dirs := []string{m.paths.BackupRoot(), root}
	perms := []fs.FileMode{0755, 0755}

	rel := filepath.Dir(c.RelPath)
	if rel != "." {
		parts := strings.Split(rel, string(filepath.Separator))
		for i := range parts {
			sub := filepath.Join(parts[:i+1]...)
			perm := fs.FileMode(0755)
			if info, err := m.fs.Lstat(m.paths.TargetPath(sub)); err == nil && info.IsDir() {
				perm = info.Mode().Perm()
			}
			dirs = append(dirs, filepath.Join(root, sub))
			perms = append(perms, perm)
		}
	}

	for i, dir := range dirs {
		if planned[dir] {
			continue
		}
		planned[dir] = true
		exists, err := filesystem.Exists(m.fs, dir)
		if err != nil {
			return errors.Wrap(err, errors.ErrBackupFailed, "cannot inspect backup directory").
				WithDetail("path", dir)
		}
		if !exists {
			batch.Mkdir(dir, perms[i], "mkdir "+dir)
		}
	}
	return nil
}

func (m *Manager) entryPath(c types.Conflict) string {
	return filepath.Join(m.paths.PackageBackupDir(c.Package), c.RelPath)
}

// List returns the backed up paths of a package, relative to the target
// directory. Directories are descended into, so only leaf entries appear.
func (m *Manager) List(pkg types.Package) ([]string, error) {
	dir := m.paths.PackageBackupDir(pkg.Name)
	exists, err := filesystem.Exists(m.fs, dir)
	if err != nil || !exists {
		return nil, err
	}

	var entries []string
	if err := m.walk(dir, "", func(rel string) {
		entries = append(entries, rel)
	}); err != nil {
		return nil, err
	}
	return entries, nil
}

func (m *Manager) walk(base, rel string, visit func(string)) error {
	children, err := m.fs.ReadDir(filepath.Join(base, rel))
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot read backup directory").
			WithDetail("path", filepath.Join(base, rel))
	}
	if len(children) == 0 && rel != "" {
		visit(rel)
		return nil
	}
	for _, child := range children {
		childRel := filepath.Join(rel, child.Name())
		if child.IsDir() {
			if err := m.walk(base, childRel, visit); err != nil {
				return err
			}
			continue
		}
		visit(childRel)
	}
	return nil
}
