package backup

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/filesystem"
	"github.com/arthur-debert/dotsetup/pkg/types"
	synthfilesystem "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
)

// RestoreResult lists what a restore moved back and what it left behind.
// Paths are absolute target paths.
type RestoreResult struct {
	Restored []string
	Kept     []string
}

// Restore moves the backup entries of pkg back into the target directory.
// It must only run after the package links are gone. Directories already
// present in the target are merged entry by entry; an occupied target path
// is never overwritten and its entry stays in the backup. Once nothing is
// left the package backup directory is removed, and the backup root with it
// when that became empty.
func (m *Manager) Restore(ctx context.Context, pkg types.Package, dryRun bool) (*RestoreResult, error) {
	result := &RestoreResult{}
	dir := m.paths.PackageBackupDir(pkg.Name)

	exists, err := filesystem.Exists(m.fs, dir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrRestoreFailed, "cannot inspect backup directory").
			WithDetail("path", dir)
	}
	if !exists {
		m.logger.Debug().Str("package", pkg.Name).Msg("No backup to restore")
		return result, nil
	}

	batch := filesystem.NewBatch("restore_" + pkg.Name)
	if err := m.restoreDir(ctx, batch, pkg, dir, m.paths.Target(), dryRun, result); err != nil {
		return result, err
	}
	if !dryRun {
		if err := batch.Run(ctx, filesystem.Synth(m.fs)); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, ctxErr
			}
			return result, errors.Wrap(err, errors.ErrRestoreFailed, "cannot restore backup entry")
		}
	}

	for _, kept := range result.Kept {
		m.logger.Warn().Str("package", pkg.Name).Str("path", kept).Msg("Target exists, backup entry kept")
	}

	if dryRun || len(result.Kept) > 0 {
		return result, nil
	}

	if err := m.fs.RemoveAll(dir); err != nil {
		return result, errors.Wrap(err, errors.ErrRestoreFailed, "cannot remove backup directory").
			WithDetail("path", dir)
	}
	m.removeIfEmpty(m.paths.BackupRoot())

	m.logger.Info().
		Str("package", pkg.Name).
		Int("restored", len(result.Restored)).
		Msg("Restored backup")
	return result, nil
}

// restoreDir queues the moves of the entries of srcDir into dstDir. A dry
// run runs before the package links are removed, so a target that is still
// one of them counts as free.
func (m *Manager) restoreDir(ctx context.Context, batch *filesystem.Batch, pkg types.Package, srcDir, dstDir string, dryRun bool, result *RestoreResult) error {
	entries, err := m.fs.ReadDir(srcDir)
	if err != nil {
		return errors.Wrap(err, errors.ErrRestoreFailed, "cannot read backup directory").
			WithDetail("path", srcDir)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		src := filepath.Join(srcDir, entry.Name())
		dst := filepath.Join(dstDir, entry.Name())

		info, err := m.fs.Lstat(dst)
		switch {
		case err != nil && filesystem.IsNotExist(err):
			batch.Move(m.fs, src, dst, dst)
			result.Restored = append(result.Restored, dst)

		case err != nil:
			return errors.Wrap(err, errors.ErrRestoreFailed, "cannot inspect target").
				WithDetail("path", dst)

		case dryRun && m.isPackageLink(pkg, dst, info):
			result.Restored = append(result.Restored, dst)

		case entry.IsDir() && info.IsDir() && info.Mode()&fs.ModeSymlink == 0:
			if err := m.restoreDir(ctx, batch, pkg, src, dst, dryRun, result); err != nil {
				return err
			}
			dir := src
			batch.Do("clean "+dir, func(context.Context, synthfilesystem.FileSystem) error {
				m.removeIfEmpty(dir)
				return nil
			})

		default:
			result.Kept = append(result.Kept, dst)
		}
	}
	return nil
}

func (m *Manager) removeIfEmpty(dir string) {
	entries, err := m.fs.ReadDir(dir)
	if err == nil && len(entries) == 0 {
		_ = m.fs.Remove(dir)
	}
}

func (m *Manager) isPackageLink(pkg types.Package, path string, info fs.FileInfo) bool {
	if info.Mode()&fs.ModeSymlink == 0 {
		return false
	}
	dest, err := m.fs.Readlink(path)
	if err != nil {
		return false
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(path), dest)
	}
	dest = filepath.Clean(dest)
	return dest == pkg.Path || strings.HasPrefix(dest, pkg.Path+string(filepath.Separator))
}
