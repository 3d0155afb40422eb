package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/arthur-debert/dotsetup/pkg/types"
)

// Exists reports whether path exists without following a final symlink
func Exists(fsys types.FS, path string) (bool, error) {
	_, err := fsys.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// IsNotExist reports whether err, possibly wrapped, means a missing path
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// Move renames src to dst. When the rename crosses filesystems the entry is
// copied (files, directories and symlinks) and the source removed.
// dst must not exist.
func Move(fsys types.FS, src, dst string) error {
	exists, err := Exists(fsys, dst)
	if err != nil {
		return err
	}
	if exists {
		return &fs.PathError{Op: "move", Path: dst, Err: fs.ErrExist}
	}

	err = fsys.Rename(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}

	if err := copyTree(fsys, src, dst); err != nil {
		_ = fsys.RemoveAll(dst)
		return fmt.Errorf("copy %s across filesystems: %w", src, err)
	}
	return fsys.RemoveAll(src)
}

func copyTree(fsys types.FS, src, dst string) error {
	info, err := fsys.Lstat(src)
	if err != nil {
		return err
	}

	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		link, err := fsys.Readlink(src)
		if err != nil {
			return err
		}
		return fsys.Symlink(link, dst)

	case info.IsDir():
		if err := fsys.MkdirAll(dst, info.Mode().Perm()); err != nil {
			return err
		}
		entries, err := fsys.ReadDir(src)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if err := copyTree(fsys, filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
				return err
			}
		}
		return nil

	default:
		data, err := fsys.ReadFile(src)
		if err != nil {
			return err
		}
		return fsys.WriteFile(dst, data, info.Mode().Perm())
	}
}
