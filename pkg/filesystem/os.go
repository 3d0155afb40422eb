package filesystem

import (
	"io/fs"
	"os"

	"github.com/arthur-debert/dotsetup/pkg/types"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	synthfilesystem "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
)

// OS implements types.FS on the real filesystem. Writes go through a
// path-aware synthfs filesystem rooted at "/", the same one Batch runs
// its operations on.
type OS struct {
	synth synthfilesystem.FullFileSystem
}

// NewOS creates a new OS filesystem implementation
func NewOS() types.FS {
	return newOS()
}

func newOS() *OS {
	osfs := synthfilesystem.NewOSFileSystem("/")
	return &OS{synth: synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths()}
}

// Synth returns the synthfs filesystem batches should run on for fsys.
// Any other types.FS gets a fresh one over the OS.
func Synth(fsys types.FS) synthfilesystem.FullFileSystem {
	if o, ok := fsys.(*OS); ok {
		return o.synth
	}
	return newOS().synth
}

func (o *OS) Stat(name string) (fs.FileInfo, error) {
	return o.synth.Stat(name)
}

func (o *OS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return o.synth.WriteFile(name, data, perm)
}

func (o *OS) MkdirAll(path string, perm fs.FileMode) error {
	return o.synth.MkdirAll(path, perm)
}

func (o *OS) Symlink(oldname, newname string) error {
	return o.synth.Symlink(oldname, newname)
}

func (o *OS) Readlink(name string) (string, error) {
	return o.synth.Readlink(name)
}

func (o *OS) Remove(name string) error {
	return o.synth.Remove(name)
}

// Lstat, directory listing, rename and recursive removal are not part of
// the synthfs filesystem contract

func (o *OS) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}

func (o *OS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (o *OS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (o *OS) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

func (o *OS) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}
