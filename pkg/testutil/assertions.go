package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertLinksTo checks that path is a symlink resolving to dest
func AssertLinksTo(t *testing.T, path, dest string) {
	t.Helper()

	info, err := os.Lstat(path)
	require.NoError(t, err, "expected symlink at %s", path)
	require.True(t, info.Mode()&os.ModeSymlink != 0, "%s is not a symlink", path)

	link, err := os.Readlink(path)
	require.NoError(t, err)
	if !filepath.IsAbs(link) {
		link = filepath.Join(filepath.Dir(path), link)
	}
	assert.Equal(t, filepath.Clean(dest), filepath.Clean(link))
}

// AssertRelativeLink checks that path is a symlink with a relative destination
func AssertRelativeLink(t *testing.T, path string) {
	t.Helper()

	link, err := os.Readlink(path)
	require.NoError(t, err)
	assert.False(t, filepath.IsAbs(link), "link %s -> %s is absolute", path, link)
}

// AssertFileContent checks that path is a regular file with content
func AssertFileContent(t *testing.T, path, content string) {
	t.Helper()

	info, err := os.Lstat(path)
	require.NoError(t, err, "expected file at %s", path)
	require.True(t, info.Mode().IsRegular(), "%s is not a regular file", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

// AssertRealDir checks that path is a directory and not a link to one
func AssertRealDir(t *testing.T, path string) {
	t.Helper()

	info, err := os.Lstat(path)
	require.NoError(t, err, "expected directory at %s", path)
	assert.True(t, info.IsDir(), "%s is not a real directory", path)
}

// AssertNotExists checks that nothing, not even a dangling link, is at path
func AssertNotExists(t *testing.T, path string) {
	t.Helper()

	_, err := os.Lstat(path)
	assert.True(t, os.IsNotExist(err), "expected %s to be absent", path)
}

// Snapshot records every entry under dir: relative path -> file content,
// link dest or directory permissions
func Snapshot(t *testing.T, dir string) map[string]string {
	t.Helper()

	entries := map[string]string{}
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(dir, path)
		switch {
		case info.Mode()&os.ModeSymlink != 0:
			dest, _ := os.Readlink(path)
			entries[rel] = "link:" + dest
		case info.IsDir():
			entries[rel] = fmt.Sprintf("dir:%04o", info.Mode().Perm())
		default:
			data, _ := os.ReadFile(path)
			entries[rel] = "file:" + string(data)
		}
		return nil
	})
	require.NoError(t, err)
	return entries
}
