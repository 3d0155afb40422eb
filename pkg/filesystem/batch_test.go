package filesystem_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotsetup/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatch_RunsInOrder(t *testing.T) {
	fsys := filesystem.NewOS()
	dir := t.TempDir()
	src := filepath.Join(dir, "pkg", "a.conf")
	require.NoError(t, os.MkdirAll(filepath.Dir(src), 0755))
	require.NoError(t, os.WriteFile(src, []byte("a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old"), []byte("old"), 0644))

	batch := filesystem.NewBatch("test")
	batch.Mkdir(filepath.Join(dir, "home", "conf"), 0700, "mkdir conf")
	batch.Symlink("../../pkg/a.conf", filepath.Join(dir, "home", "conf", "a.conf"), "link a.conf")
	batch.Remove(filepath.Join(dir, "old"), "remove old")
	batch.Move(fsys, filepath.Join(dir, "pkg"), filepath.Join(dir, "moved"), "move pkg")
	assert.Equal(t, 4, batch.Len())

	require.NoError(t, batch.Run(context.Background(), filesystem.Synth(fsys)))

	info, err := os.Stat(filepath.Join(dir, "home", "conf"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())

	dest, err := os.Readlink(filepath.Join(dir, "home", "conf", "a.conf"))
	require.NoError(t, err)
	assert.Equal(t, "../../pkg/a.conf", dest)

	_, err = os.Lstat(filepath.Join(dir, "old"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "moved", "a.conf"))
	assert.NoError(t, err)
}

func TestBatch_FailureNamesStep(t *testing.T) {
	fsys := filesystem.NewOS()
	dir := t.TempDir()

	batch := filesystem.NewBatch("test")
	batch.Remove(filepath.Join(dir, "missing"), "remove missing")

	err := batch.Run(context.Background(), filesystem.Synth(fsys))
	require.Error(t, err)

	var batchErr *filesystem.BatchError
	require.True(t, errors.As(err, &batchErr))
	assert.Equal(t, "remove missing", batchErr.Label)
}

func TestBatch_Cancelled(t *testing.T) {
	fsys := filesystem.NewOS()
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch := filesystem.NewBatch("test")
	batch.Mkdir(filepath.Join(dir, "never"), 0755, "mkdir never")

	err := batch.Run(ctx, filesystem.Synth(fsys))
	assert.ErrorIs(t, err, context.Canceled)
	_, err = os.Stat(filepath.Join(dir, "never"))
	assert.True(t, os.IsNotExist(err))
}
