package types_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotsetup/pkg/filesystem"
	"github.com/arthur-debert/dotsetup/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackage_FileExists(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "setup_"), []byte("#!/bin/sh\n"), 0755))

	pkg := types.Package{Name: filepath.Base(dir), Path: dir}
	fs := filesystem.NewOS()

	exists, err := pkg.FileExists(fs, "setup_")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = pkg.FileExists(fs, "missing")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.Equal(t, filepath.Join(dir, "a", "b"), pkg.FilePath("a/b"))
}

func TestPackageNames(t *testing.T) {
	pkgs := []types.Package{{Name: "vim"}, {Name: "zsh"}, {Name: "vim"}}
	assert.Equal(t, []string{"vim", "zsh", "vim"}, types.PackageNames(pkgs))
	assert.Empty(t, types.PackageNames(nil))
}
