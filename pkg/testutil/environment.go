package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotsetup/pkg/filesystem"
	"github.com/arthur-debert/dotsetup/pkg/types"
	"github.com/stretchr/testify/require"
)

// TestEnvironment is a dotfiles repository and target directory rooted in a
// test temp dir
type TestEnvironment struct {
	// Root is the dotfiles repository
	Root string

	// Target is the directory packages are linked into
	Target string

	// StateHome receives the log file
	StateHome string

	FS types.FS

	t *testing.T
}

// NewTestEnvironment creates a new isolated test environment
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	tempDir := t.TempDir()
	env := &TestEnvironment{
		Root:      filepath.Join(tempDir, "dotfiles"),
		Target:    filepath.Join(tempDir, "home"),
		StateHome: filepath.Join(tempDir, "state"),
		FS:        filesystem.NewOS(),
		t:         t,
	}

	for _, dir := range []string{env.Root, env.Target, env.StateHome} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}

	t.Setenv("DOTFILES_ROOT", env.Root)
	t.Setenv("HOME", env.Target)
	t.Setenv("XDG_STATE_HOME", env.StateHome)

	return env
}

// SetupPackage creates a package with the given files (relative path -> content)
func (env *TestEnvironment) SetupPackage(name string, files map[string]string) types.Package {
	env.t.Helper()

	pkgPath := filepath.Join(env.Root, name)
	require.NoError(env.t, os.MkdirAll(pkgPath, 0755))

	for rel, content := range files {
		writeFile(env.t, filepath.Join(pkgPath, rel), content, 0644)
	}

	return types.Package{Name: name, Path: pkgPath}
}

// AddHook writes an executable hook script into a package
func (env *TestEnvironment) AddHook(pkg, name, script string) string {
	env.t.Helper()

	path := filepath.Join(env.Root, pkg, name)
	writeFile(env.t, path, script, 0755)
	return path
}

// AddTargetFile creates a regular file in the target directory
func (env *TestEnvironment) AddTargetFile(rel, content string) string {
	env.t.Helper()

	path := filepath.Join(env.Target, rel)
	writeFile(env.t, path, content, 0644)
	return path
}

// AddTargetSymlink creates a symlink in the target directory
func (env *TestEnvironment) AddTargetSymlink(rel, dest string) string {
	env.t.Helper()

	path := filepath.Join(env.Target, rel)
	require.NoError(env.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(env.t, os.Symlink(dest, path))
	return path
}

// AddBackupFile creates an entry in a package's backup directory
func (env *TestEnvironment) AddBackupFile(backupDir, pkg, rel, content string) string {
	env.t.Helper()

	path := filepath.Join(env.Root, backupDir, pkg, rel)
	writeFile(env.t, path, content, 0644)
	return path
}

// TargetPath returns the absolute path of rel in the target directory
func (env *TestEnvironment) TargetPath(rel string) string {
	return filepath.Join(env.Target, rel)
}

// PackagePath returns the absolute path of rel in a package
func (env *TestEnvironment) PackagePath(pkg, rel string) string {
	return filepath.Join(env.Root, pkg, rel)
}

func writeFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
}
