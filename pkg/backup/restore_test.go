package backup

import (
	"context"
	"testing"

	"github.com/arthur-debert/dotsetup/pkg/stow"
	"github.com/arthur-debert/dotsetup/pkg/testutil"
	"github.com/arthur-debert/dotsetup/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestore_RoundTrip(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	pkg := env.SetupPackage("foo", map[string]string{
		"bar/baz.conf": "package",
		".foorc":       "rc",
	})
	env.AddTargetFile("bar/baz.conf", "original")
	env.AddTargetFile(".foorc", "my rc")
	before := testutil.Snapshot(t, env.Target)

	m, engine, p := newManager(t, env)
	ctx := context.Background()

	_, err := m.Backup(ctx, []types.Package{pkg}, stow.Options{})
	require.NoError(t, err)
	_, err = engine.Stow(ctx, pkg, env.Target, stow.Options{})
	require.NoError(t, err)
	testutil.AssertLinksTo(t, env.TargetPath("bar/baz.conf"), env.PackagePath("foo", "bar/baz.conf"))

	_, err = engine.Unstow(ctx, pkg, env.Target, stow.Options{})
	require.NoError(t, err)
	result, err := m.Restore(ctx, pkg, false)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{env.TargetPath("bar"), env.TargetPath(".foorc")}, result.Restored)
	assert.Empty(t, result.Kept)
	assert.Equal(t, before, testutil.Snapshot(t, env.Target))
	testutil.AssertNotExists(t, p.PackageBackupDir("foo"))
	testutil.AssertNotExists(t, p.BackupRoot())
}

func TestRestore_MergesDirectories(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	pkg := env.SetupPackage("foo", map[string]string{"bar/baz.conf": "package"})
	env.AddBackupFile("_backup", "foo", "bar/baz.conf", "original")
	env.AddTargetFile("bar/unrelated.conf", "keep me")

	m, _, p := newManager(t, env)
	result, err := m.Restore(context.Background(), pkg, false)
	require.NoError(t, err)

	assert.Equal(t, []string{env.TargetPath("bar/baz.conf")}, result.Restored)
	testutil.AssertFileContent(t, env.TargetPath("bar/baz.conf"), "original")
	testutil.AssertFileContent(t, env.TargetPath("bar/unrelated.conf"), "keep me")
	testutil.AssertNotExists(t, env.TargetPath("bar/bar"))
	testutil.AssertNotExists(t, p.PackageBackupDir("foo"))
}

func TestRestore_NeverOverwrites(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	pkg := env.SetupPackage("foo", map[string]string{".foorc": "rc", ".barrc": "rc"})
	env.AddBackupFile("_backup", "foo", ".foorc", "original")
	env.AddBackupFile("_backup", "foo", ".barrc", "bar original")
	env.AddTargetFile(".foorc", "created since install")

	m, _, p := newManager(t, env)
	result, err := m.Restore(context.Background(), pkg, false)
	require.NoError(t, err)

	assert.Equal(t, []string{env.TargetPath(".foorc")}, result.Kept)
	assert.Equal(t, []string{env.TargetPath(".barrc")}, result.Restored)
	testutil.AssertFileContent(t, env.TargetPath(".foorc"), "created since install")
	testutil.AssertFileContent(t, env.TargetPath(".barrc"), "bar original")
	testutil.AssertFileContent(t, p.PackageBackupDir("foo")+"/.foorc", "original")
}

func TestRestore_NoBackupIsNoop(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	pkg := env.SetupPackage("foo", map[string]string{".foorc": "rc"})

	m, _, _ := newManager(t, env)
	result, err := m.Restore(context.Background(), pkg, false)
	require.NoError(t, err)
	assert.Empty(t, result.Restored)
	assert.Empty(t, result.Kept)
}

func TestRestore_DryRun(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	pkg := env.SetupPackage("foo", map[string]string{".foorc": "rc"})
	backupFile := env.AddBackupFile("_backup", "foo", ".foorc", "original")

	m, _, _ := newManager(t, env)
	result, err := m.Restore(context.Background(), pkg, true)
	require.NoError(t, err)

	assert.Equal(t, []string{env.TargetPath(".foorc")}, result.Restored)
	testutil.AssertFileContent(t, backupFile, "original")
	testutil.AssertNotExists(t, env.TargetPath(".foorc"))
}

func TestRestore_KeepsOtherPackageBackups(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	pkg := env.SetupPackage("foo", map[string]string{".foorc": "rc"})
	env.AddBackupFile("_backup", "foo", ".foorc", "original")
	other := env.AddBackupFile("_backup", "vim", ".vimrc", "vim original")

	m, _, p := newManager(t, env)
	_, err := m.Restore(context.Background(), pkg, false)
	require.NoError(t, err)

	testutil.AssertFileContent(t, other, "vim original")
	testutil.AssertRealDir(t, p.BackupRoot())
}

func TestRestore_DryRunWhileLinked(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	pkg := env.SetupPackage("foo", map[string]string{".foorc": "rc"})
	env.AddTargetFile(".foorc", "original")

	m, engine, _ := newManager(t, env)
	ctx := context.Background()
	_, err := m.Backup(ctx, []types.Package{pkg}, stow.Options{})
	require.NoError(t, err)
	_, err = engine.Stow(ctx, pkg, env.Target, stow.Options{})
	require.NoError(t, err)

	result, err := m.Restore(ctx, pkg, true)
	require.NoError(t, err)
	assert.Equal(t, []string{env.TargetPath(".foorc")}, result.Restored)
	assert.Empty(t, result.Kept)
	testutil.AssertLinksTo(t, env.TargetPath(".foorc"), env.PackagePath("foo", ".foorc"))
}
