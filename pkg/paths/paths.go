package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/errors"
)

// Environment variable names
const (
	// EnvDotfilesRoot overrides repository root discovery
	EnvDotfilesRoot = "DOTFILES_ROOT"

	// EnvHome is the standard home directory variable and the default link target
	EnvHome = "HOME"
)

// DefaultBackupDir is the backup directory name used when none is configured
const DefaultBackupDir = "_backup"

// Options configures path resolution. Empty fields are discovered.
type Options struct {
	Root      string
	Target    string
	BackupDir string
}

// Paths provides centralized path management for one run
type Paths struct {
	root         string
	target       string
	backupDir    string
	usedFallback bool
}

// New resolves the repository root, the link target and the backup root.
func New(opts Options) (*Paths, error) {
	p := &Paths{backupDir: opts.BackupDir}
	if p.backupDir == "" {
		p.backupDir = DefaultBackupDir
	}

	if opts.Root != "" {
		p.root = expandHome(opts.Root)
	} else {
		root, usedFallback, err := findRoot()
		if err != nil {
			return nil, err
		}
		p.root = root
		p.usedFallback = usedFallback
	}

	absRoot, err := filepath.Abs(p.root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for repository root")
	}
	p.root = absRoot

	target := opts.Target
	if target == "" {
		target = os.Getenv(EnvHome)
	}
	if target == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrNotFound, "cannot determine the link target directory")
		}
		target = home
	}
	absTarget, err := filepath.Abs(expandHome(target))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for target")
	}
	p.target = absTarget

	return p, nil
}

// findRoot determines the repository root using the following priority:
// 1. DOTFILES_ROOT environment variable
// 2. Git repository root of the working directory
// 3. Current working directory (reported as fallback)
func findRoot() (string, bool, error) {
	if root := os.Getenv(EnvDotfilesRoot); root != "" {
		return expandHome(root), false, nil
	}

	if gitRoot, err := findGitRoot(); err == nil && gitRoot != "" {
		return gitRoot, false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}
	return cwd, true, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	output, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}
	return gitRoot, nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir := os.Getenv(EnvHome)
	if homeDir == "" {
		var err error
		homeDir, err = os.UserHomeDir()
		if err != nil {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// ExpandHome is a utility function that expands ~ in paths
func ExpandHome(path string) string {
	return expandHome(path)
}

// Root returns the repository root
func (p *Paths) Root() string {
	return p.root
}

// UsedFallback returns true if the current working directory was used as fallback
func (p *Paths) UsedFallback() bool {
	return p.usedFallback
}

// Target returns the directory links are created in
func (p *Paths) Target() string {
	return p.target
}

// PackagePath returns the path to a package directory
func (p *Paths) PackagePath(name string) string {
	return filepath.Join(p.root, name)
}

// BackupDirName returns the name of the backup directory under the root
func (p *Paths) BackupDirName() string {
	return p.backupDir
}

// BackupRoot returns the directory holding every package backup
func (p *Paths) BackupRoot() string {
	return filepath.Join(p.root, p.backupDir)
}

// PackageBackupDir returns the backup directory of one package
func (p *Paths) PackageBackupDir(name string) string {
	return filepath.Join(p.BackupRoot(), name)
}

// PackageLedger returns the file recording the target directories
// installs of a package created
func (p *Paths) PackageLedger(name string) string {
	return filepath.Join(p.BackupRoot(), "."+name+".toml")
}

// TargetPath maps a package relative path into the target directory
func (p *Paths) TargetPath(rel string) string {
	return filepath.Join(p.target, rel)
}

// Display shortens a path under the target directory to ~/..., for messages
func (p *Paths) Display(path string) string {
	rel, err := filepath.Rel(p.target, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	if rel == "." {
		return "~"
	}
	return filepath.Join("~", rel)
}
