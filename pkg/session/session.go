package session

import (
	"context"
	"io"
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/backup"
	"github.com/arthur-debert/dotsetup/pkg/config"
	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/hooks"
	"github.com/arthur-debert/dotsetup/pkg/logging"
	"github.com/arthur-debert/dotsetup/pkg/packs"
	"github.com/arthur-debert/dotsetup/pkg/paths"
	"github.com/arthur-debert/dotsetup/pkg/pkgmgr"
	"github.com/arthur-debert/dotsetup/pkg/stow"
	"github.com/arthur-debert/dotsetup/pkg/types"
	"github.com/rs/zerolog"
)

// Deps are the collaborators a session talks to outside the filesystem
type Deps struct {
	FS       types.FS
	Runner   pkgmgr.Runner
	Prompter pkgmgr.Prompter
	Notifier pkgmgr.Notifier

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Session is the state of one invocation
type Session struct {
	Options types.Options
	Paths   *paths.Paths
	Config  *config.Config

	fs        types.FS
	engine    *stow.Engine
	backups   *backup.Manager
	hooks     *hooks.Runner
	installer *lazyInstaller
	logger    zerolog.Logger
}

// New creates a session
func New(opts types.Options, p *paths.Paths, cfg *config.Config, deps Deps) *Session {
	engine := stow.New(deps.FS)
	s := &Session{
		Options: opts,
		Paths:   p,
		Config:  cfg,
		fs:      deps.FS,
		engine:  engine,
		backups: backup.New(deps.FS, engine, p),
		installer: &lazyInstaller{
			deps:   deps,
			config: cfg.PackageManager,
		},
		logger: logging.GetLogger("session"),
	}
	s.hooks = hooks.New(deps.FS, s.installer, hooks.Options{
		FileName: cfg.Hooks.FileName,
		Stdin:    deps.Stdin,
		Stdout:   deps.Stdout,
		Stderr:   deps.Stderr,
	})
	return s
}

// Run executes the flow selected by the options
func (s *Session) Run(ctx context.Context) (*types.RunReport, error) {
	if s.Options.IsUninstall() {
		return s.Uninstall(ctx)
	}
	return s.Install(ctx)
}

// lazyInstaller creates the package manager installer on first use, so
// runs without install_bin calls never touch the system. One instance is
// shared by every hook of the run.
type lazyInstaller struct {
	deps      Deps
	config    config.PackageManager
	installer *pkgmgr.Installer
}

func (l *lazyInstaller) Install(ctx context.Context, name string, required bool) error {
	if l.installer == nil {
		runner := l.deps.Runner
		if runner == nil {
			runner = pkgmgr.NewExecRunner()
		}
		l.installer = pkgmgr.New(runner, l.deps.Prompter, l.deps.Notifier, pkgmgr.Options{
			Priority:          l.config.Priority,
			PromptUpdate:      l.config.PromptUpdate,
			BootstrapHomebrew: l.config.BootstrapHomebrew,
			BootstrapURL:      l.config.BootstrapURL,
		})
	}
	return l.installer.Install(ctx, name, required)
}

// Packages resolves the requested package set
func (s *Session) Packages() ([]types.Package, error) {
	return packs.Select(s.fs, s.Paths.Root(), s.Options.Packages, s.Config.Packages.Ignore)
}

func (s *Session) linkOptions(fold bool) stow.Options {
	ignore := append([]string{packs.IgnoreFileName}, s.Config.Link.Ignore...)
	ignore = append(ignore, s.Config.Hooks.FileName)
	return stow.Options{
		Fold:   fold,
		DryRun: s.Options.DryRun,
		Ignore: ignore,
	}
}

func (s *Session) snapshot(pkg types.Package, names []string) types.HookSnapshot {
	return types.HookSnapshot{
		Package:    pkg.Name,
		PackageDir: pkg.Path,
		Root:       s.Paths.Root(),
		Target:     s.Paths.Target(),
		Mode:       s.Options.Mode,
		NoScripts:  s.Options.NoScripts,
		Packages:   names,
	}
}

// unique drops repeated packages, keeping the first occurrence
func unique(pkgs []types.Package) []types.Package {
	seen := make(map[string]bool, len(pkgs))
	var out []types.Package
	for _, pkg := range pkgs {
		if seen[pkg.Name] {
			continue
		}
		seen[pkg.Name] = true
		out = append(out, pkg)
	}
	return out
}

// batchError names the whole requested set: a failure in one package fails
// the batch, packages already processed are not rolled back
func batchError(ctx context.Context, err error, action string, names []string) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return errors.Wrapf(err, errors.ErrSymlinkFailed, "failed to %s packages: %s", action, strings.Join(names, " ")).
		WithDetail("packages", names)
}
