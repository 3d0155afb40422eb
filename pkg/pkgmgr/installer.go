package pkgmgr

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/logging"
	"github.com/rs/zerolog"
)

// UpdateQuestion is asked once per run before the first install
const UpdateQuestion = "Update package lists before auto-installing anything?"

// Options configures an Installer
type Options struct {
	// Priority is the detection order, DefaultPriority when empty
	Priority []string

	// PromptUpdate asks whether to refresh package lists before installing
	PromptUpdate bool

	// BootstrapHomebrew installs Homebrew on darwin when no manager is found
	BootstrapHomebrew bool
	BootstrapURL      string

	// GOOS and EUID default to the running process
	GOOS string
	EUID *int
}

// Installer installs binaries with the detected package manager.
// Detection and the update prompt happen at most once per Installer.
type Installer struct {
	runner   Runner
	prompter Prompter
	notifier Notifier
	opts     Options
	logger   zerolog.Logger

	detected  bool
	manager   Manager
	detectErr error
	prompted  bool
}

// New creates an Installer. Nothing is detected until the first Install.
func New(runner Runner, prompter Prompter, notifier Notifier, opts Options) *Installer {
	if len(opts.Priority) == 0 {
		opts.Priority = DefaultPriority
	}
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if opts.EUID == nil {
		euid := os.Geteuid()
		opts.EUID = &euid
	}
	return &Installer{
		runner:   runner,
		prompter: prompter,
		notifier: notifier,
		opts:     opts,
		logger:   logging.GetLogger("pkgmgr"),
	}
}

// Install installs the package providing binary name.
// A failure is an ErrRequiredInstall error when required is set, and only
// logged otherwise. No usable package manager is always an error.
func (i *Installer) Install(ctx context.Context, name string, required bool) error {
	manager, err := i.Detect(ctx)
	if err != nil {
		return err
	}

	i.maybeUpdate(ctx, manager)

	args := append(append([]string(nil), manager.InstallArgs...), name)
	cmd := i.command(manager, args, false)
	logging.LogCommand(i.logger, cmd.Name, cmd.Args)

	if err := i.runner.Run(ctx, cmd); err != nil {
		if required {
			return errors.Wrapf(err, errors.ErrRequiredInstall, "failed to install required binary %s", name).
				WithDetail("binary", name).
				WithDetail("manager", manager.Name)
		}
		i.logger.Warn().Err(err).Str("binary", name).Str("manager", manager.Name).Msg("Optional install failed")
		return nil
	}

	if i.notifier != nil {
		i.notifier.Success("Installed %s", name)
	}
	i.logger.Info().Str("binary", name).Str("manager", manager.Name).Msg("Installed binary")
	return nil
}

// Detect returns the package manager, probing only on the first call
func (i *Installer) Detect(ctx context.Context) (Manager, error) {
	if i.detected {
		return i.manager, i.detectErr
	}
	i.detected = true

	if m, ok := i.lookup(); ok {
		i.manager = m
		return m, nil
	}

	if i.opts.GOOS == "darwin" && i.opts.BootstrapHomebrew {
		if m, ok := i.bootstrapHomebrew(ctx); ok {
			i.manager = m
			return m, nil
		}
	}

	i.detectErr = errors.New(errors.ErrNoPackageManager, "no supported package manager found").
		WithDetail("searched", i.opts.Priority)
	return Manager{}, i.detectErr
}

func (i *Installer) lookup() (Manager, bool) {
	for _, name := range i.opts.Priority {
		m, ok := Lookup(name)
		if !ok {
			i.logger.Debug().Str("manager", name).Msg("Skipping unsupported package manager")
			continue
		}
		path, err := i.runner.LookPath(name)
		if err != nil {
			continue
		}
		m.Path = path
		i.logger.Debug().Str("manager", name).Str("path", path).Msg("Detected package manager")
		return m, true
	}
	return Manager{}, false
}

func (i *Installer) bootstrapHomebrew(ctx context.Context) (Manager, bool) {
	i.logger.Info().Str("url", i.opts.BootstrapURL).Msg("Installing Homebrew")

	script := fmt.Sprintf(`/bin/bash -c "$(curl -fsSL %s)"`, i.opts.BootstrapURL)
	if err := i.runner.Run(ctx, Command{Name: "/bin/bash", Args: []string{"-c", script}}); err != nil {
		i.logger.Warn().Err(err).Msg("Homebrew bootstrap failed")
		return Manager{}, false
	}

	m, _ := Lookup("brew")
	for _, candidate := range append([]string{"brew"}, homebrewLocations...) {
		if path, err := i.runner.LookPath(candidate); err == nil {
			m.Path = path
			return m, true
		}
	}
	return Manager{}, false
}

func (i *Installer) maybeUpdate(ctx context.Context, manager Manager) {
	if i.prompted || !i.opts.PromptUpdate || i.prompter == nil {
		return
	}
	i.prompted = true

	yes, err := i.prompter.Confirm(UpdateQuestion)
	if err != nil {
		i.logger.Debug().Err(err).Msg("Update prompt unavailable, skipping")
		return
	}
	if !yes {
		return
	}

	if err := i.runner.Run(ctx, i.command(manager, manager.UpdateArgs, true)); err != nil {
		i.logger.Warn().Err(err).Str("manager", manager.Name).Msg("Package list update failed")
	}
}

// command prefixes sudo for managers that need root, unless already root
// or sudo is not installed
func (i *Installer) command(manager Manager, args []string, quiet bool) Command {
	bin := manager.Path
	if bin == "" {
		bin = manager.Name
	}

	if manager.Sudo && *i.opts.EUID != 0 {
		if sudo, err := i.runner.LookPath("sudo"); err == nil {
			return Command{Name: sudo, Args: append([]string{bin}, args...), Quiet: quiet}
		}
	}
	return Command{Name: bin, Args: args, Quiet: quiet}
}
