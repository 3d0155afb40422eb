package cli

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotsetup/internal/version"
	"github.com/arthur-debert/dotsetup/pkg/config"
	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/filesystem"
	"github.com/arthur-debert/dotsetup/pkg/logging"
	"github.com/arthur-debert/dotsetup/pkg/packs"
	"github.com/arthur-debert/dotsetup/pkg/paths"
	"github.com/arthur-debert/dotsetup/pkg/pkgmgr"
	"github.com/arthur-debert/dotsetup/pkg/session"
	"github.com/arthur-debert/dotsetup/pkg/types"
	"github.com/arthur-debert/dotsetup/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type flags struct {
	uninstall  bool
	noScripts  bool
	verbosity  int
	dryRun     bool
	root       string
	target     string
	showConfig bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var f flags

	rootCmd := &cobra.Command{
		Use:     MsgRootUse,
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: fmt.Sprintf(MsgVersionFormat, version.Version, version.Commit, version.Date),
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.Flags().BoolVarP(&f.uninstall, "uninstall", "u", false, MsgFlagUninstall)
	rootCmd.Flags().BoolVar(&f.noScripts, "no-scripts", false, MsgFlagNoScripts)
	rootCmd.Flags().CountVarP(&f.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.Flags().BoolVar(&f.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.Flags().StringVar(&f.root, "root", "", MsgFlagRoot)
	rootCmd.Flags().StringVar(&f.target, "target", "", MsgFlagTarget)
	rootCmd.Flags().BoolVar(&f.showConfig, "show-config", false, MsgFlagShowConfig)

	rootCmd.SetVersionTemplate(MsgVersionTemplate)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(err, errors.ErrUnknownOption, "invalid usage")
	})
	installHelp(rootCmd)

	return rootCmd
}

// flagsFrom lists the flags that were set, for the debug log
func flagsFrom(cmd *cobra.Command) []string {
	var set []string
	cmd.Flags().Visit(func(fl *pflag.Flag) {
		set = append(set, "--"+fl.Name+"="+fl.Value.String())
	})
	return set
}

func run(cmd *cobra.Command, f flags, args []string) error {
	p, err := paths.New(paths.Options{Root: f.root, Target: f.target})
	if err != nil {
		return err
	}

	cfg, err := config.Load(p.Root())
	if err != nil {
		return err
	}
	if cfg.Paths.BackupDir != p.BackupDirName() {
		p, err = paths.New(paths.Options{Root: p.Root(), Target: p.Target(), BackupDir: cfg.Paths.BackupDir})
		if err != nil {
			return err
		}
	}

	// Console only until the package names are known to be valid, so a
	// rejected run leaves no log file behind
	logOpts := logging.Options{
		Verbosity: f.verbosity,
		Console:   cmd.ErrOrStderr(),
		NoFile:    true,
	}
	logging.SetupLoggerWithOptions(logOpts)

	printer := ui.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), ui.FormatAuto)

	if f.showConfig {
		rendered, err := config.Render(cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	}

	opts := types.Options{
		Mode:      types.ModeInstall,
		NoScripts: f.noScripts,
		DryRun:    f.dryRun,
		Packages:  packs.NormalizePackageNames(args),
	}
	if f.uninstall {
		opts.Mode = types.ModeUninstall
	}

	fsys := filesystem.NewOS()
	if _, err := packs.Select(fsys, p.Root(), opts.Packages, cfg.Packages.Ignore); err != nil {
		return err
	}

	if cfg.Logging.File {
		logOpts.NoFile = false
		logging.SetupLoggerWithOptions(logOpts)
	}
	log.Debug().
		Str("root", p.Root()).
		Str("target", p.Target()).
		Strs("flags", flagsFrom(cmd)).
		Strs("args", args).
		Msg("Command started")

	if p.UsedFallback() {
		printer.Warn(MsgFallbackWarning, p.Display(p.Root()))
	}

	interactive := false
	if in, ok := cmd.InOrStdin().(*os.File); ok {
		interactive = ui.IsTerminal(in)
	}
	deps := session.Deps{
		FS: fsys,
		Runner: &pkgmgr.ExecRunner{
			Stdin:  cmd.InOrStdin(),
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		},
		Prompter: ui.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), interactive),
		Notifier: printer,
		Stdin:    cmd.InOrStdin(),
		Stdout:   cmd.OutOrStdout(),
		Stderr:   cmd.ErrOrStderr(),
	}

	report, err := session.New(opts, p, cfg, deps).Run(cmd.Context())
	if report != nil && err == nil {
		printer.Report(report, p.Display)
	}
	return err
}
