package hooks

import (
	"context"
	"fmt"

	"mvdan.cc/sh/v3/interp"
)

// InstallBinBuiltin is the shell command hooks use to request a binary
const InstallBinBuiltin = "install_bin"

// Installer installs binaries on behalf of hooks
type Installer interface {
	Install(ctx context.Context, name string, required bool) error
}

// parseInstallBinArgs accepts "NAME [--required]" in any order
func parseInstallBinArgs(args []string) (string, bool, error) {
	var name string
	required := false
	for _, arg := range args {
		switch arg {
		case "--required", "-r":
			required = true
		default:
			if name != "" {
				return "", false, fmt.Errorf("unexpected argument %q", arg)
			}
			name = arg
		}
	}
	if name == "" {
		return "", false, fmt.Errorf("usage: %s NAME [--required]", InstallBinBuiltin)
	}
	return name, required, nil
}

// execHandler intercepts builtins before falling back to external commands.
// Installer errors are returned as is, which stops the interpreter: a
// missing package manager or a failed required install ends the hook.
func (r *Runner) execHandler(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(ctx context.Context, args []string) error {
		if len(args) == 0 || args[0] != InstallBinBuiltin {
			return next(ctx, args)
		}

		hc := interp.HandlerCtx(ctx)
		name, required, err := parseInstallBinArgs(args[1:])
		if err != nil {
			fmt.Fprintf(hc.Stderr, "%s: %v\n", InstallBinBuiltin, err)
			return interp.ExitStatus(2)
		}

		if r.installer == nil {
			fmt.Fprintf(hc.Stderr, "%s: no installer available\n", InstallBinBuiltin)
			return interp.ExitStatus(1)
		}

		r.logger.Debug().Str("binary", name).Bool("required", required).Msg("Hook requested binary")
		return r.installer.Install(ctx, name, required)
	}
}
