package hooks

import (
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/logging"
	"github.com/arthur-debert/dotsetup/pkg/types"
	"github.com/rs/zerolog"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// DefaultFileName is the hook file looked up in every package
const DefaultFileName = "setup_"

// Options configures a Runner
type Options struct {
	// FileName is the hook file name, DefaultFileName when empty
	FileName string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Runner executes package hooks
type Runner struct {
	fs        types.FS
	installer Installer
	opts      Options
	logger    zerolog.Logger
}

// New creates a Runner. installer backs the install_bin builtin.
func New(fsys types.FS, installer Installer, opts Options) *Runner {
	if opts.FileName == "" {
		opts.FileName = DefaultFileName
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	return &Runner{
		fs:        fsys,
		installer: installer,
		opts:      opts,
		logger:    logging.GetLogger("hooks"),
	}
}

// HookPath returns where the hook of pkg would be
func (r *Runner) HookPath(pkg types.Package) string {
	return pkg.FilePath(r.opts.FileName)
}

// Find reports whether pkg has an executable hook
func (r *Runner) Find(pkg types.Package) (string, bool) {
	path := r.HookPath(pkg)
	info, err := r.fs.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return path, false
	}
	if info.Mode().Perm()&0111 == 0 {
		r.logger.Debug().Str("path", path).Msg("Hook is not executable, skipping")
		return path, false
	}
	return path, true
}

// Run executes the hook of pkg, if any. A failing hook is reported in the
// result only; the returned error is reserved for failures that must end the
// whole run: cancellation, a missing package manager or a failed required
// install.
func (r *Runner) Run(ctx context.Context, pkg types.Package, snap types.HookSnapshot) (types.HookResult, error) {
	path, ok := r.Find(pkg)
	result := types.HookResult{Package: pkg.Name, Path: path}
	if !ok {
		return result, nil
	}
	result.Ran = true

	content, err := r.fs.ReadFile(path)
	if err != nil {
		result.ExitCode = 1
		result.Err = errors.Wrap(err, errors.ErrHookFailed, "cannot read hook").WithDetail("path", path)
		return result, nil
	}

	done := logging.LogOperationStart(r.logger, "hook "+pkg.Name)
	defer done()

	env := append(os.Environ(), snap.Environ()...)
	if InProcess(content) {
		err = r.runShell(ctx, path, pkg.Path, content, env)
	} else {
		err = r.runProcess(ctx, path, pkg.Path, env)
	}

	if err == nil {
		return result, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		result.ExitCode = 1
		result.Err = ctxErr
		return result, ctxErr
	}

	var status interp.ExitStatus
	var exitErr *exec.ExitError
	switch {
	case stderrors.As(err, &status):
		result.ExitCode = int(status)
	case stderrors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		result.ExitCode = 1
		result.Err = err
	}

	if errors.HasErrorCode(err, errors.ErrNoPackageManager) || errors.HasErrorCode(err, errors.ErrRequiredInstall) {
		return result, errors.Wrapf(err, errors.ErrHookFailed, "hook of package %s failed", pkg.Name).
			WithDetail("package", pkg.Name).
			WithDetail("path", path)
	}

	r.logger.Warn().
		Str("package", pkg.Name).
		Int("exitCode", result.ExitCode).
		Err(result.Err).
		Msg("Hook failed")
	return result, nil
}

func (r *Runner) runShell(ctx context.Context, path, dir string, content []byte, env []string) error {
	prog, err := syntax.NewParser(syntax.Variant(syntax.LangBash)).Parse(strings.NewReader(string(content)), path)
	if err != nil {
		return errors.Wrap(err, errors.ErrHookFailed, "cannot parse hook").WithDetail("path", path)
	}

	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(r.opts.Stdin, r.opts.Stdout, r.opts.Stderr),
		interp.ExecHandlers(r.execHandler),
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrHookFailed, "cannot create interpreter")
	}

	r.logger.Debug().Str("path", path).Msg("Running hook in-process")
	return runner.Run(ctx, prog)
}

func (r *Runner) runProcess(ctx context.Context, path, dir string, env []string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, abs)
	cmd.Dir = dir
	cmd.Env = env
	cmd.Stdin = r.opts.Stdin
	cmd.Stdout = r.opts.Stdout
	cmd.Stderr = r.opts.Stderr

	logging.LogCommand(r.logger, abs, nil)
	if err := cmd.Run(); err != nil {
		var pathErr *fs.PathError
		if stderrors.As(err, &pathErr) {
			return errors.Wrap(err, errors.ErrHookFailed, "cannot start hook").WithDetail("path", path)
		}
		return err
	}
	return nil
}
