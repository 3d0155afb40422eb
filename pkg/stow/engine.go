package stow

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/filesystem"
	"github.com/arthur-debert/dotsetup/pkg/logging"
	"github.com/arthur-debert/dotsetup/pkg/types"
	synthfilesystem "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/rs/zerolog"
)

// Engine plans and applies package links on a filesystem
type Engine struct {
	fs     types.FS
	synth  synthfilesystem.FullFileSystem
	logger zerolog.Logger
}

// New creates an Engine working on fsys
func New(fsys types.FS) *Engine {
	return &Engine{
		fs:     fsys,
		synth:  filesystem.Synth(fsys),
		logger: logging.GetLogger("stow"),
	}
}

// Plan computes what stowing pkg into target would do
func (e *Engine) Plan(pkg types.Package, target string, opts Options) (*Plan, error) {
	plan := &Plan{Package: pkg, Target: target}
	if err := e.planStowDir(plan, "", opts); err != nil {
		return nil, err
	}

	e.logger.Debug().
		Str("package", pkg.Name).
		Int("links", plan.Count(ActionLink)).
		Int("linked", plan.Count(ActionLinked)).
		Int("conflicts", len(plan.Conflicts)).
		Msg("Computed stow plan")
	return plan, nil
}

// Stow links pkg into target. Nothing is changed when the plan has conflicts.
func (e *Engine) Stow(ctx context.Context, pkg types.Package, target string, opts Options) (*Plan, error) {
	plan, err := e.Plan(pkg, target, opts)
	if err != nil {
		return nil, err
	}
	if plan.HasConflicts() {
		return plan, conflictError(plan)
	}
	if opts.DryRun {
		return plan, nil
	}
	if err := e.apply(ctx, plan); err != nil {
		return plan, err
	}
	return plan, nil
}

// Restow unstows pkg and stows it again, picking up files added to or
// removed from the package since the last run
func (e *Engine) Restow(ctx context.Context, pkg types.Package, target string, opts Options) (*Plan, error) {
	if !opts.DryRun {
		if _, err := e.Unstow(ctx, pkg, target, opts); err != nil {
			return nil, err
		}
	}
	return e.Stow(ctx, pkg, target, opts)
}

func (e *Engine) planStowDir(plan *Plan, relDir string, opts Options) error {
	srcDir := filepath.Join(plan.Package.Path, relDir)
	entries, err := e.fs.ReadDir(srcDir)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot read package directory").
			WithDetail("path", srcDir)
	}

	for _, entry := range entries {
		name := entry.Name()
		if ignored(name, opts.Ignore) {
			e.logger.Trace().Str("name", name).Msg("Ignoring package entry")
			continue
		}

		rel := filepath.Join(relDir, name)
		src := filepath.Join(plan.Package.Path, rel)
		dst := filepath.Join(plan.Target, rel)
		srcIsDir := entry.IsDir()

		info, err := e.fs.Lstat(dst)
		switch {
		case err != nil && os.IsNotExist(err):
			if srcIsDir && !opts.Fold {
				plan.add(ActionMkdir, rel, src, dst)
				if err := e.planStowDir(plan, rel, opts); err != nil {
					return err
				}
				continue
			}
			e.addLink(plan, rel, src, dst)

		case err != nil:
			return errors.Wrap(err, errors.ErrFileAccess, "cannot inspect target").
				WithDetail("path", dst)

		case info.Mode()&fs.ModeSymlink != 0:
			dest, err := e.fs.Readlink(dst)
			if err != nil {
				return errors.Wrap(err, errors.ErrFileAccess, "cannot read link").
					WithDetail("path", dst)
			}
			if resolveLink(dst, dest) == src {
				plan.add(ActionLinked, rel, src, dst)
				continue
			}
			plan.conflict(rel, dst, types.ConflictForeignLink)

		case info.IsDir():
			if srcIsDir {
				if err := e.planStowDir(plan, rel, opts); err != nil {
					return err
				}
				continue
			}
			plan.conflict(rel, dst, types.ConflictDir)

		default:
			plan.conflict(rel, dst, types.ConflictFile)
		}
	}
	return nil
}

func (e *Engine) addLink(plan *Plan, rel, src, dst string) {
	dest, err := filepath.Rel(filepath.Dir(dst), src)
	if err != nil {
		dest = src
	}
	plan.Actions = append(plan.Actions, Action{
		Kind:     ActionLink,
		RelPath:  rel,
		Source:   src,
		Target:   dst,
		LinkDest: dest,
	})
}

func (e *Engine) apply(ctx context.Context, plan *Plan) error {
	batch := filesystem.NewBatch("stow_" + plan.Package.Name)
	steps := make(map[string]Action)

	for _, action := range plan.Actions {
		label := string(action.Kind) + " " + action.RelPath
		steps[label] = action

		switch action.Kind {
		case ActionMkdir:
			batch.Mkdir(action.Target, 0755, label)
		case ActionLink:
			batch.Symlink(action.LinkDest, action.Target, label)
		case ActionUnlink:
			batch.Remove(action.Target, label)
		case ActionPrune:
			target := action.Target
			batch.Do(label, func(ctx context.Context, fsys synthfilesystem.FileSystem) error {
				entries, err := e.fs.ReadDir(target)
				if err != nil || len(entries) > 0 {
					return nil
				}
				return fsys.Remove(target)
			})
		}
	}

	if err := batch.Run(ctx, e.synth); err != nil {
		var batchErr *filesystem.BatchError
		if stderrors.As(err, &batchErr) {
			return linkError(plan, steps[batchErr.Label], batchErr.Err)
		}
		return err
	}

	e.logger.Trace().
		Str("package", plan.Package.Name).
		Int("operations", batch.Len()).
		Msg("Applied plan")
	return nil
}

func conflictError(plan *Plan) error {
	conflicts := make([]string, len(plan.Conflicts))
	for i, c := range plan.Conflicts {
		conflicts[i] = c.String()
	}
	return errors.Newf(errors.ErrSymlinkConflict, "%d existing target(s) block package %s", len(plan.Conflicts), plan.Package.Name).
		WithDetail("package", plan.Package.Name).
		WithDetail("conflicts", conflicts)
}

func linkError(plan *Plan, action Action, err error) error {
	return errors.Wrapf(err, errors.ErrSymlinkFailed, "cannot %s %s", action.Kind, action.RelPath).
		WithDetail("package", plan.Package.Name).
		WithDetail("path", action.Target)
}
