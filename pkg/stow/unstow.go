package stow

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/types"
)

// PlanUnstow computes which links of pkg would be removed from target.
// Links into the package tree that do not point at the matching package
// entry, and target entries that cannot be inspected, are reported as
// problems.
func (e *Engine) PlanUnstow(pkg types.Package, target string, opts Options) (*Plan, error) {
	plan := &Plan{Package: pkg, Target: target}
	if _, err := e.planUnstowDir(plan, "", opts); err != nil {
		return nil, err
	}

	e.logger.Debug().
		Str("package", pkg.Name).
		Int("unlinks", plan.Count(ActionUnlink)).
		Int("problems", len(plan.Problems)).
		Msg("Computed unstow plan")
	return plan, nil
}

// Unstow removes the links of pkg from target and prunes the directories in
// opts.Created that the removal left empty. Nothing is changed when the plan
// has problems.
func (e *Engine) Unstow(ctx context.Context, pkg types.Package, target string, opts Options) (*Plan, error) {
	plan, err := e.PlanUnstow(pkg, target, opts)
	if err != nil {
		return nil, err
	}
	if plan.HasProblems() {
		return plan, errors.Newf(errors.ErrSymlinkFailed, "cannot unlink package %s", pkg.Name).
			WithDetail("package", pkg.Name).
			WithDetail("problems", plan.Problems)
	}
	if opts.DryRun {
		return plan, nil
	}
	if err := e.apply(ctx, plan); err != nil {
		return plan, err
	}
	return plan, nil
}

// planUnstowDir reports whether anything below relDir will be unlinked
func (e *Engine) planUnstowDir(plan *Plan, relDir string, opts Options) (bool, error) {
	srcDir := filepath.Join(plan.Package.Path, relDir)
	entries, err := e.fs.ReadDir(srcDir)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrFileAccess, "cannot read package directory").
			WithDetail("path", srcDir)
	}

	removed := false
	for _, entry := range entries {
		name := entry.Name()
		if ignored(name, opts.Ignore) {
			continue
		}

		rel := filepath.Join(relDir, name)
		src := filepath.Join(plan.Package.Path, rel)
		dst := filepath.Join(plan.Target, rel)

		info, err := e.fs.Lstat(dst)
		switch {
		case err != nil && os.IsNotExist(err):
			continue

		case err != nil:
			plan.Problems = append(plan.Problems, fmt.Sprintf("%s: %v", rel, err))

		case info.Mode()&fs.ModeSymlink != 0:
			dest, err := e.fs.Readlink(dst)
			if err != nil {
				plan.Problems = append(plan.Problems, fmt.Sprintf("%s: %v", rel, err))
				continue
			}
			resolved := resolveLink(dst, dest)
			switch {
			case resolved == src:
				plan.add(ActionUnlink, rel, src, dst)
				removed = true
			case within(resolved, plan.Package.Path):
				plan.Problems = append(plan.Problems,
					fmt.Sprintf("%s: links to %s instead of %s", rel, dest, src))
			}

		case info.IsDir() && entry.IsDir():
			below, err := e.planUnstowDir(plan, rel, opts)
			if err != nil {
				return false, err
			}
			if !below {
				continue
			}
			removed = true
			if opts.created(rel) {
				plan.add(ActionPrune, rel, src, dst)
			}
		}
	}
	return removed, nil
}
