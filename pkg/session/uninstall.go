package session

import (
	"context"
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/logging"
	"github.com/arthur-debert/dotsetup/pkg/types"
)

// Uninstall unlinks the selected packages and restores their backups.
// Every package is checked in a dry run first; if any reports a problem
// nothing is unlinked or restored.
func (s *Session) Uninstall(ctx context.Context) (*types.RunReport, error) {
	done := logging.LogOperationStart(s.logger, "uninstall")
	defer done()

	selected, err := s.Packages()
	if err != nil {
		return nil, err
	}
	names := types.PackageNames(selected)
	report := &types.RunReport{Mode: types.ModeUninstall, DryRun: s.Options.DryRun, Packages: names}
	pkgs := unique(selected)
	opts := s.linkOptions(false)

	created := make(map[string][]string, len(pkgs))
	problems := map[string][]string{}
	for _, pkg := range pkgs {
		dirs, err := s.backups.Created(pkg)
		if err != nil {
			return report, batchError(ctx, err, "unlink", names)
		}
		created[pkg.Name] = dirs

		plan, err := s.engine.PlanUnstow(pkg, s.Paths.Target(), opts)
		if err != nil {
			return report, batchError(ctx, err, "unlink", names)
		}
		if plan.HasProblems() {
			problems[pkg.Name] = plan.Problems
		}
	}
	if len(problems) > 0 {
		return report, problemsError(problems, names)
	}

	for _, pkg := range pkgs {
		pkgOpts := opts
		pkgOpts.Created = created[pkg.Name]
		if _, err := s.engine.Unstow(ctx, pkg, s.Paths.Target(), pkgOpts); err != nil {
			return report, batchError(ctx, err, "unlink", names)
		}
		report.Unlinked = append(report.Unlinked, pkg.Name)
	}

	// Links are gone, so restoring cannot clobber a live link
	for _, pkg := range pkgs {
		result, err := s.backups.Restore(ctx, pkg, s.Options.DryRun)
		if result != nil {
			report.Restored = append(report.Restored, result.Restored...)
			report.Kept = append(report.Kept, result.Kept...)
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return report, ctxErr
			}
			return report, errors.Wrapf(err, errors.ErrRestoreFailed, "failed to restore backup of %s", pkg.Name).
				WithDetail("package", pkg.Name)
		}
		if !s.Options.DryRun {
			if err := s.backups.Forget(pkg); err != nil {
				return report, err
			}
		}
	}

	return report, nil
}

// problemsError reports unlink problems found before anything was touched
func problemsError(problems map[string][]string, names []string) error {
	return errors.Newf(errors.ErrSymlinkFailed, "cannot safely unlink packages: %s", strings.Join(names, " ")).
		WithDetail("packages", names).
		WithDetail("problems", problems)
}
