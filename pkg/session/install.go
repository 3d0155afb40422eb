package session

import (
	"context"

	"github.com/arthur-debert/dotsetup/pkg/logging"
	"github.com/arthur-debert/dotsetup/pkg/packs"
	"github.com/arthur-debert/dotsetup/pkg/stow"
	"github.com/arthur-debert/dotsetup/pkg/types"
)

// Install backs up conflicts, links the selected packages and runs their
// hooks. The self package is restowed with folding whenever it exists.
func (s *Session) Install(ctx context.Context) (*types.RunReport, error) {
	done := logging.LogOperationStart(s.logger, "install")
	defer done()

	selected, err := s.Packages()
	if err != nil {
		return nil, err
	}
	names := types.PackageNames(selected)
	report := &types.RunReport{Mode: types.ModeInstall, DryRun: s.Options.DryRun, Packages: names}

	selfName := s.Config.Link.SelfPackage
	self, hasSelf, err := packs.Find(s.fs, s.Paths.Root(), selfName)
	if err != nil {
		return nil, err
	}
	regular := unique(packs.Without(selected, selfName))

	foldOpts := s.linkOptions(true)
	linkOpts := s.linkOptions(false)

	// Every conflict is moved away before the first link is made
	if hasSelf {
		backedUp, err := s.backups.Backup(ctx, []types.Package{self}, foldOpts)
		if err != nil {
			return report, err
		}
		report.BackedUp = append(report.BackedUp, backedUp...)
	}
	backedUp, err := s.backups.Backup(ctx, regular, linkOpts)
	if err != nil {
		return report, err
	}
	report.BackedUp = append(report.BackedUp, backedUp...)

	if hasSelf {
		if err := s.link(ctx, self, foldOpts, true); err != nil {
			return report, batchError(ctx, err, "link", names)
		}
		s.logger.Debug().Str("package", self.Name).Msg("Restowed self package")
	}

	for _, pkg := range regular {
		if err := s.link(ctx, pkg, linkOpts, false); err != nil {
			return report, batchError(ctx, err, "link", names)
		}
		report.Linked = append(report.Linked, pkg.Name)
	}
	if hasSelf && contains(names, selfName) {
		report.Linked = append(report.Linked, selfName)
	}

	if s.Options.NoScripts || s.Options.DryRun {
		s.logger.Debug().Bool("noScripts", s.Options.NoScripts).Msg("Skipping setup hooks")
		return report, nil
	}

	for _, pkg := range unique(selected) {
		result, err := s.hooks.Run(ctx, pkg, s.snapshot(pkg, names))
		if result.Ran {
			report.Hooks = append(report.Hooks, result)
		}
		if err != nil {
			return report, err
		}
	}

	return report, nil
}

// link stows pkg and records the directories it created. A dry run only
// plans: its conflicts are the ones the backup step reported and would have
// moved away.
func (s *Session) link(ctx context.Context, pkg types.Package, opts stow.Options, restow bool) error {
	if opts.DryRun {
		_, err := s.engine.Plan(pkg, s.Paths.Target(), opts)
		return err
	}

	created, err := s.backups.Created(pkg)
	if err != nil {
		return err
	}
	opts.Created = created

	var plan *stow.Plan
	if restow {
		plan, err = s.engine.Restow(ctx, pkg, s.Paths.Target(), opts)
	} else {
		plan, err = s.engine.Stow(ctx, pkg, s.Paths.Target(), opts)
	}
	if err != nil {
		return err
	}
	return s.backups.RecordCreated(pkg, plan.Created())
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
