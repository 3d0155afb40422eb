package packs

import (
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/logging"
	"github.com/arthur-debert/dotsetup/pkg/types"
)

// Select resolves command line tokens into packages.
// With no tokens every discovered package is returned. Otherwise each token
// is normalized to a basename and must name a candidate directory; the
// result keeps command line order and duplicates. Unknown or reserved names
// fail the whole selection before anything is touched.
func Select(fs types.FS, root string, tokens []string, ignore []string) ([]types.Package, error) {
	logger := logging.GetLogger("packs.selection")

	if len(tokens) == 0 {
		return Discover(fs, root, ignore)
	}

	candidates, err := Candidates(fs, root)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]types.Package, len(candidates))
	for _, pkg := range candidates {
		byName[pkg.Name] = pkg
	}

	var selected []types.Package
	var notFound []string
	for _, name := range NormalizePackageNames(tokens) {
		pkg, ok := byName[name]
		if !ok || IsReservedName(name) {
			notFound = append(notFound, name)
			continue
		}
		selected = append(selected, pkg)
		logger.Trace().Str("name", name).Msg("Selected package")
	}

	if len(notFound) > 0 {
		return nil, errors.Newf(errors.ErrPackageNotFound, "unrecognized package(s): %s", strings.Join(notFound, ", ")).
			WithDetail("notFound", notFound).
			WithDetail("available", types.PackageNames(candidates))
	}

	logger.Debug().
		Int("selected", len(selected)).
		Int("total", len(candidates)).
		Msg("Selected packages")
	return selected, nil
}

// Without returns pkgs minus every package called name, keeping order
func Without(pkgs []types.Package, name string) []types.Package {
	var kept []types.Package
	for _, pkg := range pkgs {
		if pkg.Name != name {
			kept = append(kept, pkg)
		}
	}
	return kept
}

// Find returns the candidate called name, if present
func Find(fs types.FS, root, name string) (types.Package, bool, error) {
	candidates, err := Candidates(fs, root)
	if err != nil {
		return types.Package{}, false, err
	}
	for _, pkg := range candidates {
		if pkg.Name == name {
			return pkg, true, nil
		}
	}
	return types.Package{}, false, nil
}
