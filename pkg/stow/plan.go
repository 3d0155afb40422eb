package stow

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/types"
)

// ActionKind is one step of a plan
type ActionKind string

const (
	// ActionLink creates a symlink at Target pointing to Source
	ActionLink ActionKind = "link"

	// ActionLinked means Target already links to Source
	ActionLinked ActionKind = "linked"

	// ActionMkdir creates a real directory at Target
	ActionMkdir ActionKind = "mkdir"

	// ActionUnlink removes the symlink at Target
	ActionUnlink ActionKind = "unlink"

	// ActionPrune removes the directory at Target if it ended up empty.
	// Only directories listed in Options.Created are pruned.
	ActionPrune ActionKind = "prune"
)

// Action is a single filesystem step
type Action struct {
	Kind ActionKind

	// RelPath is relative to both the package and the target directory
	RelPath string

	// Source is the absolute path inside the package
	Source string

	// Target is the absolute path inside the target directory
	Target string

	// LinkDest is the relative link destination for ActionLink
	LinkDest string
}

// Options controls planning and application
type Options struct {
	// Fold links whole directories when the target has no such directory
	Fold bool

	// DryRun computes the plan without touching the filesystem
	DryRun bool

	// Ignore holds basename globs never linked, at any depth
	Ignore []string

	// Created lists the directories, relative to the target, that earlier
	// stows created. Unstow prunes only these; everything else was there
	// before and stays.
	Created []string
}

func (o Options) created(rel string) bool {
	for _, dir := range o.Created {
		if filepath.Clean(dir) == rel {
			return true
		}
	}
	return false
}

// Plan is the computed outcome of stowing or unstowing one package
type Plan struct {
	Package types.Package
	Target  string
	Actions []Action

	// Conflicts block a stow
	Conflicts []types.Conflict

	// Problems block an unstow
	Problems []string
}

// HasConflicts reports whether the plan cannot be applied as a stow
func (p *Plan) HasConflicts() bool {
	return len(p.Conflicts) > 0
}

// HasProblems reports whether the plan cannot be applied as an unstow
func (p *Plan) HasProblems() bool {
	return len(p.Problems) > 0
}

// Count returns how many actions of kind the plan holds
func (p *Plan) Count(kind ActionKind) int {
	n := 0
	for _, a := range p.Actions {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

// Changes reports whether applying the plan would modify the target
func (p *Plan) Changes() bool {
	for _, a := range p.Actions {
		if a.Kind != ActionLinked {
			return true
		}
	}
	return false
}

// Created returns the relative directories the plan creates
func (p *Plan) Created() []string {
	var dirs []string
	for _, a := range p.Actions {
		if a.Kind == ActionMkdir {
			dirs = append(dirs, a.RelPath)
		}
	}
	return dirs
}

func (p *Plan) add(kind ActionKind, rel, src, dst string) {
	p.Actions = append(p.Actions, Action{Kind: kind, RelPath: rel, Source: src, Target: dst})
}

func (p *Plan) conflict(rel, dst string, kind types.ConflictKind) {
	p.Conflicts = append(p.Conflicts, types.Conflict{
		Package: p.Package.Name,
		RelPath: rel,
		Target:  dst,
		Kind:    kind,
	})
}

// ignored reports whether a basename matches one of the globs
func ignored(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

// resolveLink returns the absolute, cleaned destination of the link at path
func resolveLink(path, dest string) string {
	if filepath.IsAbs(dest) {
		return filepath.Clean(dest)
	}
	return filepath.Join(filepath.Dir(path), dest)
}

// within reports whether path is dir or lies below it
func within(path, dir string) bool {
	return path == dir || strings.HasPrefix(path, dir+string(filepath.Separator))
}
