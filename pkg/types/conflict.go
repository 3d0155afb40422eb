package types

import "fmt"

// ConflictKind describes what blocks a link
type ConflictKind string

const (
	// ConflictFile is a regular file at the link path
	ConflictFile ConflictKind = "file"

	// ConflictDir is a real directory where a file link is needed
	ConflictDir ConflictKind = "dir"

	// ConflictForeignLink is a symlink that points somewhere other than the package
	ConflictForeignLink ConflictKind = "foreign-link"
)

// Conflict is a pre-existing entry in the target directory blocking a
// package link
type Conflict struct {
	// Package is the name of the package that wants the path
	Package string

	// RelPath is the path relative to both the package and the target directory
	RelPath string

	// Target is the absolute path in the target directory
	Target string

	Kind ConflictKind
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s: %s (%s)", c.Package, c.RelPath, c.Kind)
}
