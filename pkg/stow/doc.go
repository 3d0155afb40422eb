// Package stow maintains symlink farms: it links the files of a package
// directory into a target directory and removes those links again.
//
// Links are relative, the way GNU stow creates them. Two layouts are
// supported. Without folding every file gets its own link and package
// directories are created as real directories in the target. With folding a
// package directory whose counterpart is absent in the target is linked as a
// whole.
//
// Every operation is computed as a Plan first. A Plan lists typed conflicts
// (pre-existing entries in the way of a link) and problems (entries that
// cannot be safely removed), so callers never parse tool output. Applying a
// plan with conflicts or problems fails before anything is touched.
package stow
