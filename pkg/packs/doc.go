// Package packs discovers and selects the packages of a dotfiles repository.
//
// A package is a top-level directory of the repository whose name does not
// start with '.' or '_'. This package handles:
//
//   - Package discovery, honoring ignore globs and .dotsetupignore markers
//   - Normalizing command line tokens into package names
//   - Selecting the requested packages, rejecting unknown and reserved names
package packs
