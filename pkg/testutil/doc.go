// Package testutil provides utilities for testing dotsetup components.
//
// Key components:
//   - TestEnvironment: an isolated repository and target directory in a temp dir
//   - Package builders: declarative package files, hooks and foreign entries
//   - Assertions for links, files and absent paths
//
// Usage guidelines:
//   - Every test gets its own environment, nothing is shared
//   - Test data is defined inline, not in external files
//   - HOME and DOTFILES_ROOT point at the environment for the test's lifetime
package testutil
