// Package types defines the core types and interfaces shared by the setup
// packages: packages and modes, conflicts found while linking, the hook
// snapshot and result, and the filesystem interface.
package types
