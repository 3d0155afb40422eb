// Package session holds the state of one invocation and runs the install
// and uninstall flows.
//
// Install: resolve packages, back up conflicts, restow the self package
// with folding, link every package, then run setup hooks.
//
// Uninstall: resolve packages, check every unlink in a dry run, unlink,
// then restore backups.
package session
