// Package backup moves target entries that block package links into a
// per-package backup directory, and moves them back on uninstall.
//
// Layout: <root>/<backup-dir>/<package>/<relative path>. A backup entry
// exists exactly while the package link for that path is installed.
package backup
