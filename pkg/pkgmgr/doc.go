// Package pkgmgr installs binaries through the system package manager on
// behalf of setup hooks.
//
// The manager is detected once per run, the "update package lists" question
// is asked at most once per run, and every command goes through a Runner so
// tests never touch the real system.
package pkgmgr
