// Package hooks runs per-package setup hooks after a package is linked.
//
// A hook is an executable file named setup_ (configurable) directly inside a
// package. Shell hooks run in-process with the mvdan.cc/sh interpreter and
// can call the install_bin builtin, which goes through the run's shared
// package manager installer. Hooks with any other interpreter run as a child
// process. Both receive the invocation snapshot as DOTSETUP_* variables.
package hooks
