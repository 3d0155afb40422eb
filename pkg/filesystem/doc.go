// Package filesystem provides filesystem implementations for setup.
//
// OS implements types.FS on top of a path-aware synthfs filesystem. Batch
// queues the changes of a planned step (directories, links, removals and
// moves) and applies them as a single synthfs pipeline. Move falls back to
// copying when a rename crosses filesystems.
package filesystem
