package filesystem

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/arthur-debert/dotsetup/pkg/types"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	synthfilesystem "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
)

// Batch queues filesystem changes and runs them in order as one synthfs
// pipeline. Every operation carries a label naming the planned step it
// belongs to, so a failure can be reported against that step.
type Batch struct {
	prefix string
	sfs    *synthfs.SynthFS
	ops    []synthfs.Operation
	labels map[synthfs.OperationID]string
}

// NewBatch creates an empty batch. prefix namespaces the operation IDs.
func NewBatch(prefix string) *Batch {
	return &Batch{
		prefix: prefix,
		sfs:    synthfs.New(),
		labels: make(map[synthfs.OperationID]string),
	}
}

// Len returns the number of queued operations
func (b *Batch) Len() int {
	return len(b.ops)
}

// Mkdir queues the creation of a directory that does not exist yet
func (b *Batch) Mkdir(path string, perm fs.FileMode, label string) {
	b.add(b.sfs.CreateDirWithID(b.id("mkdir"), path, perm), label)
}

// Symlink queues a link at path pointing to dest. dest is stored as given.
func (b *Batch) Symlink(dest, path, label string) {
	b.Do(label, func(ctx context.Context, fsys synthfilesystem.FileSystem) error {
		return fsys.Symlink(dest, path)
	})
}

// Remove queues the removal of a file, link or empty directory
func (b *Batch) Remove(path, label string) {
	b.Do(label, func(ctx context.Context, fsys synthfilesystem.FileSystem) error {
		return fsys.Remove(path)
	})
}

// Move queues Move(fsys, src, dst). Renames are not part of the synthfs
// filesystem contract, so the move runs on fsys.
func (b *Batch) Move(fsys types.FS, src, dst, label string) {
	b.Do(label, func(context.Context, synthfilesystem.FileSystem) error {
		return Move(fsys, src, dst)
	})
}

// Do queues a custom step. It is skipped once ctx is done.
func (b *Batch) Do(label string, fn func(ctx context.Context, fsys synthfilesystem.FileSystem) error) {
	b.add(b.sfs.CustomOperationWithID(b.id("custom"), func(ctx context.Context, fsys synthfilesystem.FileSystem) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(ctx, fsys)
	}), label)
}

func (b *Batch) id(kind string) string {
	return fmt.Sprintf("%s_%s_%d", b.prefix, kind, len(b.ops))
}

func (b *Batch) add(op synthfs.Operation, label string) {
	b.ops = append(b.ops, op)
	b.labels[op.ID()] = label
}

// BatchError names the step whose operation failed
type BatchError struct {
	Label string
	Err   error
}

func (e *BatchError) Error() string {
	if e.Label == "" {
		return e.Err.Error()
	}
	return e.Label + ": " + e.Err.Error()
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

// Run executes the queued operations on fsys. Nothing runs when ctx is
// already done.
func (b *Batch) Run(ctx context.Context, fsys synthfilesystem.FullFileSystem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(b.ops) == 0 {
		return nil
	}

	result, err := synthfs.RunWithOptions(ctx, fsys, synthfs.DefaultPipelineOptions(), b.ops...)
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return b.failure(result, err)
}

// failure finds the first failed operation in result
func (b *Batch) failure(result *synthfs.Result, err error) error {
	if result == nil {
		return &BatchError{Err: err}
	}
	for _, op := range result.GetOperations() {
		opResult, ok := op.(synthfs.OperationResult)
		if !ok || opResult.Status == synthfs.StatusSuccess {
			continue
		}
		cause := opResult.Error
		if cause == nil {
			cause = err
		}
		return &BatchError{Label: b.labels[opResult.OperationID], Err: cause}
	}
	return &BatchError{Err: err}
}
