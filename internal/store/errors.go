package store

import (
	"errors"
	"fmt"
)

var (
	// ErrCanceled indicates the user abandoned the attempt at a
	// conflict prompt. Neither the file nor the tree changed.
	ErrCanceled = errors.New("canceled at conflict prompt")

	// ErrConflictPending indicates a conflict prompt is already open;
	// the attempt was queued behind its resolution.
	ErrConflictPending = errors.New("conflict resolution pending")

	// ErrIndexOutOfRange indicates a structural edit named a child
	// index the target group does not have.
	ErrIndexOutOfRange = errors.New("child index out of range")

	// ErrNilNode indicates a structural edit was handed no node.
	ErrNilNode = errors.New("nil node")
)

// WriteError reports a save that did not reach the disk. The in-memory
// tree is retained; the caller may retry.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
