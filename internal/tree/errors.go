package tree

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Errors returned by tree operations.
var (
	// ErrEmptyDocument indicates the configuration document has no
	// content.
	ErrEmptyDocument = errors.New("empty configuration document")

	// ErrNoTree indicates an operation needed a tree and none was
	// loaded.
	ErrNoTree = errors.New("no tree loaded")
)

// DecodeError describes a malformed configuration document.
type DecodeError struct {
	// Path is the child-index path from the root to the offending
	// node. Empty for document-level errors.
	Path []int

	// Message describes what is malformed.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if len(e.Path) > 0 {
		return fmt.Sprintf("decode error at %s: %s", PathString(e.Path), e.Message)
	}
	return fmt.Sprintf("decode error: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// decodeErrorAt builds a DecodeError with its own copy of the path.
func decodeErrorAt(path []int, format string, args ...any) *DecodeError {
	return &DecodeError{
		Path:    append([]int(nil), path...),
		Message: fmt.Sprintf(format, args...),
	}
}

// StalePathError reports a navigation path segment that no longer
// resolves against the current tree.
type StalePathError struct {
	// Segment is the index of the first unresolvable path element.
	Segment int

	// Ref is the matcher that failed to resolve.
	Ref Ref
}

// Error implements the error interface.
func (e *StalePathError) Error() string {
	return fmt.Sprintf("path segment %d (%s) no longer resolves", e.Segment, e.Ref)
}

// PathString joins a child-index path into the "/"-separated form used
// to key validation results ("0/2/1"). The root path is "".
func PathString(path []int) string {
	if len(path) == 0 {
		return ""
	}
	parts := make([]string, len(path))
	for i, idx := range path {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, "/")
}
