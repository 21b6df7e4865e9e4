package validate

import (
	"fmt"

	"github.com/dshills/leaderkey/internal/tree"
)

// ErrorType categorizes a validation finding.
type ErrorType uint8

const (
	// DuplicateSiblingKey indicates a key shared by two or more
	// immediate siblings; dispatch falls back to the first match.
	DuplicateSiblingKey ErrorType = iota

	// InvalidKey indicates a key that cannot be typed as a single
	// keystroke.
	InvalidKey

	// MissingValue indicates an action with an empty dispatch target.
	MissingValue

	// AmbiguousGroupIdentity indicates a group with neither key nor
	// label; path matching against it is order-dependent.
	AmbiguousGroupIdentity

	// RootKeySet indicates an activation key on the root group, which
	// is never dispatched through a key.
	RootKeySet

	// UnknownKind indicates an action kind outside the serializable
	// set. The decoder rejects such documents, so this only catches
	// trees built in process.
	UnknownKind
)

// String returns a stable machine-readable name for the error type.
func (t ErrorType) String() string {
	switch t {
	case DuplicateSiblingKey:
		return "duplicate_sibling_key"
	case InvalidKey:
		return "invalid_key"
	case MissingValue:
		return "missing_value"
	case AmbiguousGroupIdentity:
		return "ambiguous_group_identity"
	case RootKeySet:
		return "root_key_set"
	case UnknownKind:
		return "unknown_kind"
	default:
		return "unknown"
	}
}

// Message returns a human-readable description.
func (t ErrorType) Message() string {
	switch t {
	case DuplicateSiblingKey:
		return "key is already used by a sibling"
	case InvalidKey:
		return "key must be a single typable character"
	case MissingValue:
		return "action has no value"
	case AmbiguousGroupIdentity:
		return "group has neither key nor label"
	case RootKeySet:
		return "root group must not have a key"
	case UnknownKind:
		return "action kind is not recognized"
	default:
		return "unknown validation error"
	}
}

// Error is one validation finding. Path is the child-index path from
// the root to the offending node; an empty path names the root itself.
type Error struct {
	Path []int
	Type ErrorType
}

// Error implements the error interface.
func (e Error) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("root: %s", e.Type.Message())
	}
	return fmt.Sprintf("%s: %s", tree.PathString(e.Path), e.Type.Message())
}
