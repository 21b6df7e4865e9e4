package nav

import "github.com/dshills/leaderkey/internal/tree"

// DecisionKind classifies what a key event resolved to.
type DecisionKind int

const (
	// DecisionNoMatch means no child of the current level carries the
	// key. State is unchanged; the UI typically shakes.
	DecisionNoMatch DecisionKind = iota

	// DecisionRunAction means the key matched an action.
	DecisionRunAction

	// DecisionRunGroup means the key matched a group while the
	// group-run modifier was held: the whole subtree runs.
	DecisionRunGroup

	// DecisionDescend means the key matched a group and the engine
	// entered it.
	DecisionDescend
)

// String returns the decision kind as a snake_case word.
func (k DecisionKind) String() string {
	switch k {
	case DecisionRunAction:
		return "run_action"
	case DecisionRunGroup:
		return "run_group"
	case DecisionDescend:
		return "descend"
	default:
		return "no_match"
	}
}

// Decision reports the outcome of one key event.
type Decision struct {
	// Kind classifies the outcome.
	Kind DecisionKind

	// Node is the matched child, nil when Kind is DecisionNoMatch.
	Node tree.Node

	// Sticky reports that a matched action leaves the menu open
	// because the sticky modifier was held.
	Sticky bool

	// Dispatched reports whether the side effect was handed to the
	// runner. Always false in preview mode.
	Dispatched bool

	// CloseAfter recommends closing the menu: a non-sticky action ran,
	// or a whole group ran.
	CloseAfter bool
}

// Runner performs the OS-level effect of a dispatch decision. The
// engine only decides what to run and whether to stay open; execution
// is fire-and-forget from its perspective.
type Runner interface {
	// RunAction performs one action's effect.
	RunAction(a *tree.Action)

	// RunGroup performs every action in the subtree, depth-first in
	// child order, including nested groups.
	RunGroup(g *tree.Group)
}
