package nav

import (
	"errors"
	"sync"

	"github.com/dshills/leaderkey/internal/keymatch"
	"github.com/dshills/leaderkey/internal/logging"
	"github.com/dshills/leaderkey/internal/store"
	"github.com/dshills/leaderkey/internal/tree"
)

// ErrNoSelection indicates an operation needed a selected item and
// none was selected.
var ErrNoSelection = errors.New("no item selected")

// Engine is the navigation state machine over one store's tree.
//
// Operations are synchronous and never block on I/O; dispatching an
// action's real-world effect is fire-and-forget through the Runner.
type Engine struct {
	mu     sync.Mutex
	store  *store.Store
	scheme keymatch.Scheme
	runner Runner
	logger *logging.Logger

	path      []tree.Ref
	selected  int
	history   []int
	indicator string
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithScheme sets the modifier scheme deciding which physical modifier
// means sticky and which means group-run.
func WithScheme(s keymatch.Scheme) Option {
	return func(e *Engine) { e.scheme = s }
}

// WithRunner wires the dispatch sink. Without one, decisions are
// reported but nothing runs.
func WithRunner(r Runner) Option {
	return func(e *Engine) { e.runner = r }
}

// WithLogger overrides the engine's logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine positioned at the root menu of st's tree.
func New(st *store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:    st,
		scheme:   keymatch.SchemeDefault,
		logger:   logging.Get().WithComponent("nav"),
		selected: -1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// currentGroupLocked re-resolves the engine's position against the
// canonical tree. A stale position returns the engine to the root
// menu. Caller holds mu.
func (e *Engine) currentGroupLocked() *tree.Group {
	root := e.store.Root()
	if root == nil {
		return nil
	}
	if len(e.path) == 0 {
		return root
	}
	g, err := tree.Resolve(root, e.path)
	if err != nil {
		e.logger.Warn("%v; returning to the root menu", err)
		e.resetLocked()
		return root
	}
	return g
}

func (e *Engine) resetLocked() {
	e.path = nil
	e.selected = -1
	e.history = nil
	e.indicator = ""
}

// CurrentGroup returns the group the engine is positioned in, or nil
// when no tree is loaded.
func (e *Engine) CurrentGroup() *tree.Group {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentGroupLocked()
}

// CurrentActions returns the current level's children. The slice is
// owned by the tree; callers must not modify it. Never nil-panics: a
// missing tree reads as an empty level.
func (e *Engine) CurrentActions() []tree.Node {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentActionsLocked()
}

func (e *Engine) currentActionsLocked() []tree.Node {
	g := e.currentGroupLocked()
	if g == nil {
		return nil
	}
	return g.Children
}

// SelectedIndex returns the selection index, -1 for none.
func (e *Engine) SelectedIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected
}

// SelectedItem returns the selected child, or nil when nothing valid
// is selected. Bounds are checked against the current level on every
// call: the level changes with navigation and reloads, and a stale
// index must read as no selection.
func (e *Engine) SelectedItem() tree.Node {
	e.mu.Lock()
	defer e.mu.Unlock()
	items := e.currentActionsLocked()
	if e.selected < 0 || e.selected >= len(items) {
		return nil
	}
	return items[e.selected]
}

// Path returns the engine's position as refs from the root.
func (e *Engine) Path() []tree.Ref {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]tree.Ref(nil), e.path...)
}

// Depth returns how many groups deep the engine is.
func (e *Engine) Depth() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.path)
}

// Indicator returns the display string for the current position: the
// key of the group the engine is in, "" at the root.
func (e *Engine) Indicator() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.indicator
}

// NavigateToGroup descends into g. The selection that was active is
// remembered for GoBack; the new level starts with no selection,
// because an index carried over would be meaningless in the new list.
func (e *Engine) NavigateToGroup(g *tree.Group) {
	if g == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.descendLocked(g)
}

func (e *Engine) descendLocked(g *tree.Group) {
	e.history = append(e.history, e.selected)
	e.path = append(e.path, tree.RefOf(g))
	e.selected = -1
	e.indicator = g.Key
}

// GoBack ascends one level, restoring the selection the user had
// before descending. It reports the new current group's key as the
// display indicator and whether anything happened; at the root it does
// nothing.
func (e *Engine) GoBack() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.path) == 0 {
		return "", false
	}
	e.path = e.path[:len(e.path)-1]
	if n := len(e.history); n > 0 {
		e.selected = e.history[n-1]
		e.history = e.history[:n-1]
	} else {
		e.selected = -1
	}
	key := ""
	if len(e.path) > 0 {
		key = e.path[len(e.path)-1].Key
	}
	e.indicator = key
	return key, true
}

// MoveSelection moves the selection by delta, wrapping at both ends.
// With no selection yet, a positive delta selects the first item and a
// negative delta the last. An empty level is a no-op.
func (e *Engine) MoveSelection(delta int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := len(e.currentActionsLocked())
	if n == 0 || delta == 0 {
		return
	}
	if e.selected < 0 || e.selected >= n {
		if delta > 0 {
			e.selected = 0
		} else {
			e.selected = n - 1
		}
		return
	}
	e.selected = ((e.selected+delta)%n + n) % n
}

// Clear returns the engine to its initial state: root menu, no
// selection, empty history. Used on escape-to-root and after a
// dispatch closes the menu. Idempotent.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
}

// HandleKey resolves one key event against the keys of the current
// level's children only, first match in child order.
//
// A matched action runs through the runner; the sticky modifier keeps
// the menu open afterwards. A matched group descends, or runs its
// whole subtree when the group-run modifier is held. With execute
// false the engine still navigates groups but suppresses all
// dispatch, reporting only what would have run.
func (e *Engine) HandleKey(key string, mods keymatch.Modifier, execute bool) Decision {
	e.mu.Lock()
	var match tree.Node
	if g := e.currentGroupLocked(); g != nil {
		for _, child := range g.Children {
			if keymatch.Match(child.NodeKey(), key) {
				match = child
				break
			}
		}
	}
	d, run := e.decideLocked(match, mods, execute)
	e.mu.Unlock()

	if d.Kind == DecisionNoMatch {
		e.logger.Debug("no child matches key %q", key)
	}
	if run != nil {
		run()
	}
	return d
}

// Dispatch runs the selected item as if its key had been pressed with
// mods held. It targets the item itself, not its key, so a duplicate
// sibling key cannot reroute the dispatch. ErrNoSelection when nothing
// valid is selected.
func (e *Engine) Dispatch(mods keymatch.Modifier, execute bool) (Decision, error) {
	e.mu.Lock()
	items := e.currentActionsLocked()
	if e.selected < 0 || e.selected >= len(items) {
		e.mu.Unlock()
		return Decision{Kind: DecisionNoMatch}, ErrNoSelection
	}
	d, run := e.decideLocked(items[e.selected], mods, execute)
	e.mu.Unlock()

	if run != nil {
		run()
	}
	return d, nil
}

// decideLocked classifies match, applies any navigation state change,
// and returns the dispatch to perform once the lock is released.
// Caller holds mu.
func (e *Engine) decideLocked(match tree.Node, mods keymatch.Modifier, execute bool) (Decision, func()) {
	switch n := match.(type) {
	case *tree.Group:
		if e.scheme.IsGroupRun(mods) {
			d := Decision{Kind: DecisionRunGroup, Node: n, CloseAfter: true}
			if execute && e.runner != nil {
				d.Dispatched = true
				return d, func() { e.runner.RunGroup(n) }
			}
			return d, nil
		}
		e.descendLocked(n)
		return Decision{Kind: DecisionDescend, Node: n}, nil
	case *tree.Action:
		sticky := e.scheme.IsSticky(mods)
		d := Decision{Kind: DecisionRunAction, Node: n, Sticky: sticky, CloseAfter: !sticky}
		if execute && e.runner != nil {
			d.Dispatched = true
			return d, func() { e.runner.RunAction(n) }
		}
		return d, nil
	default:
		return Decision{Kind: DecisionNoMatch}, nil
	}
}

// Add appends node to the group the engine is positioned in, through
// the store so validation and saving follow. A stale position falls
// back to adding at the root rather than losing the user's node.
func (e *Engine) Add(node tree.Node) error {
	e.mu.Lock()
	path := append([]tree.Ref(nil), e.path...)
	e.mu.Unlock()
	return e.store.Append(path, node)
}

// DeleteSelected removes the selected item from the current group
// through the store. A stale position aborts the removal; deletion
// never falls back to a different node.
func (e *Engine) DeleteSelected() error {
	e.mu.Lock()
	items := e.currentActionsLocked()
	if e.selected < 0 || e.selected >= len(items) {
		e.mu.Unlock()
		return ErrNoSelection
	}
	path := append([]tree.Ref(nil), e.path...)
	idx := e.selected
	e.mu.Unlock()

	return e.store.Delete(path, idx)
}
