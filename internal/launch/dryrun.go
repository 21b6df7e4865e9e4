package launch

import (
	"fmt"
	"sync"

	"github.com/dshills/leaderkey/internal/tree"
)

// DryRunner records what would run without touching the OS. It backs
// the CLI's preview output and tests.
type DryRunner struct {
	mu      sync.Mutex
	entries []string
}

// RunAction records the action instead of performing it.
func (d *DryRunner) RunAction(a *tree.Action) {
	if a == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	value := ExpandArguments(a.Value, a.Arguments, nil)
	d.entries = append(d.entries, fmt.Sprintf("%s %s", a.Kind, value))
}

// RunGroup records every action in the subtree, depth-first in child
// order, exactly as a real run would dispatch them.
func (d *DryRunner) RunGroup(g *tree.Group) {
	if g == nil {
		return
	}
	tree.Walk(g, func(n tree.Node) bool {
		if a, ok := n.(*tree.Action); ok {
			d.RunAction(a)
		}
		return true
	})
}

// Entries returns the recorded dispatches in order.
func (d *DryRunner) Entries() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.entries...)
}
