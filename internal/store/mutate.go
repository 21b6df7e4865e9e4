package store

import (
	"fmt"

	"github.com/dshills/leaderkey/internal/notify"
	"github.com/dshills/leaderkey/internal/tree"
)

// edit applies fn to the group at path, resolved fresh against the
// canonical tree, then marks the store dirty, revalidates, and
// schedules a debounced save. fallBackToRoot controls what a stale
// path does: degrade to the root, or abort with the resolve error.
func (s *Store) edit(path []tree.Ref, fallBackToRoot bool, fn func(*tree.Group) error) error {
	s.mu.Lock()
	if s.root == nil {
		s.mu.Unlock()
		return tree.ErrNoTree
	}
	g, err := tree.Resolve(s.root, path)
	if err != nil {
		if !fallBackToRoot {
			s.mu.Unlock()
			s.logger.Warn("edit aborted: %v", err)
			return err
		}
		s.logger.Warn("%v; applying edit at the root", err)
		g = s.root
	}
	if err := fn(g); err != nil {
		s.mu.Unlock()
		return err
	}
	s.dirty = true
	s.revalidateLocked()
	s.scheduleLocked()
	path2 := s.pathLocked()
	s.mu.Unlock()

	s.notifier.Notify(notify.Event{Kind: notify.ValidationChanged, Path: path2})
	return nil
}

// Append adds node as the last child of the group at path. A stale
// path degrades to appending at the root, so the user's addition is
// never silently lost.
func (s *Store) Append(path []tree.Ref, node tree.Node) error {
	if node == nil {
		return ErrNilNode
	}
	return s.edit(path, true, func(g *tree.Group) error {
		g.Children = append(g.Children, node)
		return nil
	})
}

// InsertAfter inserts node after child index idx of the group at path.
// idx -1 inserts at the front. Stale paths and out-of-range indices
// abort.
func (s *Store) InsertAfter(path []tree.Ref, idx int, node tree.Node) error {
	if node == nil {
		return ErrNilNode
	}
	return s.edit(path, false, func(g *tree.Group) error {
		if idx < -1 || idx >= len(g.Children) {
			return fmt.Errorf("%w: %d", ErrIndexOutOfRange, idx)
		}
		at := idx + 1
		g.Children = append(g.Children, nil)
		copy(g.Children[at+1:], g.Children[at:])
		g.Children[at] = node
		return nil
	})
}

// Replace swaps the child at idx of the group at path for node. Stale
// paths and out-of-range indices abort.
func (s *Store) Replace(path []tree.Ref, idx int, node tree.Node) error {
	if node == nil {
		return ErrNilNode
	}
	return s.edit(path, false, func(g *tree.Group) error {
		if idx < 0 || idx >= len(g.Children) {
			return fmt.Errorf("%w: %d", ErrIndexOutOfRange, idx)
		}
		g.Children[idx] = node
		return nil
	})
}

// Delete removes the child at idx of the group at path. Stale paths
// and out-of-range indices abort; a removal never falls back to a
// different target.
func (s *Store) Delete(path []tree.Ref, idx int) error {
	return s.edit(path, false, func(g *tree.Group) error {
		if idx < 0 || idx >= len(g.Children) {
			return fmt.Errorf("%w: %d", ErrIndexOutOfRange, idx)
		}
		g.Children = append(g.Children[:idx], g.Children[idx+1:]...)
		return nil
	})
}

// ReplaceTree swaps the whole canonical tree, as imports do, and
// schedules a save.
func (s *Store) ReplaceTree(root *tree.Group) error {
	if root == nil {
		return tree.ErrNoTree
	}
	s.mu.Lock()
	s.root = root
	s.dirty = true
	s.revalidateLocked()
	s.scheduleLocked()
	path := s.pathLocked()
	s.mu.Unlock()

	s.notifier.Notify(notify.Event{Kind: notify.TreeReplaced, Path: path})
	s.notifier.Notify(notify.Event{Kind: notify.ValidationChanged, Path: path})
	return nil
}
