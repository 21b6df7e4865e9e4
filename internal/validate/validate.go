// Package validate checks configuration trees for rule violations and
// reports them positioned by tree path.
//
// Validation never rejects a tree: rule-breaking documents stay
// representable and loadable so the user can fix them in place. The
// persistence engine runs validation after every load and structural
// mutation and publishes the findings for UI layers to badge rows
// with.
package validate

import (
	"unicode"
	"unicode/utf8"

	"github.com/dshills/leaderkey/internal/tree"
)

// Func is the validator contract consumed by the persistence engine:
// pure, deterministic, and total. A nil tree yields no findings.
type Func func(*tree.Group) []Error

// Validate checks the tree rooted at root and returns every finding in
// depth-first encounter order. It is the default Func.
func Validate(root *tree.Group) []Error {
	if root == nil {
		return nil
	}

	var errs []Error
	if root.Key != "" {
		errs = append(errs, Error{Type: RootKeySet})
	}
	errs = append(errs, checkGroup(root, nil)...)
	return errs
}

// checkGroup validates g's children and recurses. path is the
// child-index path from the root to g.
func checkGroup(g *tree.Group, path []int) []Error {
	var errs []Error

	counts := make(map[string]int, len(g.Children))
	for _, child := range g.Children {
		if k := child.NodeKey(); k != "" {
			counts[k]++
		}
	}

	for i, child := range g.Children {
		childPath := appendIndex(path, i)

		if k := child.NodeKey(); k != "" {
			if counts[k] > 1 {
				errs = append(errs, Error{Path: childPath, Type: DuplicateSiblingKey})
			}
			if !validKey(k) {
				errs = append(errs, Error{Path: childPath, Type: InvalidKey})
			}
		}

		switch n := child.(type) {
		case *tree.Action:
			if n.Value == "" {
				errs = append(errs, Error{Path: childPath, Type: MissingValue})
			}
			if _, ok := tree.ParseKind(n.Kind.String()); !ok {
				errs = append(errs, Error{Path: childPath, Type: UnknownKind})
			}
		case *tree.Group:
			if n.Key == "" && n.Label == "" {
				errs = append(errs, Error{Path: childPath, Type: AmbiguousGroupIdentity})
			}
			errs = append(errs, checkGroup(n, childPath)...)
		}
	}

	return errs
}

// validKey reports whether a non-empty key is activatable: a single
// printable rune. Special-key glyphs are single runes and pass.
func validKey(k string) bool {
	r, size := utf8.DecodeRuneInString(k)
	if size != len(k) || r == utf8.RuneError {
		return false
	}
	return !unicode.IsControl(r)
}

// appendIndex copies path with i appended, so stored error paths never
// alias the walk's scratch slice.
func appendIndex(path []int, i int) []int {
	out := make([]int, len(path)+1)
	copy(out, path)
	out[len(path)] = i
	return out
}

// ErrorMap indexes findings by their "/"-joined path string for O(1)
// lookup by UI row. When a node has several findings the first in
// encounter order wins.
func ErrorMap(errs []Error) map[string]Error {
	m := make(map[string]Error, len(errs))
	for _, e := range errs {
		key := tree.PathString(e.Path)
		if _, ok := m[key]; !ok {
			m[key] = e
		}
	}
	return m
}
