package tree

import "fmt"

// Ref identifies a logical node by its persisted identity: the
// (key, label) pair. Navigation paths are stored as Ref sequences and
// re-resolved against the current canonical tree at the moment of use,
// never as cached subtree pointers, because the tree may be replaced
// wholesale by a reload.
type Ref struct {
	// Key is the node's activation key in display form.
	Key string

	// Label is the node's display label.
	Label string
}

// RefOf captures the ref for a node.
func RefOf(n Node) Ref {
	return Ref{Key: n.NodeKey(), Label: n.NodeLabel()}
}

// RefPath captures refs for a sequence of nodes.
func RefPath(nodes ...Node) []Ref {
	refs := make([]Ref, len(nodes))
	for i, n := range nodes {
		refs[i] = RefOf(n)
	}
	return refs
}

// Matches reports whether n is the logical node r refers to: key and
// label both equal.
func (r Ref) Matches(n Node) bool {
	return n.NodeKey() == r.Key && n.NodeLabel() == r.Label
}

// Ambiguous reports whether the ref cannot uniquely identify a node
// even in a well-formed tree: key and label are both absent.
func (r Ref) Ambiguous() bool {
	return r.Key == "" && r.Label == ""
}

// String returns a display form for log messages.
func (r Ref) String() string {
	switch {
	case r.Key != "" && r.Label != "":
		return fmt.Sprintf("%s(%s)", r.Key, r.Label)
	case r.Key != "":
		return r.Key
	case r.Label != "":
		return r.Label
	default:
		return "?"
	}
}

// Resolve walks a path of group refs down from root, matching each
// segment against the current children in order (first match wins).
// It returns the group at the end of the path; an empty path resolves
// to the root itself.
//
// A nil root yields ErrNoTree. A segment that no longer matches any
// child group yields a StalePathError naming the segment, so callers
// can degrade to a root-level operation with a warning.
func Resolve(root *Group, path []Ref) (*Group, error) {
	if root == nil {
		return nil, ErrNoTree
	}
	cur := root
	for i, ref := range path {
		var next *Group
		for _, child := range cur.Children {
			if g, ok := child.(*Group); ok && ref.Matches(g) {
				next = g
				break
			}
		}
		if next == nil {
			return nil, &StalePathError{Segment: i, Ref: ref}
		}
		cur = next
	}
	return cur, nil
}

// IndexPath converts a ref path into the child-index path of the
// groups it resolves to, for correlating with validation results. The
// second result is false when a segment does not resolve.
func IndexPath(root *Group, path []Ref) ([]int, bool) {
	if root == nil {
		return nil, false
	}
	indices := make([]int, 0, len(path))
	cur := root
	for _, ref := range path {
		found := -1
		for i, child := range cur.Children {
			if g, ok := child.(*Group); ok && ref.Matches(g) {
				found = i
				cur = g
				break
			}
		}
		if found < 0 {
			return nil, false
		}
		indices = append(indices, found)
	}
	return indices, true
}
