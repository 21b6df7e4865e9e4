package tree

import (
	"github.com/google/uuid"
)

// Kind identifies what an Action does when dispatched.
type Kind uint8

const (
	// KindApplication launches an application.
	KindApplication Kind = iota
	// KindURL opens a URL in its default handler.
	KindURL
	// KindCommand runs a shell command line.
	KindCommand
	// KindFolder opens a directory.
	KindFolder
	// KindFile opens a file with its default handler.
	KindFile
	// KindScript runs an executable script file.
	KindScript
)

// String returns the serialized name of the kind.
func (k Kind) String() string {
	switch k {
	case KindApplication:
		return "application"
	case KindURL:
		return "url"
	case KindCommand:
		return "command"
	case KindFolder:
		return "folder"
	case KindFile:
		return "file"
	case KindScript:
		return "script"
	default:
		return "unknown"
	}
}

// ParseKind returns the Kind for a serialized name.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "application":
		return KindApplication, true
	case "url":
		return KindURL, true
	case "command":
		return KindCommand, true
	case "folder":
		return KindFolder, true
	case "file":
		return KindFile, true
	case "script":
		return KindScript, true
	default:
		return 0, false
	}
}

// Node is a single entry in the configuration tree: either an *Action
// leaf or a *Group of children.
type Node interface {
	// NodeKey returns the activation key in display form, "" when unset.
	NodeKey() string

	// NodeLabel returns the display label, "" when unset.
	NodeLabel() string

	// NodeID returns the node's process-local identity. Identities are
	// never persisted and are excluded from Equal.
	NodeID() string

	// DisplayName returns the text a menu row shows for this node.
	DisplayName() string

	// Equal reports deep structural equality over persisted fields.
	Equal(other Node) bool

	// Clone returns a deep copy with fresh identities.
	Clone() Node

	// config returns the node's JSON envelope form.
	config() any
}

// Argument is a named parameter substituted into a command or script
// action's value at dispatch time.
type Argument struct {
	// Name is the placeholder name referenced by the action's value.
	Name string

	// Default is the value used when the caller supplies none.
	Default string
}

// Action is a leaf node that performs one effect when dispatched.
type Action struct {
	id string

	// Key is the activation key in display form, "" when unset.
	Key string

	// Kind selects the dispatch behavior.
	Kind Kind

	// Label is the optional display label.
	Label string

	// Value is the dispatch target: a path, URL, or command text.
	Value string

	// Icon optionally overrides the display icon.
	Icon string

	// OpenWith optionally names the application used to open Value.
	OpenWith string

	// Arguments are optional named parameters for command and script
	// kinds.
	Arguments []Argument
}

// NewAction creates an Action of the given kind with a fresh identity.
// The key may be a spelled special-key name; it is stored in display
// form.
func NewAction(kind Kind, key, value string) *Action {
	return &Action{
		id:    uuid.New().String(),
		Key:   NormalizeKey(key),
		Kind:  kind,
		Value: value,
	}
}

// NodeKey returns the activation key in display form.
func (a *Action) NodeKey() string { return a.Key }

// NodeLabel returns the display label.
func (a *Action) NodeLabel() string { return a.Label }

// NodeID returns the action's process-local identity, assigning one on
// first use.
func (a *Action) NodeID() string {
	if a.id == "" {
		a.id = uuid.New().String()
	}
	return a.id
}

// DisplayName returns the label, falling back to the value.
func (a *Action) DisplayName() string {
	if a.Label != "" {
		return a.Label
	}
	return a.Value
}

// Equal reports deep structural equality over persisted fields.
func (a *Action) Equal(other Node) bool {
	b, ok := other.(*Action)
	if !ok || b == nil {
		return false
	}
	if a.Key != b.Key || a.Kind != b.Kind || a.Label != b.Label {
		return false
	}
	if a.Value != b.Value || a.Icon != b.Icon || a.OpenWith != b.OpenWith {
		return false
	}
	if len(a.Arguments) != len(b.Arguments) {
		return false
	}
	for i := range a.Arguments {
		if a.Arguments[i] != b.Arguments[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the action with a fresh identity.
func (a *Action) Clone() Node {
	c := *a
	c.id = uuid.New().String()
	if a.Arguments != nil {
		c.Arguments = append([]Argument(nil), a.Arguments...)
	}
	return &c
}

// Group is an internal node containing ordered children, addressed by
// one key per level. The tree root is always a Group with no key.
type Group struct {
	id string

	// Key is the activation key in display form, "" when unset.
	Key string

	// Label is the optional display label.
	Label string

	// Icon optionally overrides the display icon.
	Icon string

	// Children holds the group's nodes in display and dispatch
	// precedence order. The first child matching a typed key wins.
	Children []Node
}

// NewGroup creates a Group with a fresh identity.
func NewGroup(key, label string, children ...Node) *Group {
	return &Group{
		id:       uuid.New().String(),
		Key:      NormalizeKey(key),
		Label:    label,
		Children: children,
	}
}

// NodeKey returns the activation key in display form.
func (g *Group) NodeKey() string { return g.Key }

// NodeLabel returns the display label.
func (g *Group) NodeLabel() string { return g.Label }

// NodeID returns the group's process-local identity, assigning one on
// first use.
func (g *Group) NodeID() string {
	if g.id == "" {
		g.id = uuid.New().String()
	}
	return g.id
}

// DisplayName returns the label, falling back to the key.
func (g *Group) DisplayName() string {
	if g.Label != "" {
		return g.Label
	}
	return g.Key
}

// Equal reports deep structural equality over persisted fields.
func (g *Group) Equal(other Node) bool {
	h, ok := other.(*Group)
	if !ok || h == nil {
		return false
	}
	if g.Key != h.Key || g.Label != h.Label || g.Icon != h.Icon {
		return false
	}
	if len(g.Children) != len(h.Children) {
		return false
	}
	for i := range g.Children {
		if !g.Children[i].Equal(h.Children[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the group with fresh identities.
func (g *Group) Clone() Node {
	c := *g
	c.id = uuid.New().String()
	c.Children = make([]Node, len(g.Children))
	for i, child := range g.Children {
		c.Children[i] = child.Clone()
	}
	return &c
}

// Walk calls fn for every node in the subtree rooted at n, depth-first
// in child order, starting with n itself. Walk stops when fn returns
// false and reports whether the walk ran to completion.
func Walk(n Node, fn func(Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	if g, ok := n.(*Group); ok {
		for _, child := range g.Children {
			if !Walk(child, fn) {
				return false
			}
		}
	}
	return true
}
