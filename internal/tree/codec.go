package tree

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// typeGroup is the discriminator value for group nodes; actions use
// their Kind name.
const typeGroup = "group"

// groupConfig and actionConfig are the JSON envelopes for the two node
// shapes. Field declaration order is the emission order and stays
// sorted so the same tree always encodes to the same bytes.
type groupConfig struct {
	Actions []any  `json:"actions"`
	Icon    string `json:"icon,omitempty"`
	Key     string `json:"key,omitempty"`
	Label   string `json:"label,omitempty"`
	Type    string `json:"type"`
}

type actionConfig struct {
	Arguments []argumentConfig `json:"arguments,omitempty"`
	Icon      string           `json:"icon,omitempty"`
	Key       string           `json:"key,omitempty"`
	Label     string           `json:"label,omitempty"`
	OpenWith  string           `json:"openWith,omitempty"`
	Type      string           `json:"type"`
	Value     string           `json:"value"`
}

type argumentConfig struct {
	DefaultValue string `json:"defaultValue,omitempty"`
	Name         string `json:"name"`
}

// nodeConfig is the decode-side envelope covering both node shapes.
// Pointer fields distinguish an absent field from an empty one where
// decoding must tell them apart.
type nodeConfig struct {
	Actions   *[]nodeConfig    `json:"actions"`
	Arguments []argumentConfig `json:"arguments"`
	Icon      string           `json:"icon"`
	Key       string           `json:"key"`
	Label     string           `json:"label"`
	OpenWith  string           `json:"openWith"`
	Type      string           `json:"type"`
	Value     *string          `json:"value"`
}

func (g *Group) config() any {
	cfg := &groupConfig{
		Actions: make([]any, 0, len(g.Children)),
		Icon:    g.Icon,
		Key:     g.Key,
		Label:   g.Label,
		Type:    typeGroup,
	}
	for _, child := range g.Children {
		cfg.Actions = append(cfg.Actions, child.config())
	}
	return cfg
}

func (a *Action) config() any {
	cfg := &actionConfig{
		Icon:     a.Icon,
		Key:      a.Key,
		Label:    a.Label,
		OpenWith: a.OpenWith,
		Type:     a.Kind.String(),
		Value:    a.Value,
	}
	for _, arg := range a.Arguments {
		cfg.Arguments = append(cfg.Arguments, argumentConfig{
			DefaultValue: arg.Default,
			Name:         arg.Name,
		})
	}
	return cfg
}

// toNode converts a decoded envelope into a domain node, checking the
// shape rules: groups require an "actions" array, every other type is
// an action kind and requires a "value".
func (c *nodeConfig) toNode(path []int) (Node, error) {
	switch {
	case c.Type == "":
		return nil, decodeErrorAt(path, "node has no type")

	case c.Type == typeGroup:
		if c.Actions == nil {
			return nil, decodeErrorAt(path, `group requires an "actions" array`)
		}
		g := NewGroup(c.Key, c.Label)
		g.Icon = c.Icon
		g.Children = make([]Node, 0, len(*c.Actions))
		for i := range *c.Actions {
			child, err := (*c.Actions)[i].toNode(append(path, i))
			if err != nil {
				return nil, err
			}
			g.Children = append(g.Children, child)
		}
		return g, nil

	default:
		kind, ok := ParseKind(c.Type)
		if !ok {
			return nil, decodeErrorAt(path, "unknown node type %q", c.Type)
		}
		if c.Value == nil {
			return nil, decodeErrorAt(path, `%s action requires a "value"`, c.Type)
		}
		a := NewAction(kind, c.Key, *c.Value)
		a.Label = c.Label
		a.Icon = c.Icon
		a.OpenWith = c.OpenWith
		for _, arg := range c.Arguments {
			a.Arguments = append(a.Arguments, Argument{
				Name:    arg.Name,
				Default: arg.DefaultValue,
			})
		}
		return a, nil
	}
}

// DecodeDocument decodes a complete configuration document. The root
// node must be a group.
func DecodeDocument(data []byte) (*Group, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}
	if !gjson.ValidBytes(data) {
		return nil, &DecodeError{Message: "document is not valid JSON"}
	}
	t := gjson.GetBytes(data, "type")
	if !t.Exists() {
		return nil, &DecodeError{Message: "document root has no type"}
	}
	if t.String() != typeGroup {
		return nil, &DecodeError{Message: fmt.Sprintf("document root must be a group, got %q", t.String())}
	}

	var cfg nodeConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &DecodeError{Message: "malformed document", Err: err}
	}
	n, err := cfg.toNode(nil)
	if err != nil {
		return nil, err
	}
	return n.(*Group), nil
}

// EncodeDocument encodes the tree rooted at g as an indented UTF-8
// JSON document with a trailing newline. Encoding is deterministic:
// the same tree always yields the same bytes, so content checksums
// are reproducible between runs.
func EncodeDocument(g *Group) ([]byte, error) {
	if g == nil {
		return nil, ErrNoTree
	}
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding tree: %w", err)
	}
	return append(data, '\n'), nil
}

// MarshalJSON encodes the group through its envelope form.
func (g *Group) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.config())
}

// UnmarshalJSON decodes a group from its envelope form.
func (g *Group) UnmarshalJSON(data []byte) error {
	var cfg nodeConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return err
	}
	if cfg.Type != typeGroup {
		return &DecodeError{Message: fmt.Sprintf("expected a group, got %q", cfg.Type)}
	}
	n, err := cfg.toNode(nil)
	if err != nil {
		return err
	}
	*g = *(n.(*Group))
	return nil
}

// MarshalJSON encodes the action through its envelope form.
func (a *Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.config())
}

// UnmarshalJSON decodes an action from its envelope form.
func (a *Action) UnmarshalJSON(data []byte) error {
	var cfg nodeConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return err
	}
	if cfg.Type == typeGroup {
		return &DecodeError{Message: "expected an action, got a group"}
	}
	n, err := cfg.toNode(nil)
	if err != nil {
		return err
	}
	*a = *(n.(*Action))
	return nil
}
