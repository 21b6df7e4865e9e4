package tree

import (
	"testing"
)

func TestKindRoundTrip(t *testing.T) {
	kinds := []Kind{
		KindApplication, KindURL, KindCommand,
		KindFolder, KindFile, KindScript,
	}

	for _, k := range kinds {
		t.Run(k.String(), func(t *testing.T) {
			got, ok := ParseKind(k.String())
			if !ok {
				t.Fatalf("ParseKind(%q) not recognized", k.String())
			}
			if got != k {
				t.Errorf("ParseKind(%q) = %v, want %v", k.String(), got, k)
			}
		})
	}

	if _, ok := ParseKind("widget"); ok {
		t.Error("ParseKind(\"widget\") = ok, want not recognized")
	}
	if _, ok := ParseKind("group"); ok {
		t.Error("ParseKind(\"group\") = ok, want not recognized")
	}
}

func TestActionEqual(t *testing.T) {
	base := func() *Action {
		a := NewAction(KindCommand, "b", "make build")
		a.Label = "Build"
		a.Icon = "hammer"
		a.OpenWith = "iTerm"
		a.Arguments = []Argument{{Name: "target", Default: "all"}}
		return a
	}

	tests := []struct {
		name   string
		mutate func(*Action)
		want   bool
	}{
		{"identical fields", func(a *Action) {}, true},
		{"different key", func(a *Action) { a.Key = "c" }, false},
		{"different kind", func(a *Action) { a.Kind = KindScript }, false},
		{"different label", func(a *Action) { a.Label = "Test" }, false},
		{"different value", func(a *Action) { a.Value = "make test" }, false},
		{"different icon", func(a *Action) { a.Icon = "" }, false},
		{"different openWith", func(a *Action) { a.OpenWith = "" }, false},
		{"different argument default", func(a *Action) { a.Arguments[0].Default = "dist" }, false},
		{"extra argument", func(a *Action) { a.Arguments = append(a.Arguments, Argument{Name: "verbose"}) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := base(), base()
			tt.mutate(b)
			if got := a.Equal(b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestActionEqualIgnoresIdentity(t *testing.T) {
	a := NewAction(KindURL, "g", "https://example.com")
	b := NewAction(KindURL, "g", "https://example.com")
	if a.NodeID() == b.NodeID() {
		t.Fatal("distinct actions share an identity")
	}
	if !a.Equal(b) {
		t.Error("actions with identical persisted fields are not Equal")
	}
}

func TestEqualAcrossNodeTypes(t *testing.T) {
	a := NewAction(KindFile, "f", "/tmp/notes.txt")
	g := NewGroup("f", "")
	if a.Equal(g) {
		t.Error("action Equal(group) = true, want false")
	}
	if g.Equal(a) {
		t.Error("group Equal(action) = true, want false")
	}
}

func TestGroupEqual(t *testing.T) {
	build := func() *Group {
		return NewGroup("w", "Web",
			NewAction(KindURL, "g", "https://example.com"),
			NewGroup("s", "Search",
				NewAction(KindURL, "d", "https://duckduckgo.com"),
			),
		)
	}

	a, b := build(), build()
	if !a.Equal(b) {
		t.Fatal("identically built groups are not Equal")
	}

	b.Children[1].(*Group).Children[0].(*Action).Value = "https://bing.com"
	if a.Equal(b) {
		t.Error("groups differing in a nested child are Equal")
	}

	c := build()
	c.Children = c.Children[:1]
	if a.Equal(c) {
		t.Error("groups with different child counts are Equal")
	}

	d := build()
	d.Children[0], d.Children[1] = d.Children[1], d.Children[0]
	if a.Equal(d) {
		t.Error("groups with reordered children are Equal")
	}
}

func TestCloneIsDeepAndFresh(t *testing.T) {
	orig := NewGroup("", "",
		NewAction(KindCommand, "b", "make build"),
		NewGroup("w", "Web", NewAction(KindURL, "g", "https://example.com")),
	)

	cl := orig.Clone().(*Group)
	if !orig.Equal(cl) {
		t.Fatal("clone is not Equal to original")
	}
	if orig.NodeID() == cl.NodeID() {
		t.Error("clone shares the original's identity")
	}
	if orig.Children[0].NodeID() == cl.Children[0].NodeID() {
		t.Error("cloned child shares the original child's identity")
	}

	cl.Children[0].(*Action).Value = "make test"
	if orig.Children[0].(*Action).Value != "make build" {
		t.Error("mutating the clone changed the original")
	}
}

func TestNodeIDStable(t *testing.T) {
	a := NewAction(KindFolder, "d", "/tmp")
	if a.NodeID() == "" {
		t.Fatal("NodeID() is empty")
	}
	if a.NodeID() != a.NodeID() {
		t.Error("NodeID() changed between calls")
	}

	var g Group
	first := g.NodeID()
	if first == "" {
		t.Fatal("zero-value group NodeID() is empty")
	}
	if g.NodeID() != first {
		t.Error("zero-value group NodeID() changed between calls")
	}
}

func TestDisplayName(t *testing.T) {
	withLabel := NewAction(KindApplication, "s", "/Applications/Slack.app")
	withLabel.Label = "Slack"
	bare := NewAction(KindApplication, "s", "/Applications/Slack.app")

	tests := []struct {
		name string
		node Node
		want string
	}{
		{"action label", withLabel, "Slack"},
		{"action falls back to value", bare, "/Applications/Slack.app"},
		{"group label", NewGroup("w", "Web"), "Web"},
		{"group falls back to key", NewGroup("w", ""), "w"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWalkDepthFirst(t *testing.T) {
	root := NewGroup("", "",
		NewAction(KindApplication, "a", "App1"),
		NewGroup("c", "Subgroup",
			NewAction(KindApplication, "d", "App3"),
			NewAction(KindApplication, "e", "App4"),
		),
		NewAction(KindApplication, "b", "App2"),
	)

	var keys []string
	Walk(root, func(n Node) bool {
		keys = append(keys, n.NodeKey())
		return true
	})

	want := []string{"", "a", "c", "d", "e", "b"}
	if len(keys) != len(want) {
		t.Fatalf("Walk visited %d nodes, want %d", len(keys), len(want))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Walk order[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestWalkEarlyStop(t *testing.T) {
	root := NewGroup("", "",
		NewAction(KindApplication, "a", "App1"),
		NewAction(KindApplication, "b", "App2"),
	)

	visited := 0
	done := Walk(root, func(n Node) bool {
		visited++
		return visited < 2
	})
	if done {
		t.Error("Walk reported completion despite early stop")
	}
	if visited != 2 {
		t.Errorf("Walk visited %d nodes after stop, want 2", visited)
	}
}
