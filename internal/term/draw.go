package term

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/leaderkey/internal/tree"
)

// draw renders the current menu level: a breadcrumb header, one row
// per child with the selection highlighted and validation findings
// badged, and a status line. An open conflict modal replaces the
// status line until it is answered.
func (d *Driver) draw() {
	d.screen.Clear()
	width, height := d.screen.Size()

	engine := d.app.Engine()
	st := d.app.Store()

	title := "menu"
	if path := engine.Path(); len(path) > 0 {
		parts := make([]string, len(path))
		for i, ref := range path {
			parts[i] = ref.String()
		}
		title = "menu / " + strings.Join(parts, " / ")
	}
	if st.Dirty() {
		title += " *"
	}
	d.emit(0, 0, tcell.StyleDefault.Bold(true), title)

	// The validation map is keyed by index path; compute this level's
	// prefix once.
	prefix, prefixOK := tree.IndexPath(st.Root(), engine.Path())

	items := engine.CurrentActions()
	selected := engine.SelectedIndex()
	for i, item := range items {
		y := i + 2
		if y >= height-1 {
			break
		}

		style := tcell.StyleDefault
		if i == selected {
			style = style.Reverse(true)
		}

		badge := " "
		if prefixOK {
			if _, found := st.ValidationAt(tree.PathString(append(prefix, i))); found {
				badge = "!"
			}
		}

		key := item.NodeKey()
		if key == "" {
			key = "·"
		}
		tag := "group"
		if a, ok := item.(*tree.Action); ok {
			tag = a.Kind.String()
		}
		row := fmt.Sprintf("%s %-3s %-28s %s", badge, key, clip(item.DisplayName(), 28), tag)
		d.emit(0, y, style, clip(row, width))
	}
	if len(items) == 0 {
		d.emit(0, 2, tcell.StyleDefault.Dim(true), "(empty group)")
	}

	line := d.status
	if line == "" {
		line = "↑↓ select · enter run · esc back · ctrl+c quit"
	}
	if d.pending != nil {
		line = fmt.Sprintf("%s changed on disk: [o]verwrite  [r]ead from file  [c]ancel", filepath.Base(d.pending.path))
	}
	d.emit(0, height-1, tcell.StyleDefault.Dim(true), clip(line, width))

	d.screen.Show()
}

// emit writes s starting at (x, y), one cell per rune.
func (d *Driver) emit(x, y int, style tcell.Style, s string) {
	for _, r := range s {
		d.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// clip truncates s to at most n cells, assuming one cell per rune.
func clip(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
