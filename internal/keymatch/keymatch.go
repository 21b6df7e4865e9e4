// Package keymatch normalizes and compares logical keys and decides
// what held modifiers mean for dispatch.
//
// A node's configured key and the key the user typed may differ in
// case ("g" vs "G"), Unicode form, or spelling ("enter" vs "⏎").
// Match folds all of that away. The Scheme type resolves the sticky
// and group-run capabilities from held modifiers through one
// configuration value, so the two can be swapped without touching
// engine logic.
package keymatch

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/dshills/leaderkey/internal/tree"
)

// Normalize converts a typed or configured key to its canonical
// comparison form: Unicode NFC, surrounding space trimmed, special
// keys in glyph form, case folded.
func Normalize(s string) string {
	t := norm.NFC.String(s)
	t = tree.NormalizeKey(t)
	return cases.Fold().String(t)
}

// Match reports whether a typed key activates a node configured with
// key. The comparison is case- and glyph-insensitive: "G" matches
// "g", "enter" matches "⏎". An empty configured key never matches;
// keyless nodes are not keyboard-addressable.
func Match(configured, typed string) bool {
	if configured == "" || typed == "" {
		return false
	}
	return Normalize(configured) == Normalize(typed)
}
