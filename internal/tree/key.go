package tree

import "strings"

// keyGlyphs maps spelled special-key names (lowercase) to the display
// glyphs stored in encoded documents.
var keyGlyphs = map[string]string{
	"enter":     "⏎",
	"return":    "⏎",
	"space":     "␣",
	"tab":       "⇥",
	"escape":    "⎋",
	"esc":       "⎋",
	"backspace": "⌫",
	"delete":    "⌦",
	"del":       "⌦",
	"up":        "↑",
	"down":      "↓",
	"left":      "←",
	"right":     "→",
}

// glyphNames maps display glyphs to their canonical spelled names.
var glyphNames = map[string]string{
	"⏎": "enter",
	"␣": "space",
	"⇥": "tab",
	"⎋": "escape",
	"⌫": "backspace",
	"⌦": "delete",
	"↑": "up",
	"↓": "down",
	"←": "left",
	"→": "right",
}

// KeyGlyph returns the display glyph for a spelled special-key name
// (case-insensitive). The second result is false when the name is not
// a special key.
func KeyGlyph(name string) (string, bool) {
	g, ok := keyGlyphs[strings.ToLower(strings.TrimSpace(name))]
	return g, ok
}

// KeyName returns the canonical spelled name for a display glyph. The
// second result is false when the glyph is not a special key.
func KeyName(glyph string) (string, bool) {
	n, ok := glyphNames[glyph]
	return n, ok
}

// IsSpecialKey reports whether s, in either spelled or glyph form,
// names a special key.
func IsSpecialKey(s string) bool {
	if _, ok := glyphNames[s]; ok {
		return true
	}
	_, ok := keyGlyphs[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// NormalizeKey converts a key's textual form to its stored display
// form: spelled special-key names become glyphs, everything else is
// returned trimmed of surrounding space and otherwise unchanged.
//
// Note that "␣" and " " differ: a space key is stored as the glyph,
// so a bare space is converted too.
func NormalizeKey(s string) string {
	if s == " " {
		return keyGlyphs["space"]
	}
	t := strings.TrimSpace(s)
	if g, ok := keyGlyphs[strings.ToLower(t)]; ok {
		return g
	}
	return t
}
