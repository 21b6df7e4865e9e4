package keymatch

// Scheme assigns the two dispatch capabilities, sticky and group-run,
// to physical modifiers. The engine only ever asks for capabilities;
// which key carries which is this one value, so swapping them is a
// configuration change, never a code change.
type Scheme uint8

const (
	// SchemeDefault maps Alt to sticky and Ctrl to group-run.
	SchemeDefault Scheme = iota

	// SchemeSwapped maps Ctrl to sticky and Alt to group-run.
	SchemeSwapped
)

// String returns the configuration name of the scheme.
func (s Scheme) String() string {
	if s == SchemeSwapped {
		return "swapped"
	}
	return "default"
}

// ParseScheme parses a configuration value into a Scheme.
func ParseScheme(v string) (Scheme, bool) {
	switch v {
	case "", "default":
		return SchemeDefault, true
	case "swapped":
		return SchemeSwapped, true
	default:
		return SchemeDefault, false
	}
}

// IsSticky reports whether the held modifiers request running an
// action while keeping the menu open.
func (s Scheme) IsSticky(mods Modifier) bool {
	if s == SchemeSwapped {
		return mods.Has(ModCtrl)
	}
	return mods.Has(ModAlt)
}

// IsGroupRun reports whether the held modifiers request running every
// action in a group's subtree instead of descending into it.
func (s Scheme) IsGroupRun(mods Modifier) bool {
	if s == SchemeSwapped {
		return mods.Has(ModAlt)
	}
	return mods.Has(ModCtrl)
}
