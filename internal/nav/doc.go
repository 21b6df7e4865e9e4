// Package nav is the navigation state machine: it turns key events
// into selection changes, tree descent and ascent, and dispatch
// decisions, without performing any side effect itself.
//
// The engine never caches subtree pointers. Its position is a sequence
// of (key, label) refs re-resolved against the store's canonical tree
// on every access, because a reload may replace that tree wholesale at
// any time. A position that no longer resolves degrades to the root
// menu with a warning; an out-of-range selection reads as no
// selection. Neither is an error to the user, they are the normal
// races between UI state and asynchronous reloads.
package nav
