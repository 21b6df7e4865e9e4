// Package tree defines the configuration tree: the recursive
// Action/Group node model, its JSON codec, and path references.
//
// This package provides the fundamental types for representing a
// leader-key menu:
//
//   - Action: a leaf that performs one effect when dispatched
//   - Group: an ordered container of child nodes, one key per level
//   - Ref: a (key, label) matcher identifying a logical node across
//     tree reloads
//
// # Encoding
//
// Trees encode to a UTF-8 JSON document meant to be hand-edited.
// Each node carries a "type" discriminator ("group" or an action
// kind), keys are stored in their display form (special keys as
// glyphs such as "⏎" and "␣"), optional fields are omitted when
// empty, and fields are emitted in a fixed sorted order so the same
// tree always produces the same bytes.
//
// # Identity
//
// Every node carries a process-local identity used by UI layers to
// track rows across edits. Identities are never persisted and are
// excluded from Equal, so a decoded copy of a tree is equal to the
// original. Logical sameness across reloads is the Ref's job: two
// groups are the same logical node when key and label both match.
package tree
