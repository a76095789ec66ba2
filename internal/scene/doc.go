// Package scene implements the mutable scene graph at the heart of the
// editor.
//
// The graph owns the mapping of object ids to object state plus the current
// selection, and exposes the atomic mutation primitives that every edit
// command is built from. It is the sole sanctioned write path: the rendering
// and export layers read objects through copies and never mutate them
// directly.
//
// ARCHITECTURE:
//
// Single-Writer Mutation:
// All graph mutation happens on one logical control thread (the interactive
// UI thread), so the object map carries no lock. Writes are synchronous and
// atomic from the caller's point of view - no partial state is ever
// observable mid-mutation.
//
// Structural Invariants:
//   - ParentID/Children are mutually consistent: if B.ParentID == A.ID then
//     A.Children contains B.ID, and vice versa.
//   - The parent/child relation is a forest: no object is its own ancestor.
//   - Only KindGroup objects may have non-empty Children.
//   - The selection is always a subset of currently-existing object ids.
//
// Every primitive either preserves all four invariants or fails with a
// structured *Error before mutating anything. Unknown ids are an explicit
// ErrCodeNotFound failure, never a silent no-op: a silent no-op would let
// the undo/redo history drift out of sync with observable state.
package scene
