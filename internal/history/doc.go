// Package history implements the reversible edit commands and the linear
// undo/redo stack they live on.
//
// Every edit the user can undo is a Command: a pairing of Execute with an
// exact inverse Undo. The command set is closed - the eight variants defined
// in this package are the complete vocabulary of reversible edits, and the
// unexported marker method on Command keeps other packages from adding
// variants the stack has not been audited against.
//
// INVARIANTS:
//
//   - Exact inverse: for any command c and graph state S,
//     Undo after Execute restores S, and Execute after Undo restores
//     Execute's post-state. Commands that mint ids (create, duplicate,
//     group) record them on first execution and reuse them on every redo,
//     so history entries referencing those ids stay valid.
//   - Snapshot at execution: commands that need a prior-state snapshot
//     (delete, ungroup) capture it when first executed, never at
//     construction. Constructors do not read the graph, so commands may be
//     built speculatively without going stale.
//   - Reverse-order composite undo: later sub-commands may depend on state
//     produced by earlier ones, so Composite undoes strictly back-to-front.
//
// The Stack is strictly linear: executing a new command invalidates the redo
// side, explicitly and unconditionally. History is process-lifetime only.
package history
