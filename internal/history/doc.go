// Package history implements snapshot-based undo/redo over the draw
// and mask layers of an editing session.
//
// The stack holds deep-copied layer snapshots plus a cursor. Pushing
// while the cursor sits before the last entry discards everything after
// it (redo history is lost on new edits), and the stack is bounded: when
// the configured depth is exceeded the oldest snapshot is evicted.
//
// Undoing past the first stored snapshot restores a fully blank canvas
// and parks the cursor at -1, a deliberate third state distinct from any
// stored snapshot. Undo at -1 and redo at the last entry are silent
// no-ops, never errors: both are normal UI-reachable boundaries.
package history
