package history

import (
	"github.com/ironsheep/raster-edit/internal/raster"
)

// DefaultDepth is the retained snapshot count used when a stack is
// created with a non-positive capacity.
const DefaultDepth = 20

// Stack is a bounded undo/redo stack of layer snapshots.
//
// Invariant: -1 <= Cursor() < Len(). Cursor -1 is the before-first
// state representing the pristine pre-edit canvas.
type Stack struct {
	snaps  []*raster.Snapshot
	cursor int
	depth  int
}

// NewStack creates an empty history stack retaining at most depth
// snapshots. A non-positive depth falls back to DefaultDepth.
func NewStack(depth int) *Stack {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Stack{cursor: -1, depth: depth}
}

// Len returns the number of stored snapshots.
func (h *Stack) Len() int { return len(h.snaps) }

// Cursor returns the index of the current snapshot, or -1 in the
// before-first state.
func (h *Stack) Cursor() int { return h.cursor }

// Push appends a snapshot, discarding any snapshots beyond the current
// cursor and evicting the oldest entry when the bounded depth is
// exceeded. The cursor advances to the new last index.
func (h *Stack) Push(snap *raster.Snapshot) {
	h.snaps = append(h.snaps[:h.cursor+1], snap)
	if len(h.snaps) > h.depth {
		h.snaps = h.snaps[1:]
	}
	h.cursor = len(h.snaps) - 1
}

// Undo steps the cursor back one snapshot and restores it into the
// store. At cursor 0 it restores a fully blank canvas and moves to the
// before-first state. At -1 it is a no-op. Returns whether the store
// was modified.
func (h *Stack) Undo(store *raster.LayerStore) bool {
	switch {
	case h.cursor > 0:
		h.cursor--
		store.Restore(h.snaps[h.cursor])
		return true
	case h.cursor == 0:
		h.cursor = -1
		store.Clear(raster.LayerDraw)
		store.Clear(raster.LayerMask)
		return true
	}
	return false
}

// Redo advances the cursor one snapshot and restores it into the
// store. At the last entry it is a no-op. Returns whether the store
// was modified.
func (h *Stack) Redo(store *raster.LayerStore) bool {
	if h.cursor >= len(h.snaps)-1 {
		return false
	}
	h.cursor++
	store.Restore(h.snaps[h.cursor])
	return true
}

// Reset discards all snapshots and returns to the before-first state.
func (h *Stack) Reset() {
	h.snaps = nil
	h.cursor = -1
}
