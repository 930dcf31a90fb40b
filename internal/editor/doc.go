// Package editor ties the raster core together into one editing
// session: an explicit state object holding the layer store, history,
// view state, active tool and collaborator handles. There are no
// hidden globals; multiple independent sessions can coexist.
//
// Pointer events are routed by the active tool:
//
//   - move: dragging updates the pan offset; view changes never touch
//     history
//   - brush/eraser: pointer-down..up forms one stroke into the draw
//     layer; a stroke that painted anything produces exactly one
//     history snapshot on pointer-up
//   - mask: like brush, but always paints the mask layer with the
//     fixed translucent marker color
//   - bucket: pointer-down triggers one flood fill and always pushes a
//     snapshot, matching the observed behavior even when the fill was
//     a no-op
//
// # Concurrency
//
// A session is single-threaded: all pointer routing and raster
// mutation must happen on one logical thread, and buffers are
// synchronously consistent after each operation. The only asynchronous
// collaborators are face detection and background generation; the
// session guards them with a busy flag and rejects overlapping
// requests with ErrBusy rather than queueing them.
package editor
