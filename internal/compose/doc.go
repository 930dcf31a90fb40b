// Package compose renders the final export of an editing session: an
// opaque background filled at the fixed output resolution, the source
// image placed through the export transform, and the draw layer placed
// on top through the same transform. The mask layer is an editing aid
// and never appears in exported output.
//
// Export dimensions are independent of the interactive viewport; all
// placement math is re-derived in output space by the view package.
package compose
