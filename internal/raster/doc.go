// Package raster implements the pixel storage and mutation core of the
// editing engine: the three-layer store, brush/eraser stroke rendering,
// and mask-aware flood fill.
//
// # Layers
//
// Each editing session owns three same-sized NRGBA buffers:
//
//   - Source: the loaded image, treated as read-only
//   - Draw: the free-paint layer, initially fully transparent
//   - Mask: the protection layer, initially fully transparent
//
// The mask layer is an editing aid: its opaque regions block flood fill
// and mark protected areas. It never appears in exported output.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with origin at the top-left corner,
// X increasing rightward and Y increasing downward. Accessors are
// bounds-safe: out-of-range reads return transparent, out-of-range
// writes are ignored.
//
// # Color Representation
//
// Buffers hold non-premultiplied RGBA bytes (image.NRGBA). Flood fill
// compares all four channels for exact equality, and the mask marker
// color is translucent, so channel values must survive storage without
// premultiplication rounding.
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. The engine is
// single-threaded by contract; callers own any synchronization.
package raster
