package raster

import (
	"image/color"
)

// DefaultBarrierAlpha is the minimum mask alpha treated as impassable
// by FloodFill when the caller does not configure its own threshold.
// Anything above it acts as a wall regardless of draw-layer color.
const DefaultBarrierAlpha = 8

// FloodFill floods the draw layer outward from the seed (x, y) with
// the fill color, using 4-connectivity. A candidate pixel is visited
// only if it is inside the buffer, its mask-layer alpha is at or below
// barrierAlpha, and its draw-layer color equals the seed's color in
// all four channels exactly. Visited pixels receive the fill color as
// an exact copy, not a blend.
//
// Returns true if at least one pixel changed. An out-of-bounds seed is
// a no-op, as is a seed whose color already equals the fill color.
//
// # Algorithm
//
// Traversal uses an explicit worklist rather than recursion: source
// images can exceed recursion-safe depths, and a filled pixel no
// longer matches the seed color, so revisits terminate immediately.
func FloodFill(s *LayerStore, x, y int, fill color.NRGBA, barrierAlpha uint8) bool {
	if !s.InBounds(x, y) {
		return false
	}
	target := s.draw.NRGBAAt(x, y)
	if target == fill {
		return false
	}

	type point struct{ x, y int }
	work := make([]point, 0, 1024)
	work = append(work, point{x, y})
	changed := false

	for len(work) > 0 {
		p := work[len(work)-1]
		work = work[:len(work)-1]
		if !s.InBounds(p.x, p.y) {
			continue
		}
		if s.mask.NRGBAAt(p.x, p.y).A > barrierAlpha {
			continue
		}
		if s.draw.NRGBAAt(p.x, p.y) != target {
			continue
		}
		s.draw.SetNRGBA(p.x, p.y, fill)
		changed = true
		work = append(work,
			point{p.x + 1, p.y},
			point{p.x - 1, p.y},
			point{p.x, p.y + 1},
			point{p.x, p.y - 1},
		)
	}
	return changed
}
