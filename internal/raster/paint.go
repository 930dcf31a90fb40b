package raster

import (
	"image/color"
	"math"
)

// Brush holds the stroke settings shared by the brush, mask and bucket
// tools. The eraser ignores Color.
type Brush struct {
	Color  color.NRGBA
	Radius float64
}

// StrokeOp selects how a stroke composites onto its target layer.
type StrokeOp int

const (
	// StrokePaint composites the brush color source-over onto the
	// target layer.
	StrokePaint StrokeOp = iota

	// StrokeErase clears destination alpha along the stroke path
	// (destination-out). Only the draw layer is erased.
	StrokeErase
)

// Stroke renders one continuous pointer-down..up interaction as a
// sequence of round-capped line segments between consecutive pointer
// samples, so fast pointer motion does not leave gaps.
//
// The caller decides when a stroke warrants a history snapshot; Painted
// reports whether the stroke touched at least one in-bounds pixel.
type Stroke struct {
	store   *LayerStore
	layer   Layer
	brush   Brush
	op      StrokeOp
	lastX   float64
	lastY   float64
	painted bool
}

// BeginStroke starts a stroke at an image-space position and stamps the
// initial round cap.
func BeginStroke(store *LayerStore, layer Layer, brush Brush, op StrokeOp, x, y float64) *Stroke {
	if brush.Radius <= 0 {
		brush.Radius = 1
	}
	st := &Stroke{store: store, layer: layer, brush: brush, op: op, lastX: x, lastY: y}
	st.stamp(x, y)
	return st
}

// MoveTo extends the stroke to a new pointer sample, stamping along the
// segment from the previous sample.
func (st *Stroke) MoveTo(x, y float64) {
	dx := x - st.lastX
	dy := y - st.lastY
	dist := math.Hypot(dx, dy)
	steps := int(math.Ceil(dist))
	if steps < 1 {
		steps = 1
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		st.stamp(st.lastX+dx*t, st.lastY+dy*t)
	}
	st.lastX = x
	st.lastY = y
}

// Painted reports whether the stroke modified at least one pixel.
func (st *Stroke) Painted() bool { return st.painted }

// stamp renders one filled disc of the brush radius centered at (cx, cy).
func (st *Stroke) stamp(cx, cy float64) {
	r := st.brush.Radius
	r2 := r * r
	minX := int(math.Floor(cx - r))
	maxX := int(math.Ceil(cx + r))
	minY := int(math.Floor(cy - r))
	maxY := int(math.Ceil(cy + r))
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			fx := float64(x) - cx
			fy := float64(y) - cy
			if fx*fx+fy*fy > r2 {
				continue
			}
			if !st.store.InBounds(x, y) {
				continue
			}
			switch st.op {
			case StrokePaint:
				dst := st.store.PixelAt(st.layer, x, y)
				st.store.SetPixel(st.layer, x, y, blendOver(st.brush.Color, dst))
			case StrokeErase:
				dst := st.store.PixelAt(st.layer, x, y)
				dst.A = uint8(uint16(dst.A) * uint16(255-st.brush.Color.A) / 255)
				st.store.SetPixel(st.layer, x, y, dst)
			}
			st.painted = true
		}
	}
}

// blendOver composites src over dst in non-premultiplied space.
func blendOver(src, dst color.NRGBA) color.NRGBA {
	if src.A == 255 || dst.A == 0 {
		return src
	}
	if src.A == 0 {
		return dst
	}
	sa := float64(src.A) / 255.0
	da := float64(dst.A) / 255.0
	outA := sa + da*(1.0-sa)
	blend := func(s, d uint8) uint8 {
		out := (float64(s)*sa + float64(d)*da*(1.0-sa)) / outA
		return uint8(math.Round(out))
	}
	return color.NRGBA{
		R: blend(src.R, dst.R),
		G: blend(src.G, dst.G),
		B: blend(src.B, dst.B),
		A: uint8(math.Round(outA * 255.0)),
	}
}
