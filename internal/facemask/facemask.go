package facemask

import (
	"image/color"
	"math"

	"github.com/ironsheep/raster-edit/internal/raster"
)

// Box is one detected face bounding box in normalized coordinates,
// each component in [0,1] relative to the image dimensions.
type Box struct {
	YMin float64 `json:"y_min"`
	XMin float64 `json:"x_min"`
	YMax float64 `json:"y_max"`
	XMax float64 `json:"x_max"`
}

// Padding ratios applied to each detected box before painting, as
// fractions of the box's own size. Top padding is the largest so the
// ellipse covers hair above the detected face.
const (
	padSides  = 0.15
	padTop    = 0.40
	padBottom = 0.10
)

// ApplyMasks paints one filled ellipse into the mask layer for every
// detected face and returns the number of ellipses painted. An empty
// box list leaves the mask layer untouched. The caller owns history:
// one detection batch warrants at most one snapshot.
func ApplyMasks(store *raster.LayerStore, boxes []Box, marker color.NRGBA) int {
	painted := 0
	w := float64(store.Width())
	h := float64(store.Height())
	for _, b := range boxes {
		bw := (b.XMax - b.XMin) * w
		bh := (b.YMax - b.YMin) * h
		if bw <= 0 || bh <= 0 {
			continue
		}
		x1 := b.XMin*w - bw*padSides
		x2 := b.XMax*w + bw*padSides
		y1 := b.YMin*h - bh*padTop
		y2 := b.YMax*h + bh*padBottom

		cx := (x1 + x2) / 2
		cy := (y1 + y2) / 2
		rx := (x2 - x1) / 2
		ry := (y2 - y1) / 2
		fillEllipse(store, cx, cy, rx, ry, marker)
		painted++
	}
	return painted
}

// fillEllipse paints a filled axis-aligned ellipse into the mask layer
// by solving each scanline's horizontal extent. Out-of-bounds spans
// are clipped by the store's bounds-safe writes.
func fillEllipse(store *raster.LayerStore, cx, cy, rx, ry float64, marker color.NRGBA) {
	if rx <= 0 || ry <= 0 {
		return
	}
	minY := int(math.Floor(cy - ry))
	maxY := int(math.Ceil(cy + ry))
	for y := minY; y <= maxY; y++ {
		dy := (float64(y) - cy) / ry
		if dy < -1 || dy > 1 {
			continue
		}
		span := rx * math.Sqrt(1-dy*dy)
		minX := int(math.Floor(cx - span))
		maxX := int(math.Ceil(cx + span))
		for x := minX; x <= maxX; x++ {
			dx := (float64(x) - cx) / rx
			if dx*dx+dy*dy <= 1 {
				store.SetPixel(raster.LayerMask, x, y, marker)
			}
		}
	}
}
