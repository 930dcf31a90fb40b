package view

import (
	"image"
	"math"
)

// Rect is the bounding rectangle of the rendered editing surface in
// screen coordinates. The rendered surface may be displayed at a
// different pixel density than its backing buffer.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// State is the pan/zoom view state of one session. Zoom is clamped to
// a configured range; pan is unconstrained, the user may move content
// fully outside the visible viewport.
type State struct {
	zoom    float64
	minZoom float64
	maxZoom float64

	// PanX and PanY are offsets in viewport-pixel units.
	PanX float64
	PanY float64
}

// NewState creates a view state at zoom 1 clamped to [minZoom, maxZoom].
func NewState(minZoom, maxZoom float64) State {
	s := State{minZoom: minZoom, maxZoom: maxZoom}
	s.SetZoom(1)
	return s
}

// Zoom returns the current zoom factor.
func (s *State) Zoom() float64 { return s.zoom }

// SetZoom sets the zoom factor, clamped to the configured range.
func (s *State) SetZoom(z float64) {
	if z < s.minZoom {
		z = s.minZoom
	}
	if z > s.maxZoom {
		z = s.maxZoom
	}
	s.zoom = z
}

// ZoomBy multiplies the current zoom by factor, clamped.
func (s *State) ZoomBy(factor float64) {
	s.SetZoom(s.zoom * factor)
}

// PanBy shifts the pan offset by a screen-space delta.
func (s *State) PanBy(dx, dy float64) {
	s.PanX += dx
	s.PanY += dy
}

// Reset returns the state to zoom 1 and zero pan.
func (s *State) Reset() {
	s.SetZoom(1)
	s.PanX = 0
	s.PanY = 0
}

// ScreenToImage converts a pointer position to image-buffer
// coordinates by scaling its offset inside the rendered surface's
// bounding rectangle by bufferSize/renderedSize in each axis
// independently.
func ScreenToImage(px, py float64, surface Rect, bufWidth, bufHeight int) (float64, float64) {
	if surface.Width <= 0 || surface.Height <= 0 {
		return 0, 0
	}
	ix := (px - surface.X) * float64(bufWidth) / surface.Width
	iy := (py - surface.Y) * float64(bufHeight) / surface.Height
	return ix, iy
}

// BaseScale is the ratio used to display a properly sized pointer and
// brush indicator over the viewport. It does not affect buffer
// coordinates.
func BaseScale(bufferHeight, viewportHeight int) float64 {
	if bufferHeight <= 0 {
		return 1
	}
	return float64(viewportHeight) / float64(bufferHeight)
}

// Placement is the destination rectangle, in output-space pixels, at
// which the source image (and the draw layer, which shares its size)
// is rendered during export.
type Placement struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Rect returns the placement as an integer rectangle for drawing.
func (p Placement) Rect() image.Rectangle {
	return image.Rect(
		int(math.Round(p.X)),
		int(math.Round(p.Y)),
		int(math.Round(p.X+p.Width)),
		int(math.Round(p.Y+p.Height)),
	)
}

// ExportPlacement derives the output-space placement of the source
// image for the current view state.
//
// The compositor renders at the output resolution, which is
// independent of the viewport resolution. Pan values were captured in
// viewport-pixel units and are rescaled by outputSize/viewportSize
// before being applied in output space. The drawn source fills the
// output's vertical extent at zoom 1 and preserves its aspect ratio:
// drawHeight = outputHeight * zoom, drawWidth = drawHeight * aspect.
// The image is centered, then panned.
func ExportPlacement(srcWidth, srcHeight, viewportWidth, viewportHeight, outWidth, outHeight int, st State) Placement {
	if srcHeight <= 0 || viewportWidth <= 0 || viewportHeight <= 0 {
		return Placement{}
	}
	aspect := float64(srcWidth) / float64(srcHeight)
	drawH := float64(outHeight) * st.Zoom()
	drawW := drawH * aspect

	panX := st.PanX * float64(outWidth) / float64(viewportWidth)
	panY := st.PanY * float64(outHeight) / float64(viewportHeight)

	return Placement{
		X:      (float64(outWidth)-drawW)/2 + panX,
		Y:      (float64(outHeight)-drawH)/2 + panY,
		Width:  drawW,
		Height: drawH,
	}
}
