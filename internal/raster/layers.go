package raster

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Layer identifies one of the three pixel buffers in a LayerStore.
type Layer int

const (
	// LayerSource is the loaded image. It is read-only: writes to it
	// are ignored.
	LayerSource Layer = iota

	// LayerDraw is the free-paint layer targeted by brush, eraser and
	// flood fill.
	LayerDraw

	// LayerMask is the protection layer. Pixels with mask alpha above
	// the barrier threshold block flood fill.
	LayerMask
)

// String returns the layer name for logging.
func (l Layer) String() string {
	switch l {
	case LayerSource:
		return "source"
	case LayerDraw:
		return "draw"
	case LayerMask:
		return "mask"
	}
	return fmt.Sprintf("layer(%d)", int(l))
}

// ErrInvalidDimensions reports a zero or negative buffer size. It is
// fatal to session initialization; the caller must not proceed.
var ErrInvalidDimensions = fmt.Errorf("invalid buffer dimensions")

// LayerStore owns the three same-sized pixel buffers of one editing
// session. All three buffers share identical width and height for the
// lifetime of one loaded image.
type LayerStore struct {
	source *image.NRGBA
	draw   *image.NRGBA
	mask   *image.NRGBA
	width  int
	height int
}

// New creates a LayerStore from a decoded source image. The draw and
// mask layers are allocated fully transparent at the source's natural
// resolution. Returns ErrInvalidDimensions if the source has a zero or
// negative extent.
func New(source image.Image) (*LayerStore, error) {
	bounds := source.Bounds()
	s := &LayerStore{}
	if err := s.Allocate(bounds.Dx(), bounds.Dy()); err != nil {
		return nil, err
	}
	s.source = imaging.Clone(source)
	return s, nil
}

// Allocate (re)creates the draw and mask layers as fully transparent
// buffers of the given size and discards the previous source buffer.
// Returns ErrInvalidDimensions if either dimension is <= 0.
func (s *LayerStore) Allocate(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	s.width = width
	s.height = height
	s.source = image.NewNRGBA(image.Rect(0, 0, width, height))
	s.draw = image.NewNRGBA(image.Rect(0, 0, width, height))
	s.mask = image.NewNRGBA(image.Rect(0, 0, width, height))
	return nil
}

// Width returns the buffer width in pixels.
func (s *LayerStore) Width() int { return s.width }

// Height returns the buffer height in pixels.
func (s *LayerStore) Height() int { return s.height }

// InBounds reports whether (x, y) addresses a pixel inside the buffers.
func (s *LayerStore) InBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// Source returns the source buffer. Callers must treat it as read-only.
func (s *LayerStore) Source() *image.NRGBA { return s.source }

// Draw returns the draw layer buffer.
func (s *LayerStore) Draw() *image.NRGBA { return s.draw }

// Mask returns the mask layer buffer.
func (s *LayerStore) Mask() *image.NRGBA { return s.mask }

func (s *LayerStore) layer(l Layer) *image.NRGBA {
	switch l {
	case LayerSource:
		return s.source
	case LayerDraw:
		return s.draw
	case LayerMask:
		return s.mask
	}
	return nil
}

// Clear sets every pixel in the named layer to transparent. Clearing
// the source layer is ignored.
func (s *LayerStore) Clear(l Layer) {
	if l == LayerSource {
		return
	}
	buf := s.layer(l)
	if buf == nil {
		return
	}
	for i := range buf.Pix {
		buf.Pix[i] = 0
	}
}

// PixelAt returns the color at (x, y) in the named layer. Out-of-range
// coordinates return fully transparent rather than faulting.
func (s *LayerStore) PixelAt(l Layer, x, y int) color.NRGBA {
	if !s.InBounds(x, y) {
		return color.NRGBA{}
	}
	buf := s.layer(l)
	if buf == nil {
		return color.NRGBA{}
	}
	return buf.NRGBAAt(x, y)
}

// SetPixel writes the color at (x, y) in the named layer. Out-of-range
// coordinates and writes to the source layer are ignored.
func (s *LayerStore) SetPixel(l Layer, x, y int, c color.NRGBA) {
	if l == LayerSource || !s.InBounds(x, y) {
		return
	}
	buf := s.layer(l)
	if buf == nil {
		return
	}
	buf.SetNRGBA(x, y, c)
}

// Snapshot is an immutable capture of the draw and mask layers at one
// point in time. It owns independent memory: mutating the live buffers
// after capture does not alter the snapshot.
type Snapshot struct {
	draw   []uint8
	mask   []uint8
	width  int
	height int
}

// Snapshot deep-copies the current draw and mask layer contents.
func (s *LayerStore) Snapshot() *Snapshot {
	snap := &Snapshot{
		draw:   make([]uint8, len(s.draw.Pix)),
		mask:   make([]uint8, len(s.mask.Pix)),
		width:  s.width,
		height: s.height,
	}
	copy(snap.draw, s.draw.Pix)
	copy(snap.mask, s.mask.Pix)
	return snap
}

// Restore copies a snapshot's contents back into the live draw and
// mask layers. Snapshots from a differently sized session are ignored.
func (s *LayerStore) Restore(snap *Snapshot) {
	if snap == nil || snap.width != s.width || snap.height != s.height {
		return
	}
	copy(s.draw.Pix, snap.draw)
	copy(s.mask.Pix, snap.mask)
}
