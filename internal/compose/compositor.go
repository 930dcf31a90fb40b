package compose

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blend"
	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"github.com/ironsheep/raster-edit/internal/raster"
	"github.com/ironsheep/raster-edit/internal/view"
)

// Format selects the export encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// ParseFormat maps a format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	}
	return "", fmt.Errorf("unknown export format: %q", name)
}

// Options configures one export.
type Options struct {
	// Output resolution in pixels.
	Width  int
	Height int

	// Background fills the canvas before the source is placed. Exported
	// output is opaque; a zero value falls back to white.
	Background color.NRGBA

	Format Format

	// Quality applies to JPEG output (1-100); 0 falls back to 90.
	Quality int
}

// Flatten renders the session's layers through the export transform
// into a single opaque raster at the output resolution.
//
// The interactive viewport size is required because pan offsets were
// captured in viewport-pixel units and must be rescaled to output
// space (see view.ExportPlacement).
func Flatten(store *raster.LayerStore, st view.State, viewportWidth, viewportHeight int, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: output %dx%d", raster.ErrInvalidDimensions, opts.Width, opts.Height)
	}
	bg := opts.Background
	if bg == (color.NRGBA{}) {
		bg = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	bg.A = 255

	placement := view.ExportPlacement(
		store.Width(), store.Height(),
		viewportWidth, viewportHeight,
		opts.Width, opts.Height, st,
	).Rect()

	base := imaging.New(opts.Width, opts.Height, bg)
	xdraw.CatmullRom.Scale(base, placement, store.Source(), store.Source().Bounds(), xdraw.Over, nil)

	// The draw layer goes through the identical placement so strokes
	// land exactly over the source pixels they were painted on.
	overlay := image.NewNRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	xdraw.NearestNeighbor.Scale(overlay, placement, store.Draw(), store.Draw().Bounds(), xdraw.Over, nil)

	return blend.Normal(base, overlay), nil
}

// Encode serializes a flattened export in the requested format.
func Encode(img image.Image, format Format, quality int) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatPNG, "":
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	case FormatJPEG:
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown export format: %q", format)
	}
	return buf.Bytes(), nil
}
