package collab

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/disintegration/imaging"

	"github.com/ironsheep/raster-edit/internal/facemask"
)

// DecodeError reports a failed image decode.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode image: %v", e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// DetectionError reports a failed face-detection call.
type DetectionError struct {
	Err error
}

func (e *DetectionError) Error() string { return fmt.Sprintf("detect faces: %v", e.Err) }
func (e *DetectionError) Unwrap() error { return e.Err }

// GenerationError reports a failed background-generation call.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string { return fmt.Sprintf("generate background: %v", e.Err) }
func (e *GenerationError) Unwrap() error { return e.Err }

// Decoder turns encoded image bytes into a pixel buffer at the
// image's natural resolution.
type Decoder interface {
	Decode(data []byte) (*image.NRGBA, error)
}

// FaceDetector finds face bounding boxes in an encoded image. An empty
// result is a valid outcome, not an error; the caller surfaces the
// "nothing detected" case itself.
type FaceDetector interface {
	Detect(ctx context.Context, imageData []byte) ([]facemask.Box, error)
}

// BackgroundGenerator produces a replacement source image from the
// current image and a prompt.
type BackgroundGenerator interface {
	Generate(ctx context.Context, imageData []byte, prompt string) ([]byte, error)
}

// StdDecoder decodes PNG, JPEG and GIF using the registered standard
// decoders and normalizes the result to non-premultiplied RGBA.
type StdDecoder struct{}

// Decode implements Decoder. Failures are wrapped in *DecodeError.
func (StdDecoder) Decode(data []byte) (*image.NRGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return imaging.Clone(img), nil
}
