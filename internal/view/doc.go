// Package view holds the pan/zoom state of an editing session and the
// pure coordinate math between the three spaces the engine works in:
//
//   - screen space: pointer coordinates relative to the rendered surface
//   - image space: the backing pixel buffers at the source's natural
//     resolution
//   - output space: the fixed export resolution
//
// The viewport and the export output deliberately differ in resolution.
// Pan offsets are captured in viewport-pixel units, so every pixel
// dimension used interactively must be re-derived, never reused
// verbatim, when building the export placement.
package view
