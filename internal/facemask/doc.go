// Package facemask seeds the mask layer from face-detection results.
//
// Detection itself is an external collaborator; this package only
// consumes its output. Each normalized bounding box is converted to
// pixel space, padded anisotropically (more above the box than below
// or to the sides, to cover hair), and painted into the mask layer as
// a filled ellipse with the configured marker color.
package facemask
