// Package collab defines the contracts the editing engine needs from
// its external collaborators: image decoding, face detection and
// AI background generation.
//
// Collaborators are opaque: given input media they eventually produce
// a structured result or fail. Their failures are recoverable by
// design — the engine stays in its prior valid state and the caller
// surfaces the error and retries. Each failure kind wraps the
// underlying cause in a typed error so callers can branch with
// errors.As.
//
// Only the decoder has a default implementation here; detection and
// generation are owned by the surrounding application.
package collab
