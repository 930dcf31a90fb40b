// Package script replays JSON edit commands against an editing
// session. It is the headless harness for the engine: a script is a
// JSON array of commands mirroring the interactive surface (tool
// selection, pointer events, undo/redo, view changes, collaborator
// calls, export), applied in order.
//
// Pointer coordinates in scripts are viewport coordinates; the runner
// presents the whole viewport as the rendered surface.
package script
