package editor

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/ironsheep/raster-edit/internal/collab"
	"github.com/ironsheep/raster-edit/internal/compose"
	"github.com/ironsheep/raster-edit/internal/config"
	"github.com/ironsheep/raster-edit/internal/facemask"
	"github.com/ironsheep/raster-edit/internal/history"
	"github.com/ironsheep/raster-edit/internal/raster"
	"github.com/ironsheep/raster-edit/internal/view"
)

// ErrBusy reports that a collaborator request is already in flight for
// this session. The request is rejected, not queued; the caller checks
// Busy() and retries later.
var ErrBusy = fmt.Errorf("session busy with a pending request")

// ErrNoImage reports an operation that requires a loaded image.
var ErrNoImage = fmt.Errorf("no image loaded")

// Collaborators bundles the external services a session may call.
// Detector and Generator may be nil when the surrounding application
// does not provide them; Decoder falls back to collab.StdDecoder.
type Collaborators struct {
	Decoder   collab.Decoder
	Detector  collab.FaceDetector
	Generator collab.BackgroundGenerator
}

// Session is the explicit state object of one editing surface. It is
// not safe for concurrent use; all operations must run on one logical
// thread.
type Session struct {
	id     string
	cfg    *config.Config
	logger *slog.Logger

	store   *raster.LayerStore
	history *history.Stack
	viewSt  view.State

	tool  Tool
	brush raster.Brush

	// Active pointer interaction, nil between pointer-up and the next
	// pointer-down.
	stroke    *raster.Stroke
	dragPanX  float64
	dragPanY  float64
	dragFromX float64
	dragFromY float64
	dragging  bool

	sourceData []byte
	busy       bool

	collaborators Collaborators
}

// NewSession creates an empty session. An image must be loaded before
// pointer events have any effect.
func NewSession(cfg *config.Config, logger *slog.Logger, c Collaborators) *Session {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if c.Decoder == nil {
		c.Decoder = collab.StdDecoder{}
	}
	return &Session{
		id:            uuid.NewString(),
		cfg:           cfg,
		logger:        logger,
		history:       history.NewStack(cfg.HistoryDepth),
		viewSt:        view.NewState(cfg.MinZoom, cfg.MaxZoom),
		tool:          ToolMove,
		brush:         raster.Brush{Color: cfg.BrushNRGBA(), Radius: cfg.BrushRadius},
		collaborators: c,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Store returns the layer store, or nil before an image is loaded.
func (s *Session) Store() *raster.LayerStore { return s.store }

// History returns the undo/redo stack.
func (s *Session) History() *history.Stack { return s.history }

// View returns a pointer to the session's pan/zoom state.
func (s *Session) View() *view.State { return &s.viewSt }

// Tool returns the active tool.
func (s *Session) Tool() Tool { return s.tool }

// Busy reports whether a collaborator request is in flight.
func (s *Session) Busy() bool { return s.busy }

// LoadImage decodes a new source image and starts a fresh editing
// session over it: draw/mask/history/view/tool are all reset and one
// blank snapshot is pushed so undo from the first stroke returns to a
// blank canvas. On decode failure the session keeps its prior state.
func (s *Session) LoadImage(data []byte) error {
	img, err := s.collaborators.Decoder.Decode(data)
	if err != nil {
		s.logger.Error("image load failed", "session", s.id, "error", err)
		return err
	}
	store, err := raster.New(img)
	if err != nil {
		return err
	}

	s.store = store
	s.sourceData = append([]byte(nil), data...)
	s.history.Reset()
	s.viewSt = view.NewState(s.cfg.MinZoom, s.cfg.MaxZoom)
	s.tool = ToolMove
	s.stroke = nil
	s.dragging = false
	s.history.Push(store.Snapshot())

	s.logger.Info("image loaded", "session", s.id,
		"width", store.Width(), "height", store.Height())
	return nil
}

// SetTool selects the active tool. Selecting a tool mid-drag ends the
// current pointer interaction without a snapshot.
func (s *Session) SetTool(t Tool) {
	if t == s.tool {
		return
	}
	s.logger.Debug("tool transition", "session", s.id, "from", s.tool.String(), "to", t.String())
	s.stroke = nil
	s.dragging = false
	s.tool = t
}

// SetBrush updates the brush settings shared by the brush and bucket
// tools.
func (s *Session) SetBrush(b raster.Brush) {
	if b.Radius <= 0 {
		b.Radius = s.cfg.BrushRadius
	}
	s.brush = b
}

// Brush returns the current brush settings.
func (s *Session) Brush() raster.Brush { return s.brush }

// PointerDown begins a pointer interaction at screen position (px, py)
// over the rendered surface. Behavior depends on the active tool.
func (s *Session) PointerDown(px, py float64, surface view.Rect) {
	if s.store == nil {
		return
	}
	ix, iy := view.ScreenToImage(px, py, surface, s.store.Width(), s.store.Height())

	switch s.tool {
	case ToolMove:
		s.dragging = true
		s.dragPanX = s.viewSt.PanX
		s.dragPanY = s.viewSt.PanY
		s.dragFromX = px
		s.dragFromY = py

	case ToolBrush:
		s.stroke = raster.BeginStroke(s.store, raster.LayerDraw, s.brush, raster.StrokePaint, ix, iy)

	case ToolEraser:
		eraser := raster.Brush{Color: s.brush.Color, Radius: s.brush.Radius}
		eraser.Color.A = 255
		s.stroke = raster.BeginStroke(s.store, raster.LayerDraw, eraser, raster.StrokeErase, ix, iy)

	case ToolMask:
		marker := raster.Brush{Color: s.cfg.MaskNRGBA(), Radius: s.brush.Radius}
		s.stroke = raster.BeginStroke(s.store, raster.LayerMask, marker, raster.StrokePaint, ix, iy)

	case ToolBucket:
		changed := raster.FloodFill(s.store,
			int(math.Floor(ix)), int(math.Floor(iy)),
			s.brush.Color, s.cfg.BarrierAlpha)
		// A bucket click always snapshots, even when the no-op guard
		// fired; see DESIGN.md.
		s.history.Push(s.store.Snapshot())
		s.logger.Debug("bucket fill", "session", s.id,
			"x", int(ix), "y", int(iy), "changed", changed)
	}
}

// PointerMove continues the current interaction, if any.
func (s *Session) PointerMove(px, py float64, surface view.Rect) {
	if s.store == nil {
		return
	}
	if s.dragging {
		s.viewSt.PanX = s.dragPanX + (px - s.dragFromX)
		s.viewSt.PanY = s.dragPanY + (py - s.dragFromY)
		return
	}
	if s.stroke != nil {
		ix, iy := view.ScreenToImage(px, py, surface, s.store.Width(), s.store.Height())
		s.stroke.MoveTo(ix, iy)
	}
}

// PointerUp ends the current interaction. A stroke that painted at
// least one pixel produces exactly one history snapshot, so one undo
// reverts one whole stroke.
func (s *Session) PointerUp() {
	if s.dragging {
		s.dragging = false
		return
	}
	if s.stroke != nil {
		if s.stroke.Painted() {
			s.history.Push(s.store.Snapshot())
		}
		s.stroke = nil
	}
}

// Undo restores the previous snapshot; a no-op at the before-first
// boundary.
func (s *Session) Undo() {
	if s.store == nil {
		return
	}
	s.history.Undo(s.store)
}

// Redo restores the next snapshot; a no-op at the last entry.
func (s *Session) Redo() {
	if s.store == nil {
		return
	}
	s.history.Redo(s.store)
}

// DetectAndMaskFaces invokes the face-detection collaborator on the
// loaded image and paints one mask ellipse per detected face. The
// whole batch produces at most one history snapshot; zero faces leave
// the session untouched. Returns the number of faces masked.
func (s *Session) DetectAndMaskFaces(ctx context.Context) (int, error) {
	if s.store == nil {
		return 0, ErrNoImage
	}
	if s.collaborators.Detector == nil {
		return 0, &collab.DetectionError{Err: fmt.Errorf("no detector configured")}
	}
	if s.busy {
		return 0, ErrBusy
	}
	s.busy = true
	defer func() { s.busy = false }()

	boxes, err := s.collaborators.Detector.Detect(ctx, s.sourceData)
	if err != nil {
		s.logger.Error("face detection failed", "session", s.id, "error", err)
		return 0, &collab.DetectionError{Err: err}
	}

	painted := facemask.ApplyMasks(s.store, boxes, s.cfg.MaskNRGBA())
	if painted > 0 {
		s.history.Push(s.store.Snapshot())
	}
	s.logger.Info("face masking complete", "session", s.id, "faces", painted)
	return painted, nil
}

// GenerateBackground invokes the background-generation collaborator
// and, on success, replaces the source image: a full session reset
// with one fresh blank snapshot. On failure the session keeps its
// prior state.
func (s *Session) GenerateBackground(ctx context.Context, prompt string) error {
	if s.store == nil {
		return ErrNoImage
	}
	if s.collaborators.Generator == nil {
		return &collab.GenerationError{Err: fmt.Errorf("no generator configured")}
	}
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	defer func() { s.busy = false }()

	data, err := s.collaborators.Generator.Generate(ctx, s.sourceData, prompt)
	if err != nil {
		s.logger.Error("background generation failed", "session", s.id, "error", err)
		return &collab.GenerationError{Err: err}
	}
	return s.LoadImage(data)
}

// Export flattens the session through the export transform and encodes
// it in the requested format. The mask layer is never exported.
func (s *Session) Export(format compose.Format, quality int) ([]byte, error) {
	if s.store == nil {
		return nil, ErrNoImage
	}
	img, err := compose.Flatten(s.store, s.viewSt, s.cfg.ViewportWidth, s.cfg.ViewportHeight, compose.Options{
		Width:  s.cfg.OutputWidth,
		Height: s.cfg.OutputHeight,
		Format: format,
	})
	if err != nil {
		return nil, err
	}
	return compose.Encode(img, format, quality)
}
