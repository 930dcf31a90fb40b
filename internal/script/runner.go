package script

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/ironsheep/raster-edit/internal/compose"
	"github.com/ironsheep/raster-edit/internal/config"
	"github.com/ironsheep/raster-edit/internal/editor"
	"github.com/ironsheep/raster-edit/internal/raster"
	"github.com/ironsheep/raster-edit/internal/view"
)

// Command is one scripted edit operation. Op selects the operation;
// the remaining fields are interpreted per op and ignored otherwise.
type Command struct {
	Op string `json:"op"`

	// load
	Path string `json:"path,omitempty"`

	// tool
	Tool string `json:"tool,omitempty"`

	// brush
	Color  string  `json:"color,omitempty"`
	Alpha  *uint8  `json:"alpha,omitempty"`
	Radius float64 `json:"radius,omitempty"`

	// down / move
	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`

	// stroke: down at the first point, move through the rest, up
	Points [][2]float64 `json:"points,omitempty"`

	// pan
	DX float64 `json:"dx,omitempty"`
	DY float64 `json:"dy,omitempty"`

	// zoom
	Factor float64 `json:"factor,omitempty"`

	// generate
	Prompt string `json:"prompt,omitempty"`

	// export
	Format  string `json:"format,omitempty"`
	Quality int    `json:"quality,omitempty"`
}

// ExportResult describes one exported image produced by a script.
type ExportResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	MimeType    string `json:"mime_type"`
	ImageBase64 string `json:"image_base64"`

	// Data is the raw encoded image for callers that write files.
	Data []byte `json:"-"`
}

// Runner applies commands to one session.
type Runner struct {
	session *editor.Session
	cfg     *config.Config
	logger  *slog.Logger
}

// NewRunner creates a runner over an existing session.
func NewRunner(session *editor.Session, cfg *config.Config, logger *slog.Logger) *Runner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{session: session, cfg: cfg, logger: logger}
}

// Run parses a JSON command array and applies every command in order.
// It returns the result of the last export command, or nil if the
// script exported nothing. The first failing command aborts the run.
func (r *Runner) Run(ctx context.Context, data []byte) (*ExportResult, error) {
	var cmds []Command
	if err := json.Unmarshal(data, &cmds); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}

	var last *ExportResult
	for i, cmd := range cmds {
		res, err := r.Apply(ctx, cmd)
		if err != nil {
			return nil, fmt.Errorf("command %d (%s): %w", i, cmd.Op, err)
		}
		if res != nil {
			last = res
		}
	}
	return last, nil
}

// Apply executes a single command. Only "export" yields a result.
func (r *Runner) Apply(ctx context.Context, cmd Command) (*ExportResult, error) {
	surface := view.Rect{Width: float64(r.cfg.ViewportWidth), Height: float64(r.cfg.ViewportHeight)}

	switch cmd.Op {
	case "load":
		data, err := os.ReadFile(cmd.Path)
		if err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
		return nil, r.session.LoadImage(data)

	case "tool":
		t, err := editor.ParseTool(cmd.Tool)
		if err != nil {
			return nil, err
		}
		r.session.SetTool(t)
		return nil, nil

	case "brush":
		b := r.session.Brush()
		if cmd.Color != "" {
			alpha := b.Color.A
			if cmd.Alpha != nil {
				alpha = *cmd.Alpha
			}
			c, err := config.ParseHexColor(cmd.Color, alpha)
			if err != nil {
				return nil, err
			}
			b.Color = c
		}
		if cmd.Radius > 0 {
			b.Radius = cmd.Radius
		}
		r.session.SetBrush(raster.Brush{Color: b.Color, Radius: b.Radius})
		return nil, nil

	case "down":
		r.session.PointerDown(cmd.X, cmd.Y, surface)
		return nil, nil

	case "move":
		r.session.PointerMove(cmd.X, cmd.Y, surface)
		return nil, nil

	case "up":
		r.session.PointerUp()
		return nil, nil

	case "stroke":
		if len(cmd.Points) == 0 {
			return nil, fmt.Errorf("stroke requires at least one point")
		}
		r.session.PointerDown(cmd.Points[0][0], cmd.Points[0][1], surface)
		for _, p := range cmd.Points[1:] {
			r.session.PointerMove(p[0], p[1], surface)
		}
		r.session.PointerUp()
		return nil, nil

	case "undo":
		r.session.Undo()
		return nil, nil

	case "redo":
		r.session.Redo()
		return nil, nil

	case "pan":
		r.session.View().PanBy(cmd.DX, cmd.DY)
		return nil, nil

	case "zoom":
		if cmd.Factor <= 0 {
			return nil, fmt.Errorf("zoom requires a positive factor")
		}
		r.session.View().ZoomBy(cmd.Factor)
		return nil, nil

	case "facemask":
		n, err := r.session.DetectAndMaskFaces(ctx)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			r.logger.Info("no faces detected")
		}
		return nil, nil

	case "generate":
		return nil, r.session.GenerateBackground(ctx, cmd.Prompt)

	case "export":
		format := compose.FormatPNG
		if cmd.Format != "" {
			f, err := compose.ParseFormat(cmd.Format)
			if err != nil {
				return nil, err
			}
			format = f
		}
		data, err := r.session.Export(format, cmd.Quality)
		if err != nil {
			return nil, err
		}
		return &ExportResult{
			Width:       r.cfg.OutputWidth,
			Height:      r.cfg.OutputHeight,
			MimeType:    "image/" + string(format),
			ImageBase64: base64.StdEncoding.EncodeToString(data),
			Data:        data,
		}, nil
	}
	return nil, fmt.Errorf("unknown op: %q", cmd.Op)
}
