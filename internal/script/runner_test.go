package script

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/raster-edit/internal/config"
	"github.com/ironsheep/raster-edit/internal/editor"
	"github.com/ironsheep/raster-edit/internal/raster"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 30, G: 30, B: 30, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "source.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func newRunner(t *testing.T) (*Runner, *editor.Session, string) {
	t.Helper()
	cfg := config.DefaultConfig()
	// Viewport matching the test image keeps script coordinates 1:1
	cfg.ViewportWidth = 100
	cfg.ViewportHeight = 100
	session := editor.NewSession(cfg, testLogger(), editor.Collaborators{})
	return NewRunner(session, cfg, testLogger()), session, writeTestPNG(t, 100, 100)
}

func TestRun_FullScript(t *testing.T) {
	r, session, imgPath := newRunner(t)

	script := `[
		{"op": "load", "path": ` + jsonString(imgPath) + `},
		{"op": "tool", "tool": "brush"},
		{"op": "brush", "color": "#FF0000", "radius": 4},
		{"op": "stroke", "points": [[20, 20], [60, 20]]},
		{"op": "tool", "tool": "bucket"},
		{"op": "brush", "color": "#0000FF"},
		{"op": "down", "x": 80, "y": 80},
		{"op": "up"},
		{"op": "export", "format": "png"}
	]`

	res, err := r.Run(context.Background(), []byte(script))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res == nil {
		t.Fatal("script with an export should return a result")
	}
	if res.MimeType != "image/png" {
		t.Errorf("mime type: got %s, want image/png", res.MimeType)
	}

	img, err := png.Decode(bytes.NewReader(res.Data))
	if err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if img.Bounds().Dx() != res.Width || img.Bounds().Dy() != res.Height {
		t.Errorf("result dimensions %dx%d do not match image %dx%d",
			res.Width, res.Height, img.Bounds().Dx(), img.Bounds().Dy())
	}

	// The stroke painted red; the bucket filled the rest blue but
	// could not cross the stroke... fill starts outside it.
	if got := session.Store().PixelAt(raster.LayerDraw, 40, 20); got != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("stroke pixel: got %v, want red", got)
	}
	if got := session.Store().PixelAt(raster.LayerDraw, 80, 80); got != (color.NRGBA{B: 255, A: 255}) {
		t.Errorf("filled pixel: got %v, want blue", got)
	}
}

func TestRun_UndoRedo(t *testing.T) {
	r, session, imgPath := newRunner(t)

	script := `[
		{"op": "load", "path": ` + jsonString(imgPath) + `},
		{"op": "tool", "tool": "brush"},
		{"op": "stroke", "points": [[50, 50]]},
		{"op": "undo"}
	]`
	if _, err := r.Run(context.Background(), []byte(script)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if got := session.Store().PixelAt(raster.LayerDraw, 50, 50); got.A != 0 {
		t.Errorf("pixel after scripted undo: got %v, want transparent", got)
	}

	if _, err := r.Apply(context.Background(), Command{Op: "redo"}); err != nil {
		t.Fatalf("redo failed: %v", err)
	}
	if got := session.Store().PixelAt(raster.LayerDraw, 50, 50); got.A == 0 {
		t.Error("pixel after scripted redo should be painted")
	}
}

func TestRun_ViewCommands(t *testing.T) {
	r, session, imgPath := newRunner(t)

	script := `[
		{"op": "load", "path": ` + jsonString(imgPath) + `},
		{"op": "pan", "dx": 12, "dy": -8},
		{"op": "zoom", "factor": 2}
	]`
	if _, err := r.Run(context.Background(), []byte(script)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if session.View().PanX != 12 || session.View().PanY != -8 {
		t.Errorf("pan: got (%g,%g), want (12,-8)", session.View().PanX, session.View().PanY)
	}
	if session.View().Zoom() != 2 {
		t.Errorf("zoom: got %g, want 2", session.View().Zoom())
	}
}

func TestRun_Failures(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"malformed json", `{nope`},
		{"unknown op", `[{"op": "sparkle"}]`},
		{"unknown tool", `[{"op": "tool", "tool": "lasso"}]`},
		{"bad color", `[{"op": "brush", "color": "red"}]`},
		{"empty stroke", `[{"op": "stroke"}]`},
		{"zoom without factor", `[{"op": "zoom"}]`},
		{"missing file", `[{"op": "load", "path": "/nonexistent/x.png"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newRunner(t)
			if _, err := r.Run(context.Background(), []byte(tt.script)); err == nil {
				t.Error("Run should fail")
			}
		})
	}
}

func TestRun_NoExportReturnsNil(t *testing.T) {
	r, _, imgPath := newRunner(t)

	script := `[{"op": "load", "path": ` + jsonString(imgPath) + `}]`
	res, err := r.Run(context.Background(), []byte(script))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res != nil {
		t.Error("script without export should return nil result")
	}
}

// jsonString quotes a path for embedding in script literals.
func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
