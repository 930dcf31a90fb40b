package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ironsheep/raster-edit/internal/config"
	"github.com/ironsheep/raster-edit/internal/editor"
	"github.com/ironsheep/raster-edit/internal/script"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("raster-edit %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			usage()
			return
		}
	}

	var (
		configPath = flag.String("config", "", "path to JSON config file")
		imagePath  = flag.String("image", "", "source image to load before the script runs")
		scriptPath = flag.String("script", "", "JSON edit script to replay")
		outPath    = flag.String("out", "out.png", "file to write the exported image to")
	)
	flag.Parse()

	if err := run(*configPath, *imagePath, *scriptPath, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "raster-edit: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("raster-edit - headless raster editing session replay")
	fmt.Println()
	fmt.Println("Usage: raster-edit [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -config path     JSON config file (defaults apply when absent)")
	fmt.Println("  -image path      source image to load before the script runs")
	fmt.Println("  -script path     JSON edit script to replay")
	fmt.Println("  -out path        output file for the exported image (default out.png)")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  RASTER_EDIT_LOG_LEVEL=debug    Enable debug logging")
}

func run(configPath, imagePath, scriptPath, outPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	session := editor.NewSession(cfg, logger, editor.Collaborators{})

	if imagePath != "" {
		data, err := os.ReadFile(imagePath)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		if err := session.LoadImage(data); err != nil {
			return err
		}
	}

	runner := script.NewRunner(session, cfg, logger)
	ctx := context.Background()

	var result *script.ExportResult
	if scriptPath != "" {
		scriptData, err := os.ReadFile(scriptPath)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		result, err = runner.Run(ctx, scriptData)
		if err != nil {
			return err
		}
	}

	// A script without an export still produces the default export
	if result == nil {
		result, err = runner.Apply(ctx, script.Command{Op: "export"})
		if err != nil {
			return err
		}
	}

	if err := os.WriteFile(outPath, result.Data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("export written", "path", outPath,
		"width", result.Width, "height", result.Height, "bytes", len(result.Data))
	return nil
}

// newLogger returns a structured JSON logger at the configured level.
// The RASTER_EDIT_LOG_LEVEL environment variable overrides the config.
func newLogger(level string) *slog.Logger {
	if env := os.Getenv("RASTER_EDIT_LOG_LEVEL"); env != "" {
		level = env
	}
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	return slog.New(h)
}
