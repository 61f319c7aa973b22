// Package main is the entry point for the meshview OBJ viewer.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/engine/input"
	"github.com/Faultbox/meshview/internal/engine/renderer"
	"github.com/Faultbox/meshview/internal/engine/scene"
	"github.com/Faultbox/meshview/internal/engine/window"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/internal/viewer"
	"github.com/Faultbox/meshview/pkg/formats"
	"github.com/Faultbox/meshview/pkg/math"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	// Several runs can share one rotated log file
	logger.With(zap.String("run", uuid.NewString()))

	logger.Info("=== meshview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
	logger.Sync()
}

func run(cfg *config.Config) error {
	if cfg.Viewer.Model == "" {
		return errors.New("no model given (use -model or pass a path)")
	}

	// A bad mesh is fatal before any window opens
	mesh, err := formats.LoadOBJ(cfg.Viewer.Model)
	if err != nil {
		return err
	}
	logger.Info("mesh loaded",
		zap.String("path", cfg.Viewer.Model),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Bool("uv_from_file", mesh.HasTexCoords),
	)

	keys := input.DefaultKeyMap()
	if err := keys.Bind(cfg.Viewer.Keys); err != nil {
		return fmt.Errorf("key bindings: %w", err)
	}

	win, err := window.New(window.Config{
		Title:      "meshview - " + filepath.Base(cfg.Viewer.Model),
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Close()

	// Renderer needs the GL context the window just created
	width, height := win.DrawableSize()
	rend, err := renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: [3]float32{0.1, 0.1, 0.15},
	})
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer rend.Close()

	if err := rend.Upload(mesh); err != nil {
		return fmt.Errorf("uploading mesh: %w", err)
	}

	state := scene.NewState(math.V3(mesh.Center), math.V3(mesh.Bounds.Extent()), cfg.SceneOptions())
	composer := scene.NewComposer(cfg.RenderConfig())

	loop := viewer.New(state, composer, input.New(keys), &screen{renderer: rend, window: win}, viewer.Options{
		TickRate: cfg.Graphics.TickRate,
		Width:    width,
		Height:   height,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return loop.Run(ctx)
}

// screen presents renderer output in the window.
type screen struct {
	renderer *renderer.Renderer
	window   *window.Window
}

func (s *screen) Draw(frame scene.Frame) error {
	if err := s.renderer.Draw(frame); err != nil {
		return err
	}
	s.window.SwapBuffers()
	return nil
}

// Resize events carry window coordinates; the viewport wants pixels.
func (s *screen) Resize(int, int) {
	s.renderer.Resize(s.window.DrawableSize())
}
