// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/meshview/internal/engine/scene"
	"github.com/Faultbox/meshview/pkg/math"
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display, timing and projection settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	TickRate   int     `yaml:"tick_rate"` // ticks per second
	FOVDegrees float32 `yaml:"fov_degrees"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
}

// ViewerConfig holds the initial scene state and key bindings.
type ViewerConfig struct {
	Model          string            `yaml:"model"`
	Speed          float32           `yaml:"speed"`
	RotationStep   float32           `yaml:"rotation_step"` // radians per tick
	Rotating       bool              `yaml:"rotating"`
	Textured       bool              `yaml:"textured"`
	Lit            bool              `yaml:"lit"`
	Wireframe      bool              `yaml:"wireframe"`
	LightDirection [3]float32        `yaml:"light_direction"`
	Color          [3]float32        `yaml:"color"`
	Keys           map[string]string `yaml:"keys"` // command name -> SDL key name
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			TickRate:   60,
			FOVDegrees: 60,
			Near:       0.1,
			Far:        1024,
		},
		Viewer: ViewerConfig{
			Speed:          1.0,
			RotationStep:   scene.DefaultRotationStep,
			Rotating:       true,
			Textured:       false,
			Lit:            true,
			LightDirection: [3]float32{-1.0, 0.4, 0.9},
			Color:          [3]float32{0.0, 1.0, 0.0},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	g := c.Graphics
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("graphics: invalid size %dx%d", g.Width, g.Height)
	}
	if g.TickRate <= 0 {
		return fmt.Errorf("graphics: tick_rate must be positive, got %d", g.TickRate)
	}
	if g.FOVDegrees <= 0 || g.FOVDegrees >= 180 {
		return fmt.Errorf("graphics: fov_degrees must be in (0, 180), got %g", g.FOVDegrees)
	}
	if g.Near <= 0 || g.Near >= g.Far {
		return fmt.Errorf("graphics: need 0 < near < far, got near=%g far=%g", g.Near, g.Far)
	}

	v := c.Viewer
	if v.Speed < scene.MinSpeed || v.Speed > scene.MaxSpeed {
		return fmt.Errorf("viewer: speed must be in [%g, %g], got %g", scene.MinSpeed, scene.MaxSpeed, v.Speed)
	}
	if v.LightDirection == [3]float32{} {
		return errors.New("viewer: light_direction must not be zero")
	}
	for name := range v.Keys {
		if _, ok := scene.ParseCommand(name); !ok {
			return fmt.Errorf("viewer: unknown command %q in keys", name)
		}
	}
	return nil
}

// SceneOptions converts the viewer settings into initial scene options.
func (c *Config) SceneOptions() scene.Options {
	return scene.Options{
		Speed:        c.Viewer.Speed,
		RotationStep: c.Viewer.RotationStep,
		Rotating:     c.Viewer.Rotating,
		Textured:     c.Viewer.Textured,
		Lit:          c.Viewer.Lit,
		Color:        math.V3(c.Viewer.Color),
	}
}

// RenderConfig converts the graphics settings into composer settings.
func (c *Config) RenderConfig() scene.RenderConfig {
	cfg := scene.RenderConfig{
		Primitive:  scene.PrimitiveTriangles,
		FOVDegrees: c.Graphics.FOVDegrees,
		Near:       c.Graphics.Near,
		Far:        c.Graphics.Far,
		Light:      math.V3(c.Viewer.LightDirection),
	}
	if c.Viewer.Wireframe {
		cfg.Primitive = scene.PrimitiveLines
	}
	return cfg
}
