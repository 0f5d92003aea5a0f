// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/hammerview/internal/engine/animation"
	"github.com/Faultbox/hammerview/internal/engine/camera"
	"github.com/Faultbox/hammerview/internal/engine/debug"
)

// Config holds all viewer settings.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Camera    CameraConfig    `yaml:"camera"`
	Animation AnimationConfig `yaml:"animation"`
	Assets    AssetsConfig    `yaml:"assets"`
	Audio     AudioConfig     `yaml:"audio"`
	Capture   CaptureConfig   `yaml:"capture"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Resizable bool   `yaml:"resizable"`
	VSync     bool   `yaml:"vsync"`
	Backend   string `yaml:"backend"` // "sdl" or "glfw"
}

// CameraConfig holds the starting pose and tuning of the free-look camera.
type CameraConfig struct {
	Position         [3]float32 `yaml:"position"`
	Yaw              float32    `yaml:"yaw"`   // degrees
	Pitch            float32    `yaml:"pitch"` // degrees
	MovementSpeed    float32    `yaml:"movement_speed"`
	MouseSensitivity float32    `yaml:"mouse_sensitivity"`
	Zoom             float32    `yaml:"zoom"` // vertical FOV, degrees
	Near             float32    `yaml:"near"`
	Far              float32    `yaml:"far"`
}

// AnimationConfig holds swing settings.
type AnimationConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "bracket" or "rounded"
}

// AssetsConfig holds texture paths and an optional override directory.
type AssetsConfig struct {
	Dir           string `yaml:"dir"` // searched before the embedded assets
	PlaneTexture  string `yaml:"plane_texture"`
	FigureTexture string `yaml:"figure_texture"`
}

// AudioConfig holds the swing impact sound settings.
type AudioConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Volume      float64 `yaml:"volume"` // 0.0 to 1.0
	ImpactSound string  `yaml:"impact_sound"`
}

// CaptureConfig holds screenshot settings.
type CaptureConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
	Format string `yaml:"format"` // png or tiff
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Supported platform backends.
const (
	BackendSDL  = "sdl"
	BackendGLFW = "glfw"
)

// Default returns a Config with the viewer's stock values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "Animation",
			Width:     800,
			Height:    600,
			Resizable: false,
			VSync:     true,
			Backend:   BackendSDL,
		},
		Camera: CameraConfig{
			Position:         [3]float32{0.75, 0.5, -2.0},
			Yaw:              -90,
			Pitch:            0,
			MovementSpeed:    2.5,
			MouseSensitivity: 0.1,
			Zoom:             45,
			Near:             0.1,
			Far:              100,
		},
		Animation: AnimationConfig{
			Enabled: true,
			Mode:    "rounded",
		},
		Assets: AssetsConfig{
			Dir:           ".",
			PlaneTexture:  "textures/niebo.png",
			FigureTexture: "textures/drewno.png",
		},
		Audio: AudioConfig{
			Enabled:     true,
			Volume:      0.6,
			ImpactSound: "sounds/impact.wav",
		},
		Capture: CaptureConfig{
			Dir:    "screenshots",
			Prefix: "hammerview",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}

// Validate reports the first setting the viewer cannot start with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	switch c.Window.Backend {
	case BackendSDL, BackendGLFW:
	default:
		return fmt.Errorf("unknown window backend %q", c.Window.Backend)
	}
	if _, err := animation.ParseMode(c.Animation.Mode); err != nil {
		return err
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("invalid clip planes near=%g far=%g", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.Zoom < camera.MinZoom || c.Camera.Zoom > camera.MaxZoom {
		return fmt.Errorf("camera zoom must be in [%g, %g] degrees, got %g", camera.MinZoom, camera.MaxZoom, c.Camera.Zoom)
	}
	if c.Camera.MovementSpeed <= 0 || c.Camera.MouseSensitivity <= 0 {
		return fmt.Errorf("camera movement_speed and mouse_sensitivity must be positive, got %g and %g",
			c.Camera.MovementSpeed, c.Camera.MouseSensitivity)
	}
	if c.Assets.PlaneTexture == "" || c.Assets.FigureTexture == "" {
		return fmt.Errorf("both plane_texture and figure_texture are required")
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio volume must be in [0, 1], got %g", c.Audio.Volume)
	}
	if _, err := debug.ParseImageFormat(c.Capture.Format); err != nil {
		return err
	}
	return nil
}
