// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/mapproj/internal/projection"
	"github.com/Faultbox/mapproj/internal/view"
)

// View modes.
const (
	ModeTexture = "texture"
	ModeLines   = "lines"
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	View     ViewConfig     `yaml:"view"`
	Data     DataConfig     `yaml:"data"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width          int  `yaml:"width"`
	Height         int  `yaml:"height"`
	Fullscreen     bool `yaml:"fullscreen"`
	VSync          bool `yaml:"vsync"`
	Samples        int  `yaml:"samples"`          // 1 or 8
	MaxTextureSize int  `yaml:"max_texture_size"` // 0 = GPU limit only
}

// ViewConfig holds the initial view state.
type ViewConfig struct {
	Projection   string  `yaml:"projection"`
	Mode         string  `yaml:"mode"` // texture or lines
	Zoom         float64 `yaml:"zoom"`
	Graticule    bool    `yaml:"graticule"`
	DragRotation string  `yaml:"drag_rotation"` // nsew or free
	CenterLon    float64 `yaml:"center_lon"`
	CenterLat    float64 `yaml:"center_lat"`
}

// DataConfig holds input file paths and mesh resolution.
type DataConfig struct {
	Texture           string  `yaml:"texture"`
	Coastline         string  `yaml:"coastline"` // .shp or .geojson
	GlobeStep         float64 `yaml:"globe_step"`
	GraticuleStep     float64 `yaml:"graticule_step"`
	GraticuleSubsteps int     `yaml:"graticule_substeps"`
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
			Samples:    8,
		},
		View: ViewConfig{
			Projection:   projection.Orthographic.String(),
			Mode:         ModeTexture,
			Zoom:         1,
			Graticule:    false,
			DragRotation: view.NSEW.String(),
		},
		Data: DataConfig{
			Texture:           "data/earth.jpg",
			Coastline:         "data/coastline.shp",
			GlobeStep:         2,
			GraticuleStep:     10,
			GraticuleSubsteps: 10,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ProjectionMode returns the parsed initial projection.
func (c *Config) ProjectionMode() (projection.Mode, error) {
	return projection.ParseMode(c.View.Projection)
}

// Drag returns the parsed drag rotation mode.
func (c *Config) Drag() (view.DragRotation, error) {
	return view.ParseDragRotation(c.View.DragRotation)
}

// Validate checks ranges and enum names, reporting every problem found.
func (c *Config) Validate() error {
	var errs []error

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: window size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.Samples != 1 && c.Graphics.Samples != 8 {
		errs = append(errs, fmt.Errorf("graphics: samples must be 1 or 8, got %d", c.Graphics.Samples))
	}
	if c.Graphics.MaxTextureSize < 0 {
		errs = append(errs, fmt.Errorf("graphics: max_texture_size must be >= 0"))
	}

	if _, err := c.ProjectionMode(); err != nil {
		errs = append(errs, fmt.Errorf("view: %w", err))
	}
	if c.View.Mode != ModeTexture && c.View.Mode != ModeLines {
		errs = append(errs, fmt.Errorf("view: mode must be %q or %q, got %q", ModeTexture, ModeLines, c.View.Mode))
	}
	if c.View.Zoom < view.MinZoom {
		errs = append(errs, fmt.Errorf("view: zoom must be >= %g, got %g", view.MinZoom, c.View.Zoom))
	}
	if _, err := c.Drag(); err != nil {
		errs = append(errs, fmt.Errorf("view: %w", err))
	}
	if c.View.CenterLon < -180 || c.View.CenterLon > 180 || c.View.CenterLat < -90 || c.View.CenterLat > 90 {
		errs = append(errs, fmt.Errorf("view: center %g,%g out of range", c.View.CenterLon, c.View.CenterLat))
	}

	if c.Data.GlobeStep <= 0 || c.Data.GlobeStep > 90 {
		errs = append(errs, fmt.Errorf("data: globe_step must be in (0, 90], got %g", c.Data.GlobeStep))
	}
	if c.Data.GraticuleStep <= 0 || c.Data.GraticuleStep > 90 {
		errs = append(errs, fmt.Errorf("data: graticule_step must be in (0, 90], got %g", c.Data.GraticuleStep))
	}
	if c.Data.GraticuleSubsteps < 1 {
		errs = append(errs, fmt.Errorf("data: graticule_substeps must be >= 1, got %d", c.Data.GraticuleSubsteps))
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging: unknown level %q", c.Logging.Level))
	}

	return errors.Join(errs...)
}
