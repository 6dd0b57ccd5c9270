package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/mapproj/internal/projection"
	"github.com/Faultbox/mapproj/internal/view"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 || cfg.Graphics.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}
	if cfg.Graphics.Samples != 8 {
		t.Errorf("expected 8 samples, got %d", cfg.Graphics.Samples)
	}

	mode, err := cfg.ProjectionMode()
	if err != nil || mode != projection.Orthographic {
		t.Errorf("expected orthographic, got %v (%v)", mode, err)
	}
	if cfg.View.Mode != ModeTexture {
		t.Errorf("expected texture mode, got %s", cfg.View.Mode)
	}
	if drag, err := cfg.Drag(); err != nil || drag != view.NSEW {
		t.Errorf("expected nsew drag, got %v (%v)", drag, err)
	}
	if cfg.Data.GlobeStep != 2 || cfg.Data.GraticuleStep != 10 || cfg.Data.GraticuleSubsteps != 10 {
		t.Errorf("unexpected mesh defaults: %+v", cfg.Data)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  samples: 1
  max_texture_size: 8192

view:
  projection: gnomonic
  mode: lines
  zoom: 2.5
  graticule: true
  drag_rotation: free
  center_lon: 30
  center_lat: -15

data:
  texture: "earth.png"
  coastline: "coast.geojson"
  globe_step: 5

logging:
  level: "debug"
  log_file: "mapproj.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen || cfg.Graphics.VSync {
		t.Error("fullscreen/vsync not loaded")
	}
	if cfg.Graphics.Samples != 1 || cfg.Graphics.MaxTextureSize != 8192 {
		t.Errorf("unexpected graphics: %+v", cfg.Graphics)
	}

	if mode, _ := cfg.ProjectionMode(); mode != projection.Gnomonic {
		t.Errorf("expected gnomonic, got %v", mode)
	}
	if cfg.View.Mode != ModeLines || !cfg.View.Graticule || cfg.View.Zoom != 2.5 {
		t.Errorf("unexpected view: %+v", cfg.View)
	}
	if drag, _ := cfg.Drag(); drag != view.Free {
		t.Errorf("expected free drag, got %v", drag)
	}
	if cfg.View.CenterLon != 30 || cfg.View.CenterLat != -15 {
		t.Errorf("unexpected center: %v %v", cfg.View.CenterLon, cfg.View.CenterLat)
	}

	if cfg.Data.Texture != "earth.png" || cfg.Data.Coastline != "coast.geojson" || cfg.Data.GlobeStep != 5 {
		t.Errorf("unexpected data: %+v", cfg.Data)
	}
	// not in the file, keeps the default
	if cfg.Data.GraticuleStep != 10 {
		t.Errorf("expected default graticule step, got %v", cfg.Data.GraticuleStep)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "mapproj.log" {
		t.Errorf("unexpected logging: %+v", cfg.Logging)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config invalid: %v", err)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
	if _, err := LoadFile(configPath); err == nil {
		t.Error("expected LoadFile error")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }, "window size"},
		{"samples", func(c *Config) { c.Graphics.Samples = 4 }, "samples"},
		{"projection", func(c *Config) { c.View.Projection = "mercator" }, "unknown projection"},
		{"mode", func(c *Config) { c.View.Mode = "wireframe" }, "mode must be"},
		{"zoom", func(c *Config) { c.View.Zoom = 0.1 }, "zoom"},
		{"drag", func(c *Config) { c.View.DragRotation = "orbit" }, "drag rotation"},
		{"center", func(c *Config) { c.View.CenterLat = 91 }, "center"},
		{"globe step", func(c *Config) { c.Data.GlobeStep = 0 }, "globe_step"},
		{"substeps", func(c *Config) { c.Data.GraticuleSubsteps = 0 }, "graticule_substeps"},
		{"log level", func(c *Config) { c.Logging.Level = "trace" }, "logging"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}

	cfg := Default()
	cfg.Graphics.Samples = 2
	cfg.View.Mode = "x"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "samples") || !strings.Contains(err.Error(), "mode") {
		t.Errorf("expected every problem reported, got %v", err)
	}
}

func TestValidateLogLevelCase(t *testing.T) {
	for _, level := range []string{"DEBUG", "Warn", " error ", "info"} {
		cfg := Default()
		cfg.Logging.Level = level
		if err := cfg.Validate(); err != nil {
			t.Errorf("level %q rejected: %v", level, err)
		}
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "projection flag",
			setup: func() { *flagProjection = "stereographic" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.View.Projection != "stereographic" {
					t.Errorf("expected stereographic, got %s", cfg.View.Projection)
				}
			},
			teardown: func() { *flagProjection = "" },
		},
		{
			name: "lines and graticule flags",
			setup: func() {
				*flagLines = true
				*flagGraticule = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.View.Mode != ModeLines || !cfg.View.Graticule {
					t.Errorf("unexpected view: %+v", cfg.View)
				}
			},
			teardown: func() {
				*flagLines = false
				*flagGraticule = false
			},
		},
		{
			name: "data flags",
			setup: func() {
				*flagTexture = "blue_marble.tif"
				*flagCoastline = "ne_110m.shp"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Data.Texture != "blue_marble.tif" || cfg.Data.Coastline != "ne_110m.shp" {
					t.Errorf("unexpected data: %+v", cfg.Data)
				}
			},
			teardown: func() {
				*flagTexture = ""
				*flagCoastline = ""
			},
		},
		{
			name:  "samples flag",
			setup: func() { *flagSamples = 1 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Samples != 1 {
					t.Errorf("expected 1 sample, got %d", cfg.Graphics.Samples)
				}
			},
			teardown: func() { *flagSamples = 0 },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
view:
  projection: azimuthal
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// flag beats file
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	// file beats default
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
	if cfg.View.Projection != "azimuthal" {
		t.Errorf("expected azimuthal from file, got %s", cfg.View.Projection)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("view:\n  projection: mercator\n"), 0644); err != nil {
		t.Fatal(err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected validation error")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := Default()
	cfg.View.Projection = "gnomonic"
	cfg.Data.GraticuleSubsteps = 4
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded %+v, want %+v", loaded, cfg)
	}
}
