package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagProjection = flag.String("projection", "", "Initial projection (gnomonic, azimuthal, orthographic, stereographic)")
	flagLines      = flag.Bool("lines", false, "Start in vector map mode")
	flagGraticule  = flag.Bool("graticule", false, "Show the graticule")
	flagTexture    = flag.String("texture", "", "Equirectangular globe texture")
	flagCoastline  = flag.String("coastline", "", "Coastline file (.shp or .geojson)")
	flagSamples    = flag.Int("samples", 0, "Multisample count (1 or 8)")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagProjection != "" {
		cfg.View.Projection = *flagProjection
	}
	if *flagLines {
		cfg.View.Mode = ModeLines
	}
	if *flagGraticule {
		cfg.View.Graticule = true
	}
	if *flagTexture != "" {
		cfg.Data.Texture = *flagTexture
	}
	if *flagCoastline != "" {
		cfg.Data.Coastline = *flagCoastline
	}
	if *flagSamples > 0 {
		cfg.Graphics.Samples = *flagSamples
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
