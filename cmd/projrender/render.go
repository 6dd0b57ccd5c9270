package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/mapproj/internal/config"
	"github.com/Faultbox/mapproj/internal/engine/debug"
	"github.com/Faultbox/mapproj/internal/engine/texture"
	"github.com/Faultbox/mapproj/internal/logger"
	"github.com/Faultbox/mapproj/internal/mesh"
	"github.com/Faultbox/mapproj/internal/pipeline"
	"github.com/Faultbox/mapproj/internal/raster"
	"github.com/Faultbox/mapproj/internal/view"
)

func cmdRender(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(out)
	configPath := fs.String("config", "", "Load defaults from a config file")
	proj := fs.String("projection", "", "Projection (gnomonic, azimuthal, orthographic, stereographic)")
	width := fs.Int("width", 0, "Image width")
	height := fs.Int("height", 0, "Image height")
	samples := fs.Int("samples", 0, "Samples per pixel (1 or 8)")
	tex := fs.String("texture", "", "Equirectangular globe texture")
	coast := fs.String("coastline", "", "Coastline file (.shp or .geojson)")
	lines := fs.Bool("lines", false, "Draw the vector map instead of the texture")
	graticule := fs.Bool("graticule", false, "Draw the graticule")
	lon := fs.Float64("center-lon", 0, "Longitude at the view center, degrees")
	lat := fs.Float64("center-lat", 0, "Latitude at the view center, degrees")
	zoom := fs.Float64("zoom", 0, "Zoom factor")
	workers := fs.Int("workers", 0, "Pipeline workers (0 = GOMAXPROCS)")
	maxTex := fs.Int("max-texture", 0, "Downscale the texture so neither side exceeds this (0 = config value)")
	output := fs.String("o", "projection.png", "Output PNG file")
	verbose := fs.Bool("v", false, "Debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFile(*configPath); err != nil {
			return err
		}
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	if err := logger.Init(level, cfg.Logging.LogFile); err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.Named("projrender")

	// flags override the file
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if *proj != "" {
		cfg.View.Projection = *proj
	}
	if *width > 0 {
		cfg.Graphics.Width = *width
	}
	if *height > 0 {
		cfg.Graphics.Height = *height
	}
	if *samples > 0 {
		cfg.Graphics.Samples = *samples
	}
	if *tex != "" {
		cfg.Data.Texture = *tex
	}
	if *coast != "" {
		cfg.Data.Coastline = *coast
	}
	if *lines {
		cfg.View.Mode = config.ModeLines
	}
	if *graticule {
		cfg.View.Graticule = true
	}
	if set["center-lon"] {
		cfg.View.CenterLon = *lon
	}
	if set["center-lat"] {
		cfg.View.CenterLat = *lat
	}
	if *zoom > 0 {
		cfg.View.Zoom = *zoom
	}
	if *maxTex > 0 {
		cfg.Graphics.MaxTextureSize = *maxTex
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	scene, err := buildScene(cfg)
	if err != nil {
		return err
	}

	r := &raster.Renderer{
		Width:    cfg.Graphics.Width,
		Height:   cfg.Graphics.Height,
		Samples:  cfg.Graphics.Samples,
		Pipeline: pipeline.New(*workers),
	}

	start := time.Now()
	img, stats := r.Render(scene)
	log.Debug("frame rendered",
		zap.Duration("took", time.Since(start)),
		zap.Int("triangles", stats.Triangles),
		zap.Int("lines", stats.Lines),
	)

	if err := debug.WritePNG(*output, img); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s: %dx%d %s, %d/%d triangles, %d/%d lines drawn\n",
		*output, r.Width, r.Height, scene.Frame.Mode.Title(),
		stats.Triangles, stats.Triangles+stats.DiscardedTriangles,
		stats.Lines, stats.Lines+stats.DiscardedLines,
	)
	return nil
}

// buildScene loads the inputs named by cfg. The texture is downscaled to
// graphics.max_texture_size when that is set.
func buildScene(cfg *config.Config) (raster.Scene, error) {
	mode, err := cfg.ProjectionMode()
	if err != nil {
		return raster.Scene{}, err
	}

	c := view.NewController(mode, view.NSEW, cfg.Graphics.Width, cfg.Graphics.Height)
	c.SetZoom(cfg.View.Zoom)
	c.SetCenter(cfg.View.CenterLon, cfg.View.CenterLat)

	scene := raster.Scene{Frame: c.Snapshot()}
	d := cfg.Data

	if cfg.View.Mode == config.ModeTexture {
		scene.Clear = raster.ClearTexture
		img, err := texture.Load(d.Texture, cfg.Graphics.MaxTextureSize)
		if err != nil {
			return raster.Scene{}, err
		}
		scene.Texture = raster.NewSampler(img)
		if scene.Globe, err = mesh.Globe(d.GlobeStep); err != nil {
			return raster.Scene{}, err
		}
	} else {
		scene.Clear = raster.ClearLines
	}

	if cfg.View.Graticule {
		g, err := mesh.Graticule(d.GraticuleStep, d.GraticuleSubsteps)
		if err != nil {
			return raster.Scene{}, err
		}
		scene.Lines = append(scene.Lines, raster.LineLayer{Mesh: g, Color: raster.GraticuleColor})
	}

	if cfg.View.Mode == config.ModeLines {
		coast, err := mesh.LoadCoastline(d.Coastline)
		if err != nil {
			return raster.Scene{}, err
		}
		scene.Lines = append(scene.Lines, raster.LineLayer{Mesh: coast, Color: raster.CoastlineColor})
	}

	return scene, nil
}
