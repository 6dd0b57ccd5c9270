// Package app implements the interactive viewer: window, event loop and
// frame submission.
package app

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/mapproj/internal/config"
	"github.com/Faultbox/mapproj/internal/engine/debug"
	"github.com/Faultbox/mapproj/internal/engine/input"
	"github.com/Faultbox/mapproj/internal/engine/renderer"
	"github.com/Faultbox/mapproj/internal/engine/texture"
	"github.com/Faultbox/mapproj/internal/engine/window"
	"github.com/Faultbox/mapproj/internal/logger"
	"github.com/Faultbox/mapproj/internal/mesh"
	"github.com/Faultbox/mapproj/internal/view"
)

// App is the viewer instance.
type App struct {
	cfg      *config.Config
	log      *zap.Logger
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	shots    *debug.ScreenshotCapture
	state    State
}

// New opens the window, compiles the GPU programs and uploads the meshes
// and texture.
func New(cfg *config.Config) (*App, error) {
	mode, err := cfg.ProjectionMode()
	if err != nil {
		return nil, err
	}
	drag, err := cfg.Drag()
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:   cfg,
		log:   logger.Named("app"),
		input: input.New(),
		shots: debug.NewScreenshotCapture("screenshots", "mapproj"),
	}

	a.log.Info("initializing viewer",
		zap.String("projection", mode.String()),
		zap.String("mode", cfg.View.Mode),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	// Create window (this also creates OpenGL context)
	a.window, err = window.New(window.Config{
		Title:      "mapproj",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	dw, dh := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:   dw,
		Height:  dh,
		Samples: cfg.Graphics.Samples,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	if err := a.loadData(); err != nil {
		a.Close()
		return nil, err
	}

	ww, wh := a.window.GetSize()
	a.state = State{
		View:      view.NewController(mode, drag, ww, wh),
		Textured:  cfg.View.Mode == config.ModeTexture,
		Graticule: cfg.View.Graticule,
		dirty:     true,
	}
	a.state.View.SetZoom(cfg.View.Zoom)
	if cfg.View.CenterLon != 0 || cfg.View.CenterLat != 0 {
		a.state.View.SetCenter(cfg.View.CenterLon, cfg.View.CenterLat)
	}

	a.log.Info("viewer initialized successfully")
	return a, nil
}

// loadData builds the meshes and uploads them with the texture.
func (a *App) loadData() error {
	d := a.cfg.Data

	globe, err := mesh.Globe(d.GlobeStep)
	if err != nil {
		return fmt.Errorf("globe mesh: %w", err)
	}
	a.renderer.SetGlobe(globe)

	graticule, err := mesh.Graticule(d.GraticuleStep, d.GraticuleSubsteps)
	if err != nil {
		return fmt.Errorf("graticule mesh: %w", err)
	}
	a.renderer.SetGraticule(graticule)

	coast, err := mesh.LoadCoastline(d.Coastline)
	switch {
	case err == nil:
		a.renderer.SetCoastline(coast)
		a.log.Info("coastline loaded",
			zap.String("path", d.Coastline),
			zap.Int("segments", coast.LineCount()),
		)
	case errors.Is(err, fs.ErrNotExist):
		a.log.Warn("coastline not found, vector map shows the graticule only", zap.String("path", d.Coastline))
	default:
		a.log.Warn("coastline not loaded", zap.String("path", d.Coastline), zap.Error(err))
	}

	maxSize := a.renderer.MaxTextureSize()
	if limit := a.cfg.Graphics.MaxTextureSize; limit > 0 && limit < maxSize {
		maxSize = limit
	}
	img, err := texture.Load(d.Texture, maxSize)
	if err != nil {
		return fmt.Errorf("globe texture: %w", err)
	}
	a.renderer.SetTexture(img)

	a.log.Debug("meshes uploaded",
		zap.Int("globe_triangles", globe.TriangleCount()),
		zap.Int("graticule_segments", graticule.LineCount()),
		zap.Int("max_texture_size", maxSize),
	)
	return nil
}

// Run starts the main loop.
func (a *App) Run() error {
	a.running = true

	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting main loop")

	for a.running {
		if a.input.Update() {
			a.running = false
			break
		}

		for _, event := range a.input.Events() {
			if event.Type == input.EventWindowResize {
				a.resize()
				continue
			}
			a.state.Handle(event)
		}
		if a.state.quit {
			a.running = false
			break
		}

		a.renderer.Draw(a.state.View.Snapshot(), renderer.DrawOptions{
			Texture:   a.state.Textured,
			Graticule: a.state.Graticule,
		})

		if a.state.screenshot {
			a.state.screenshot = false
			a.screenshot()
		}

		a.window.SwapBuffers()

		if a.state.dirty {
			a.state.dirty = false
			a.window.SetTitle(a.state.Title())
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// resize resizes the GPU buffers to the drawable size and the view to the
// window size. They differ on high-DPI displays.
func (a *App) resize() {
	dw, dh := a.window.DrawableSize()
	if dw <= 0 || dh <= 0 {
		return
	}
	a.renderer.Resize(dw, dh)
	ww, wh := a.window.GetSize()
	a.state.View.Resize(ww, wh)
}

func (a *App) screenshot() {
	img, err := a.renderer.Capture()
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	path, err := a.shots.Capture(img, a.state.View.Mode().String())
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases GPU resources and the window.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.renderer != nil {
		a.renderer.Close()
		a.renderer = nil
	}
	if a.window != nil {
		a.window.Close()
		a.window = nil
	}
}
