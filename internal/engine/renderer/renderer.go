// Package renderer draws the projected globe with OpenGL: a texture pass and
// flat-color line passes into a multisample buffer, then a resolve pass.
package renderer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/mapproj/internal/engine/framebuffer"
	"github.com/Faultbox/mapproj/internal/engine/shader"
	"github.com/Faultbox/mapproj/internal/engine/shaders"
	"github.com/Faultbox/mapproj/internal/logger"
	"github.com/Faultbox/mapproj/internal/mesh"
	"github.com/Faultbox/mapproj/internal/projection"
)

// Config holds renderer configuration.
type Config struct {
	Width   int
	Height  int
	Samples int
}

// Colors of the compositor passes, RGBA in [0, 1].
var (
	ClearTexture   = mgl32.Vec4{0.5, 0.5, 0.5, 1}
	ClearLines     = mgl32.Vec4{0.87, 0.87, 0.87, 1}
	CoastlineColor = mgl32.Vec4{0, 0, 0, 1}
	GraticuleColor = mgl32.Vec4{0.6, 0.6, 0.6, 1}
)

// DrawOptions selects the passes of a frame.
type DrawOptions struct {
	// Texture draws the textured globe; otherwise the coastline is drawn.
	Texture   bool
	Graticule bool
}

// program is a linked GLSL program with the frame uniform locations.
type program struct {
	id          uint32
	orientation int32
	zoom        int32
	whRatio     int32
	color       int32
	texture     int32
}

func newProgram(src shaders.Program) (*program, error) {
	id, err := shader.Compile(src)
	if err != nil {
		return nil, err
	}
	return &program{
		id:          id,
		orientation: shader.GetUniform(id, "globe_orientation"),
		zoom:        shader.GetUniform(id, "zoom"),
		whRatio:     shader.GetUniform(id, "wh_ratio"),
		color:       shader.GetUniform(id, "color"),
		texture:     shader.GetUniform(id, "globe_texture"),
	}, nil
}

func (p *program) use(f projection.Frame) {
	gl.UseProgram(p.id)
	m := mat3f(f.Orientation)
	gl.UniformMatrix3fv(p.orientation, 1, false, &m[0])
	gl.Uniform1f(p.zoom, float32(f.Zoom))
	gl.Uniform1f(p.whRatio, float32(f.AspectRatio))
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	lines     map[projection.Mode]*program
	triangles map[projection.Mode]*program
	resolve   uint32
	resolveTx int32

	draw    *framebuffer.Framebuffer
	storage *framebuffer.Framebuffer

	quadVAO, quadVBO uint32

	globe     *gpuMesh
	coastline *gpuMesh
	graticule *gpuMesh

	globeTexture uint32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	r := &Renderer{
		config:    cfg,
		lines:     make(map[projection.Mode]*program),
		triangles: make(map[projection.Mode]*program),
	}

	if err := r.compile(); err != nil {
		r.Close()
		return nil, err
	}

	var err error
	if r.draw, err = framebuffer.New(int32(cfg.Width), int32(cfg.Height), int32(cfg.Samples)); err != nil {
		r.Close()
		return nil, fmt.Errorf("draw buffer: %w", err)
	}
	if r.storage, err = framebuffer.New(int32(cfg.Width), int32(cfg.Height), 1); err != nil {
		r.Close()
		return nil, fmt.Errorf("storage buffer: %w", err)
	}

	r.createQuad()

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	logger.Debug("renderer ready",
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("samples", cfg.Samples),
	)
	return r, nil
}

func (r *Renderer) compile() error {
	params := shaders.DefaultParams(r.config.Samples)

	for _, mode := range projection.Modes {
		src, err := shaders.Lines(mode, params)
		if err != nil {
			return err
		}
		if r.lines[mode], err = newProgram(src); err != nil {
			return err
		}

		if src, err = shaders.Triangles(mode, params); err != nil {
			return err
		}
		if r.triangles[mode], err = newProgram(src); err != nil {
			return err
		}
	}

	src, err := shaders.Resolve(params)
	if err != nil {
		return err
	}
	if r.resolve, err = shader.Compile(src); err != nil {
		return err
	}
	r.resolveTx = shader.GetUniform(r.resolve, "tex")
	return nil
}

// createQuad uploads the full-screen triangle strip used by the resolve pass.
func (r *Renderer) createQuad() {
	quad := []float32{-1, -1, 1, -1, -1, 1, 1, 1}

	gl.GenVertexArrays(1, &r.quadVAO)
	gl.BindVertexArray(r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
}

// SetGlobe uploads the globe triangle mesh.
func (r *Renderer) SetGlobe(m *mesh.Mesh) {
	r.globe.destroy()
	r.globe = uploadMesh(m, gl.TRIANGLES)
}

// SetCoastline uploads the vector map lines.
func (r *Renderer) SetCoastline(m *mesh.Mesh) {
	r.coastline.destroy()
	r.coastline = uploadMesh(m, gl.LINES)
}

// SetGraticule uploads the graticule lines.
func (r *Renderer) SetGraticule(m *mesh.Mesh) {
	r.graticule.destroy()
	r.graticule = uploadMesh(m, gl.LINES)
}

// SetTexture uploads the globe texture.
func (r *Renderer) SetTexture(img *image.RGBA) {
	if r.globeTexture != 0 {
		gl.DeleteTextures(1, &r.globeTexture)
	}
	r.globeTexture = uploadTexture(img)
	logger.Debug("globe texture uploaded",
		zap.Int("width", img.Rect.Dx()),
		zap.Int("height", img.Rect.Dy()),
	)
}

// MaxTextureSize returns the largest texture side the GPU accepts.
func (r *Renderer) MaxTextureSize() int {
	return maxTextureSize()
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	r.draw.Resize(int32(width), int32(height))
	r.storage.Resize(int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Draw renders one frame and copies it to the window.
func (r *Renderer) Draw(f projection.Frame, opts DrawOptions) {
	mode := f.Mode
	if !mode.Valid() {
		mode = projection.Orthographic
	}

	r.draw.Bind()
	bg := ClearLines
	if opts.Texture {
		bg = ClearTexture
	}
	r.draw.Clear(bg[0], bg[1], bg[2], bg[3])

	if opts.Texture && r.globe != nil && r.globeTexture != 0 {
		p := r.triangles[mode]
		p.use(f)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.globeTexture)
		gl.Uniform1i(p.texture, 0)
		r.globe.draw()
	}

	lines := r.lines[mode]
	if opts.Graticule {
		lines.use(f)
		gl.Uniform4fv(lines.color, 1, &GraticuleColor[0])
		r.graticule.draw()
	}
	if !opts.Texture {
		lines.use(f)
		gl.Uniform4fv(lines.color, 1, &CoastlineColor[0])
		r.coastline.draw()
	}

	// resolve into the single-sample storage buffer
	r.storage.Bind()
	gl.UseProgram(r.resolve)
	r.draw.BindColorTexture(0)
	gl.Uniform1i(r.resolveTx, 0)
	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)

	// blit to the window
	w, h := r.storage.Size()
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, r.storage.FBO())
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.Viewport(0, 0, w, h)
	gl.BlitFramebuffer(0, 0, w, h, 0, 0, w, h, gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Capture returns the last resolved frame, top row first.
func (r *Renderer) Capture() (*image.RGBA, error) {
	pixels, err := r.storage.ReadPixels()
	if err != nil {
		return nil, err
	}
	w, h := r.storage.Size()
	return flipRows(pixels, int(w), int(h)), nil
}

// flipRows converts bottom-up RGBA rows into an image.
func flipRows(pixels []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := range height {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return img
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, p := range r.lines {
		gl.DeleteProgram(p.id)
	}
	for _, p := range r.triangles {
		gl.DeleteProgram(p.id)
	}
	if r.resolve != 0 {
		gl.DeleteProgram(r.resolve)
	}
	if r.draw != nil {
		r.draw.Destroy()
	}
	if r.storage != nil {
		r.storage.Destroy()
	}
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
		gl.DeleteBuffers(1, &r.quadVBO)
	}
	r.globe.destroy()
	r.coastline.destroy()
	r.graticule.destroy()
	if r.globeTexture != 0 {
		gl.DeleteTextures(1, &r.globeTexture)
	}
}

// mat3f narrows a double-precision matrix for upload as a uniform.
func mat3f(m mgl64.Mat3) mgl32.Mat3 {
	var out mgl32.Mat3
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}
