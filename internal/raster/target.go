package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/mapproj/internal/projection"
)

// Samples is the sample count of the multisample target.
const Samples = 8

// samplePattern8 is the standard 8x MSAA sample layout in 1/16 pixel units
// relative to the pixel center.
var samplePattern8 = [Samples][2]float64{
	{1, -3}, {-1, 3}, {5, 1}, {-3, -5},
	{-5, 5}, {-7, -1}, {3, 7}, {7, -7},
}

// Target is a multisample color buffer. Each pixel stores N samples that are
// averaged by Resolve.
type Target struct {
	width, height int
	samples       int
	offsets       [][2]float64
	color         []color.RGBA
}

// NewTarget creates a target with samples per pixel. Only 1 and 8 are
// supported; any other count is treated as 8.
func NewTarget(width, height, samples int) *Target {
	t := &Target{
		width:  max(width, 1),
		height: max(height, 1),
	}
	if samples == 1 {
		t.samples = 1
		t.offsets = [][2]float64{{0, 0}}
	} else {
		t.samples = Samples
		t.offsets = make([][2]float64, Samples)
		for i, o := range samplePattern8 {
			t.offsets[i] = [2]float64{o[0] / 16, o[1] / 16}
		}
	}
	t.color = make([]color.RGBA, t.width*t.height*t.samples)
	return t
}

// Size returns the target dimensions in pixels.
func (t *Target) Size() (int, int) { return t.width, t.height }

// SampleCount returns the number of samples per pixel.
func (t *Target) SampleCount() int { return t.samples }

// Clear sets every sample to c.
func (t *Target) Clear(c color.RGBA) {
	for i := range t.color {
		t.color[i] = c
	}
}

// PixelSamples returns the samples of pixel (x, y).
func (t *Target) PixelSamples(x, y int) []color.RGBA {
	i := (y*t.width + x) * t.samples
	return t.color[i : i+t.samples]
}

// toScreen maps a clip position to pixel space (origin top-left) and NDC depth.
func (t *Target) toScreen(clip mgl64.Vec4) (x, y, z float64) {
	w := clip.W()
	if w == 0 {
		w = 1
	}
	nx, ny, nz := clip.X()/w, clip.Y()/w, clip.Z()/w
	return (nx + 1) / 2 * float64(t.width), (1 - ny) / 2 * float64(t.height), nz
}

// DrawTriangle rasterizes a projected triangle, shading once per pixel at
// the pixel center through tex and writing the covered samples. Samples whose
// interpolated depth falls outside [-1, 1] are clipped.
func (t *Target) DrawTriangle(v [3]projection.ProjectedVertex, tex *Sampler) {
	var sx, sy, sz [3]float64
	for i := range v {
		sx[i], sy[i], sz[i] = t.toScreen(v[i].Clip)
	}

	area := edge(sx[0], sy[0], sx[1], sy[1], sx[2], sy[2])
	if area == 0 || math.IsNaN(area) {
		return
	}

	minX := max(0, int(math.Floor(min(sx[0], sx[1], sx[2]))))
	maxX := min(t.width-1, int(math.Ceil(max(sx[0], sx[1], sx[2]))))
	minY := max(0, int(math.Floor(min(sy[0], sy[1], sy[2]))))
	maxY := min(t.height-1, int(math.Ceil(max(sy[0], sy[1], sy[2]))))

	bary := func(px, py float64) (w0, w1, w2 float64, inside bool) {
		w0 = edge(sx[1], sy[1], sx[2], sy[2], px, py) / area
		w1 = edge(sx[2], sy[2], sx[0], sy[0], px, py) / area
		w2 = edge(sx[0], sy[0], sx[1], sy[1], px, py) / area
		return w0, w1, w2, w0 >= 0 && w1 >= 0 && w2 >= 0
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			cx, cy := float64(x)+0.5, float64(y)+0.5
			shaded := false
			var c color.RGBA

			base := (y*t.width + x) * t.samples
			for s, o := range t.offsets {
				w0, w1, w2, inside := bary(cx+o[0], cy+o[1])
				if !inside {
					continue
				}
				z := w0*sz[0] + w1*sz[1] + w2*sz[2]
				if z < -1 || z > 1 {
					continue
				}
				if !shaded {
					c0, c1, c2, _ := bary(cx, cy)
					uv := v[0].Tex.Mul(c0).Add(v[1].Tex.Mul(c1)).Add(v[2].Tex.Mul(c2))
					c = tex.Bilinear(uv)
					shaded = true
				}
				t.color[base+s] = c
			}
		}
	}
}

// Resolve averages each pixel's samples into a new image.
func (t *Target) Resolve() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.width, t.height))
	for y := range t.height {
		for x := range t.width {
			img.SetRGBA(x, y, Resolve(t.PixelSamples(x, y)))
		}
	}
	return img
}

// edge is twice the signed area of (a, b, p).
func edge(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}
