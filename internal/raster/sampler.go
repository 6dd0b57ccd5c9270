// Package raster is the software compositor: it rasterizes projected globe
// triangles into a multisample buffer, resolves it and draws vector lines on
// top.
package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/mapproj/internal/engine/texture"
)

// Sampler performs bilinear lookups into an equirectangular texture with
// clamp-to-edge addressing.
type Sampler struct {
	img *image.RGBA
}

// NewSampler wraps img, converting it to RGBA if needed.
func NewSampler(img image.Image) *Sampler {
	return &Sampler{img: texture.ToRGBA(img)}
}

// Size returns the texture dimensions.
func (s *Sampler) Size() (int, int) {
	return s.img.Rect.Dx(), s.img.Rect.Dy()
}

// Image returns the backing texture.
func (s *Sampler) Image() *image.RGBA { return s.img }

// Bilinear samples the texture at normalized coordinate tex.
// Texel centers sit at (i+0.5)/width; coordinates outside [0,1] clamp to the
// edge texels.
func (s *Sampler) Bilinear(tex mgl64.Vec2) color.RGBA {
	w, h := s.Size()
	if w == 0 || h == 0 {
		return color.RGBA{}
	}

	x := tex.X()*float64(w) - 0.5
	y := tex.Y()*float64(h) - 0.5
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	fx := x - x0
	fy := y - y0

	ix0, iy0 := clampInt(int(x0), w), clampInt(int(y0), h)
	ix1, iy1 := clampInt(int(x0)+1, w), clampInt(int(y0)+1, h)

	c00 := s.img.RGBAAt(ix0, iy0)
	c10 := s.img.RGBAAt(ix1, iy0)
	c01 := s.img.RGBAAt(ix0, iy1)
	c11 := s.img.RGBAAt(ix1, iy1)

	mix := func(a, b, c, d uint8) uint8 {
		top := float64(a)*(1-fx) + float64(b)*fx
		bot := float64(c)*(1-fx) + float64(d)*fx
		return uint8(math.Round(top*(1-fy) + bot*fy))
	}

	return color.RGBA{
		R: mix(c00.R, c10.R, c01.R, c11.R),
		G: mix(c00.G, c10.G, c01.G, c11.G),
		B: mix(c00.B, c10.B, c01.B, c11.B),
		A: mix(c00.A, c10.A, c01.A, c11.A),
	}
}

func clampInt(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// Resolve averages the samples of one pixel with equal weights.
func Resolve(samples []color.RGBA) color.RGBA {
	if len(samples) == 0 {
		return color.RGBA{}
	}
	var r, g, b, a int
	for _, c := range samples {
		r += int(c.R)
		g += int(c.G)
		b += int(c.B)
		a += int(c.A)
	}
	n := len(samples)
	half := n / 2
	return color.RGBA{
		R: uint8((r + half) / n),
		G: uint8((g + half) / n),
		B: uint8((b + half) / n),
		A: uint8((a + half) / n),
	}
}
