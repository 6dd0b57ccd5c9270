package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"

	"github.com/Faultbox/mapproj/internal/projection"
)

// LineWidth is the width in pixels of vector map lines.
const LineWidth = 1.0

// DrawLines composites anti-aliased line segments of a single color over dst.
// Segments with an endpoint outside the depth range are skipped.
func DrawLines(dst *image.RGBA, lines [][2]projection.ProjectedVertex, c color.RGBA) {
	if len(lines) == 0 {
		return
	}
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()

	r := vector.NewRasterizer(w, h)
	toScreen := func(v projection.ProjectedVertex) (float32, float32, bool) {
		cw := v.Clip.W()
		if cw == 0 {
			cw = 1
		}
		z := v.Clip.Z() / cw
		if z < -1 || z > 1 {
			return 0, 0, false
		}
		x := (v.Clip.X()/cw + 1) / 2 * float64(w)
		y := (1 - v.Clip.Y()/cw) / 2 * float64(h)
		return float32(x), float32(y), true
	}

	drawn := 0
	for _, l := range lines {
		x0, y0, ok0 := toScreen(l[0])
		x1, y1, ok1 := toScreen(l[1])
		if !ok0 || !ok1 {
			continue
		}
		dx, dy := x1-x0, y1-y0
		length := float32(math.Hypot(float64(dx), float64(dy)))
		if length == 0 {
			continue
		}
		nx := -dy / length * LineWidth / 2
		ny := dx / length * LineWidth / 2

		r.MoveTo(x0+nx, y0+ny)
		r.LineTo(x1+nx, y1+ny)
		r.LineTo(x1-nx, y1-ny)
		r.LineTo(x0-nx, y0-ny)
		r.ClosePath()
		drawn++
	}
	if drawn == 0 {
		return
	}
	r.Draw(dst, b, image.NewUniform(c), image.Point{})
}
