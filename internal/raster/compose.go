package raster

import (
	"image"
	"image/color"

	"github.com/Faultbox/mapproj/internal/mesh"
	"github.com/Faultbox/mapproj/internal/pipeline"
	"github.com/Faultbox/mapproj/internal/projection"
)

// Compositor colors.
var (
	ClearTexture   = color.RGBA{R: 128, G: 128, B: 128, A: 255} // 0.5 gray
	ClearLines     = color.RGBA{R: 222, G: 222, B: 222, A: 255} // 0.87 gray
	CoastlineColor = color.RGBA{A: 255}
	GraticuleColor = color.RGBA{R: 153, G: 153, B: 153, A: 255} // 0.6 gray
)

// LineLayer is a line mesh drawn in a single color.
type LineLayer struct {
	Mesh  *mesh.Mesh
	Color color.RGBA
}

// Scene is everything needed to composite one frame.
type Scene struct {
	Frame projection.Frame
	Clear color.RGBA

	// Globe and Texture are drawn when both are set.
	Globe   *mesh.Mesh
	Texture *Sampler

	// Lines are drawn in order over the resolved globe.
	Lines []LineLayer
}

// Stats reports primitive counts of a rendered frame.
type Stats struct {
	Triangles          int
	DiscardedTriangles int
	Lines              int
	DiscardedLines     int
}

// Renderer composites scenes into images of a fixed size.
type Renderer struct {
	Width, Height int
	Samples       int
	Pipeline      *pipeline.Pipeline
}

// Render draws s: texture pass into the multisample target, resolve, then
// flat-color line passes.
func (r *Renderer) Render(s Scene) (*image.RGBA, Stats) {
	var stats Stats
	target := NewTarget(r.Width, r.Height, r.Samples)
	target.Clear(s.Clear)

	if s.Globe != nil && s.Texture != nil {
		res := r.Pipeline.Run(s.Frame, s.Globe)
		for i := range res.TriangleCount() {
			target.DrawTriangle(res.Triangle(i), s.Texture)
		}
		stats.Triangles += res.TriangleCount()
		stats.DiscardedTriangles += res.DiscardedTriangles
	}

	img := target.Resolve()

	for _, layer := range s.Lines {
		if layer.Mesh == nil {
			continue
		}
		res := r.Pipeline.Run(s.Frame, layer.Mesh)
		lines := make([][2]projection.ProjectedVertex, res.LineCount())
		for i := range lines {
			lines[i] = res.Line(i)
		}
		DrawLines(img, lines, layer.Color)
		stats.Lines += res.LineCount()
		stats.DiscardedLines += res.DiscardedLines
	}

	return img, stats
}
