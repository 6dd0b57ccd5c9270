// Package discard decides whether projected primitives are drawn.
//
// A primitive is dropped when any of its vertices is undefined under the
// current projection, or when one of its checked edges is longer than a
// per-primitive threshold in clip space. The second rule suppresses
// primitives that straddle a projection's branch cut or singularity and
// would otherwise be stretched across the frame.
package discard

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/mapproj/internal/projection"
)

// Thresholds on clip-space edge length. Tuned empirically per primitive type.
const (
	LineThreshold     = 0.2
	TriangleThreshold = 1.0
)

// Filter is the accept/reject rule for one primitive type.
type Filter interface {
	// Arity is the number of vertices per primitive.
	Arity() int
	// Threshold is the longest accepted edge.
	Threshold() float64
	// ShouldEmit reports whether the primitive is drawn. len(vertices) must equal Arity.
	ShouldEmit(vertices []projection.ProjectedVertex) bool
}

// Line filters two-vertex primitives.
type Line struct{}

func (Line) Arity() int          { return 2 }
func (Line) Threshold() float64 { return LineThreshold }

func (Line) ShouldEmit(v []projection.ProjectedVertex) bool {
	return ShouldEmitLine([2]projection.ProjectedVertex{v[0], v[1]})
}

// Triangle filters three-vertex primitives.
type Triangle struct{}

func (Triangle) Arity() int          { return 3 }
func (Triangle) Threshold() float64 { return TriangleThreshold }

func (Triangle) ShouldEmit(v []projection.ProjectedVertex) bool {
	return ShouldEmitTriangle([3]projection.ProjectedVertex{v[0], v[1], v[2]})
}

// ShouldEmitLine reports whether a line segment is drawn.
func ShouldEmitLine(v [2]projection.ProjectedVertex) bool {
	if !v[0].Valid || !v[1].Valid {
		return false
	}
	return Distance(v[0], v[1]) <= LineThreshold
}

// ShouldEmitTriangle reports whether a triangle is drawn.
// Only the edges v0-v1 and v1-v2 are length-checked.
func ShouldEmitTriangle(v [3]projection.ProjectedVertex) bool {
	if !v[0].Valid || !v[1].Valid || !v[2].Valid {
		return false
	}
	return Distance(v[0], v[1]) <= TriangleThreshold &&
		Distance(v[1], v[2]) <= TriangleThreshold
}

// Distance is the 2D clip-space distance between two vertices.
func Distance(a, b projection.ProjectedVertex) float64 {
	return math.Hypot(a.Clip[0]-b.Clip[0], a.Clip[1]-b.Clip[1])
}

// FromClip decodes shader wire-format positions into vertices so the same
// rules can be applied to sentinel-encoded data.
func FromClip(clips ...mgl64.Vec4) []projection.ProjectedVertex {
	out := make([]projection.ProjectedVertex, len(clips))
	for i, c := range clips {
		out[i] = projection.Decode(c, mgl64.Vec2{})
	}
	return out
}
