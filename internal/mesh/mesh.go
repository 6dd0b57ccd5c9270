// Package mesh builds the geographic meshes drawn by the viewer: the globe
// surface, the graticule and coastline polylines.
package mesh

import (
	"fmt"

	"github.com/Faultbox/mapproj/internal/sphere"
)

// Mesh is an indexed set of geographic vertices.
// Lines holds index pairs, Triangles index triples.
type Mesh struct {
	Vertices  []sphere.GeoPoint
	Lines     []uint32
	Triangles []uint32
}

// LineCount returns the number of line segments.
func (m *Mesh) LineCount() int { return len(m.Lines) / 2 }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Triangles) / 3 }

// Empty reports whether the mesh has no primitives.
func (m *Mesh) Empty() bool { return len(m.Lines) == 0 && len(m.Triangles) == 0 }

// AddPolyline appends pts as a connected line strip.
// Strips with fewer than two points are ignored.
func (m *Mesh) AddPolyline(pts []sphere.GeoPoint) {
	if len(pts) < 2 {
		return
	}
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, pts...)
	for i := range len(pts) - 1 {
		m.Lines = append(m.Lines, base+uint32(i), base+uint32(i)+1)
	}
}

// Validate checks that every index refers to an existing vertex.
func (m *Mesh) Validate() error {
	if len(m.Lines)%2 != 0 {
		return fmt.Errorf("line index count %d is not a multiple of 2", len(m.Lines))
	}
	if len(m.Triangles)%3 != 0 {
		return fmt.Errorf("triangle index count %d is not a multiple of 3", len(m.Triangles))
	}
	n := uint32(len(m.Vertices))
	for _, idx := range m.Lines {
		if idx >= n {
			return fmt.Errorf("line index %d out of range (%d vertices)", idx, n)
		}
	}
	for _, idx := range m.Triangles {
		if idx >= n {
			return fmt.Errorf("triangle index %d out of range (%d vertices)", idx, n)
		}
	}
	return nil
}

// divides reports whether step evenly divides span (both in degrees).
func divides(span, step float64) bool {
	if step <= 0 || step > span {
		return false
	}
	n := span / step
	return n == float64(int(n))
}
