// Package projection maps oriented unit-sphere positions to 2D clip space.
//
// Every variant receives a position already rotated by the globe orientation
// and returns a clip-space position together with a validity flag. Validity
// is carried explicitly; the sentinel vector exists only as the wire encoding
// shared with the GLSL programs (see Encode and Decode).
package projection

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/mapproj/internal/sphere"
)

// SentinelComponent is the value of every component of the invalid-vertex
// marker written by the vertex shaders.
const SentinelComponent = 1e9

// Sentinel is the clip position emitted for vertices that are undefined
// under the current projection. Geometry shaders compare against it exactly.
var Sentinel = mgl64.Vec4{SentinelComponent, SentinelComponent, SentinelComponent, SentinelComponent}

// Projection is one member of the projection family.
type Projection interface {
	Mode() Mode
	// Project maps an oriented unit-sphere position to clip space.
	// zoom and aspect (width/height) are both > 0.
	Project(p sphere.SpherePoint, zoom, aspect float64) (clip mgl64.Vec4, valid bool)
	// Unproject inverts Project on the image plane.
	Unproject(x, y float64) (p sphere.SpherePoint, ok bool)
}

// Frame is the per-frame snapshot of the uniforms driving the core.
// It is built once before a frame and read-only while the frame is processed.
type Frame struct {
	Orientation mgl64.Mat3
	Zoom        float64
	AspectRatio float64
	Mode        Mode
}

// DefaultFrame returns an identity-oriented frame for mode.
func DefaultFrame(mode Mode) Frame {
	return Frame{
		Orientation: mgl64.Ident3(),
		Zoom:        1,
		AspectRatio: 1,
		Mode:        mode,
	}
}

// ProjectedVertex is a vertex after the per-vertex pass.
type ProjectedVertex struct {
	Clip  mgl64.Vec4
	Valid bool
	Tex   mgl64.Vec2
}

// XY returns the 2D clip position.
func (v ProjectedVertex) XY() mgl64.Vec2 {
	return mgl64.Vec2{v.Clip[0], v.Clip[1]}
}

// Encode returns the clip position in the shader wire format: the sentinel
// when the vertex is invalid, the clip position otherwise.
func (v ProjectedVertex) Encode() mgl64.Vec4 {
	if !v.Valid {
		return Sentinel
	}
	return v.Clip
}

// Decode builds a vertex from a wire-format clip position.
func Decode(clip mgl64.Vec4, tex mgl64.Vec2) ProjectedVertex {
	if clip == Sentinel {
		return ProjectedVertex{Tex: tex}
	}
	return ProjectedVertex{Clip: clip, Valid: true, Tex: tex}
}

var family = [...]Projection{
	Gnomonic:      gnomonic{},
	Azimuthal:     azimuthal{},
	Orthographic:  newOrthographic(),
	Stereographic: stereographic{},
}

// For returns the projection implementing mode.
// Unknown modes fall back to orthographic.
func For(mode Mode) Projection {
	if !mode.Valid() {
		return family[Orthographic]
	}
	return family[mode]
}

// ProjectVertex runs a single geographic sample through sampling,
// orientation and projection.
func ProjectVertex(proj Projection, f Frame, g sphere.GeoPoint) ProjectedVertex {
	p := sphere.Orient(sphere.Sample(g), f.Orientation)
	clip, valid := proj.Project(p, f.Zoom, f.AspectRatio)
	if !valid {
		clip = mgl64.Vec4{}
	}
	return ProjectedVertex{Clip: clip, Valid: valid, Tex: sphere.TexCoord(g)}
}

// ProjectAll projects geos into out, which must have the same length.
// The mode is resolved once for the whole slice.
func ProjectAll(f Frame, geos []sphere.GeoPoint, out []ProjectedVertex) {
	proj := For(f.Mode)
	for i, g := range geos {
		out[i] = ProjectVertex(proj, f, g)
	}
}

func clip2(x, y, zoom, aspect float64) mgl64.Vec4 {
	return mgl64.Vec4{x * zoom / aspect, y * zoom, 0, 1}
}
