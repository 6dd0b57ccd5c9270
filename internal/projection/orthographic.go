package projection

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/mapproj/internal/sphere"
)

// OrthographicNear and OrthographicFar bound the depth range. The camera sits
// on the sphere surface, so the far plane passes through the globe center
// and the rear hemisphere falls outside the depth range.
const (
	OrthographicNear = 0.0
	OrthographicFar  = 1.0
)

// orthographic looks from (1, 0, 0) at the origin with +Z up.
type orthographic struct {
	viewProj mgl64.Mat4
}

func newOrthographic() orthographic {
	return orthographic{viewProj: OrthographicViewProjection()}
}

// OrthographicViewProjection returns the static camera and projection
// composition used by the orthographic mode.
func OrthographicViewProjection() mgl64.Mat4 {
	view := mgl64.LookAtV(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 1})
	proj := mgl64.Ortho(-1, 1, -1, 1, OrthographicNear, OrthographicFar)
	return proj.Mul4(view)
}

func (orthographic) Mode() Mode { return Orthographic }

func (o orthographic) Project(p sphere.SpherePoint, zoom, aspect float64) (mgl64.Vec4, bool) {
	c := o.viewProj.Mul4x1(p.Vec4(1))
	return mgl64.Vec4{c[0] * zoom / aspect, c[1] * zoom, c[2], c[3]}, true
}
