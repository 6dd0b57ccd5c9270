package projection

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/s1"

	"github.com/Faultbox/mapproj/internal/sphere"
)

// GnomonicMaxAngle is the largest angle, in degrees, between a point and the
// tangent point that the gnomonic projection still draws. The projection
// diverges at 90°.
const GnomonicMaxAngle = 80.0

var (
	gnomonicCenter  = mgl64.Vec3{0, 0, 0}
	gnomonicTangent = mgl64.Vec3{1, 0, 0}
	gnomonicMinCos  = math.Cos((GnomonicMaxAngle * s1.Degree).Radians())
)

// GnomonicMinCos returns cos(GnomonicMaxAngle), the acceptance bound on the
// cosine between a point and the tangent point.
func GnomonicMinCos() float64 {
	return gnomonicMinCos
}

// gnomonic projects from the sphere center onto the plane tangent at (1, 0, 0).
type gnomonic struct{}

func (gnomonic) Mode() Mode { return Gnomonic }

func (gnomonic) Project(p sphere.SpherePoint, zoom, aspect float64) (mgl64.Vec4, bool) {
	t := gnomonicTangent.Sub(gnomonicCenter)
	d := p.Sub(gnomonicCenter)

	dLen := d.Len()
	if dLen == 0 {
		return Sentinel, false
	}
	if d.Dot(t)/(dLen*t.Len()) < gnomonicMinCos {
		return Sentinel, false
	}

	k := t.Dot(t) / d.Dot(t)
	q := gnomonicCenter.Add(d.Mul(k))

	// X is depth into the screen; Y and Z span the image plane.
	return clip2(q.Y(), q.Z(), zoom, aspect), true
}
