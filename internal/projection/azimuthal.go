package projection

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/mapproj/internal/sphere"
)

// azimuthal unrolls the longitude around the Z axis of the oriented frame.
// The cut at x <= 0 is not marked here; the discard filter removes
// primitives stretched across it.
type azimuthal struct{}

func (azimuthal) Mode() Mode { return Azimuthal }

func (azimuthal) Project(p sphere.SpherePoint, zoom, aspect float64) (mgl64.Vec4, bool) {
	return clip2(AzimuthalAngle(p), p.Z(), zoom, aspect), true
}

// AzimuthalAngle returns the angle around the Z axis used as the horizontal
// coordinate, in (-π, π]. The poles (r = 0) map to 0.
func AzimuthalAngle(p sphere.SpherePoint) float64 {
	x, y := p.X(), p.Y()
	r := math.Sqrt(x*x + y*y)
	if r == 0 {
		return 0
	}

	a := math.Asin(clampUnit(y / r))
	if x > 0 {
		return a
	}
	sign := 1.0
	if y < 0 {
		sign = -1
	}
	return sign*math.Pi - a
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
