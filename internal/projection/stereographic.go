package projection

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/mapproj/internal/sphere"
)

// StereographicMinDenominator is the smallest 1+x accepted before a point is
// treated as the projection pole (the antipode of the view center).
const StereographicMinDenominator = 1e-6

// stereographic projects from (-1, 0, 0) onto the plane tangent at (1, 0, 0).
type stereographic struct{}

func (stereographic) Mode() Mode { return Stereographic }

func (stereographic) Project(p sphere.SpherePoint, zoom, aspect float64) (mgl64.Vec4, bool) {
	den := 1 + p.X()
	if den <= StereographicMinDenominator {
		return Sentinel, false
	}
	k := 2 / den
	return clip2(k*p.Y(), k*p.Z(), zoom, aspect), true
}
