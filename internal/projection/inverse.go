package projection

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/mapproj/internal/sphere"
)

// Each Unproject takes plane coordinates with zoom and aspect already
// removed, i.e. clip.x·aspect/zoom and clip.y/zoom, and returns the oriented
// sphere point drawn there. Points the forward projection would not draw
// report false.

func (gnomonic) Unproject(x, y float64) (sphere.SpherePoint, bool) {
	p := mgl64.Vec3{1, x, y}
	n := p.Len()
	if 1/n < gnomonicMinCos {
		return sphere.SpherePoint{}, false
	}
	return p.Mul(1 / n), true
}

func (azimuthal) Unproject(x, y float64) (sphere.SpherePoint, bool) {
	if math.Abs(x) > math.Pi || math.Abs(y) > 1 {
		return sphere.SpherePoint{}, false
	}
	r := math.Sqrt(1 - y*y)
	return sphere.SpherePoint{r * math.Cos(x), r * math.Sin(x), y}, true
}

func (orthographic) Unproject(x, y float64) (sphere.SpherePoint, bool) {
	r2 := x*x + y*y
	if r2 > 1 {
		return sphere.SpherePoint{}, false
	}
	return sphere.SpherePoint{math.Sqrt(1 - r2), x, y}, true
}

func (stereographic) Unproject(x, y float64) (sphere.SpherePoint, bool) {
	s := (x*x + y*y) / 4
	p := sphere.SpherePoint{(1 - s) / (1 + s), x / (1 + s), y / (1 + s)}
	if 1+p.X() <= StereographicMinDenominator {
		return sphere.SpherePoint{}, false
	}
	return p, true
}
