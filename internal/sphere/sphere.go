// Package sphere maps geographic samples onto the unit sphere and rotates them.
package sphere

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/s2"
)

// GeoPoint is a longitude/latitude sample in degrees.
// Longitude is in [-180, 180], latitude in [-90, 90].
type GeoPoint struct {
	Lon float64
	Lat float64
}

// SpherePoint is a point on the unit sphere.
// Longitude 0, latitude 0 maps to (1, 0, 0); the north pole is (0, 0, 1).
type SpherePoint = mgl64.Vec3

// Sample returns the unit-sphere position of g.
func Sample(g GeoPoint) SpherePoint {
	p := s2.PointFromLatLng(s2.LatLngFromDegrees(g.Lat, g.Lon))
	return SpherePoint{p.X, p.Y, p.Z}
}

// Orient applies the globe orientation r to p.
// r is assumed to be a rotation; a non-orthonormal matrix distorts the globe.
func Orient(p SpherePoint, r mgl64.Mat3) SpherePoint {
	return r.Mul3x1(p)
}

// TexCoord returns the equirectangular texture coordinate of g.
// It depends only on the raw sample, never on orientation or projection.
func TexCoord(g GeoPoint) mgl64.Vec2 {
	return mgl64.Vec2{0.5 + g.Lon/360, 0.5 - g.Lat/180}
}

// FromSphere returns the geographic coordinates of a (not necessarily unit) vector.
func FromSphere(p mgl64.Vec3) GeoPoint {
	ll := s2.LatLngFromPoint(s2.PointFromCoords(p.X(), p.Y(), p.Z()))
	return GeoPoint{Lon: ll.Lng.Degrees(), Lat: ll.Lat.Degrees()}
}
