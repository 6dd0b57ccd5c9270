package projection

import (
	"math"
	"testing"

	"github.com/Faultbox/mapproj/internal/sphere"
)

func TestUnprojectInvertsProject(t *testing.T) {
	points := []sphere.GeoPoint{
		{Lon: 0, Lat: 0},
		{Lon: 30, Lat: 20},
		{Lon: -45, Lat: -60},
		{Lon: 10, Lat: 75},
		{Lon: 120, Lat: 5},
	}
	const zoom, aspect = 1.7, 1.5

	for _, m := range Modes {
		proj := For(m)
		for _, g := range points {
			p := sphere.Sample(g)
			clip, valid := proj.Project(p, zoom, aspect)
			if !valid {
				continue
			}
			if m == Orthographic && p.X() < 0 {
				continue // rear hemisphere overlaps the front on the plane
			}
			got, ok := proj.Unproject(clip[0]*aspect/zoom, clip[1]/zoom)
			if !ok {
				t.Errorf("%s: Unproject(%v) rejected a drawn point", m, g)
				continue
			}
			if got.Sub(p).Len() > 1e-9 {
				t.Errorf("%s: %v -> %v, want %v", m, g, got, p)
			}
		}
	}
}

func TestUnprojectRejects(t *testing.T) {
	tests := []struct {
		mode Mode
		x, y float64
	}{
		{Orthographic, 0.9, 0.9},
		{Gnomonic, 10, 0},
		{Azimuthal, 4, 0},
		{Azimuthal, 0, 1.5},
	}

	for _, tt := range tests {
		if _, ok := For(tt.mode).Unproject(tt.x, tt.y); ok {
			t.Errorf("%s: Unproject(%v, %v) accepted a point outside the image", tt.mode, tt.x, tt.y)
		}
	}

	// gnomonic accepts up to the angular limit
	edge := math.Tan(GnomonicMaxAngle*math.Pi/180) - 1e-6
	if _, ok := For(Gnomonic).Unproject(edge, 0); !ok {
		t.Error("gnomonic rejected a point inside the angular limit")
	}
}

func TestUnprojectStereographicFarPlane(t *testing.T) {
	p, ok := For(Stereographic).Unproject(1000, 0)
	if !ok {
		t.Fatal("far plane point rejected")
	}
	if math.Abs(p.Len()-1) > 1e-12 || p.X() > -0.99 {
		t.Errorf("far plane point = %v, want near the antipode", p)
	}
}
