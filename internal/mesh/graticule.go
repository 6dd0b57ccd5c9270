package mesh

import (
	"fmt"

	"github.com/Faultbox/mapproj/internal/sphere"
)

// Graticule builds meridians and parallels every step degrees, each split
// into substeps segments per step so they bend under curved projections.
//
// Meridians run pole to pole at lon -180, -180+step, ... (180 is the same
// meridian as -180). Parallels run around the globe at every latitude
// strictly between the poles.
func Graticule(step float64, substeps int) (*Mesh, error) {
	if !divides(180, step) {
		return nil, fmt.Errorf("graticule step %g must evenly divide 180", step)
	}
	if substeps < 1 {
		return nil, fmt.Errorf("graticule substeps must be >= 1, got %d", substeps)
	}

	sub := step / float64(substeps)
	meridianSegs := int(180/step) * substeps
	parallelSegs := int(360/step) * substeps

	m := &Mesh{}
	pts := make([]sphere.GeoPoint, 0, parallelSegs+1)

	for j := range int(360 / step) {
		lon := -180 + float64(j)*step
		pts = pts[:0]
		for k := range meridianSegs + 1 {
			pts = append(pts, sphere.GeoPoint{Lon: lon, Lat: -90 + float64(k)*sub})
		}
		m.AddPolyline(pts)
	}

	for i := 1; i < int(180/step); i++ {
		lat := -90 + float64(i)*step
		pts = pts[:0]
		for k := range parallelSegs + 1 {
			pts = append(pts, sphere.GeoPoint{Lon: -180 + float64(k)*sub, Lat: lat})
		}
		m.AddPolyline(pts)
	}

	return m, nil
}
