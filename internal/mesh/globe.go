package mesh

import (
	"fmt"

	"github.com/Faultbox/mapproj/internal/sphere"
)

// Globe builds the textured globe surface: a lon/lat grid every step degrees
// with the poles closed by fans around a single pole vertex each.
//
// Rows run from lat -90+step to 90-step and columns from lon -180 to 180
// inclusive, so the seam column is duplicated and texture coordinates do not
// wrap.
func Globe(step float64) (*Mesh, error) {
	if !divides(180, step) {
		return nil, fmt.Errorf("globe step %g must evenly divide 180", step)
	}

	cols := int(360/step) + 1
	rows := int(180/step) - 1

	m := &Mesh{
		Vertices:  make([]sphere.GeoPoint, 0, rows*cols+2),
		Triangles: make([]uint32, 0, 6*max(rows-1, 0)*(cols-1)+6*(cols-1)),
	}

	for i := range rows {
		lat := -90 + float64(i+1)*step
		for j := range cols {
			m.Vertices = append(m.Vertices, sphere.GeoPoint{Lon: -180 + float64(j)*step, Lat: lat})
		}
	}

	at := func(i, j int) uint32 { return uint32(i*cols + j) }

	for i := range rows - 1 {
		for j := range cols - 1 {
			a, b := at(i, j), at(i, j+1)
			c, d := at(i+1, j), at(i+1, j+1)
			m.Triangles = append(m.Triangles, a, b, c, b, d, c)
		}
	}

	south := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, sphere.GeoPoint{Lon: 0, Lat: -90})
	north := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, sphere.GeoPoint{Lon: 0, Lat: 90})

	if rows > 0 {
		top := rows - 1
		for j := range cols - 1 {
			m.Triangles = append(m.Triangles, south, at(0, j), at(0, j+1))
			m.Triangles = append(m.Triangles, north, at(top, j+1), at(top, j))
		}
	}

	return m, nil
}
