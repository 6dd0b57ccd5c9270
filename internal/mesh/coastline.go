package mesh

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/Faultbox/mapproj/internal/sphere"
)

// LoadCoastline reads vector map lines from an ESRI Shapefile (.shp) or a
// GeoJSON document (.geojson, .json). Coordinates are longitude/latitude in
// degrees. Polygon rings are drawn as closed line strips.
func LoadCoastline(path string) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".shp":
		return loadShapefile(path)
	case ".geojson", ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read coastline: %w", err)
		}
		return ParseGeoJSON(data)
	default:
		return nil, fmt.Errorf("unsupported coastline format: %s", path)
	}
}

func loadShapefile(path string) (*Mesh, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open shapefile: %w", err)
	}
	defer r.Close()

	m := &Mesh{}
	for r.Next() {
		_, shape := r.Shape()
		switch s := shape.(type) {
		case *shp.PolyLine:
			addShpParts(m, s.Parts, s.Points)
		case *shp.Polygon:
			addShpParts(m, s.Parts, s.Points)
		}
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("read shapefile: %w", err)
	}
	return m, nil
}

func addShpParts(m *Mesh, parts []int32, points []shp.Point) {
	for i, start := range parts {
		end := int32(len(points))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if start < 0 || end > int32(len(points)) || start >= end {
			continue
		}
		pts := make([]sphere.GeoPoint, 0, end-start)
		for _, p := range points[start:end] {
			pts = append(pts, sphere.GeoPoint{Lon: p.X, Lat: p.Y})
		}
		m.AddPolyline(pts)
	}
}

// ParseGeoJSON extracts line strips from a FeatureCollection, a single
// Feature or a bare geometry. Point geometries are ignored.
func ParseGeoJSON(data []byte) (*Mesh, error) {
	m := &Mesh{}

	if fc, err := geojson.UnmarshalFeatureCollection(data); err == nil {
		for _, f := range fc.Features {
			addGeometry(m, f.Geometry)
		}
		return m, nil
	}

	if f, err := geojson.UnmarshalFeature(data); err == nil && f.Geometry != nil {
		addGeometry(m, f.Geometry)
		return m, nil
	}

	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return nil, fmt.Errorf("parse geojson: %w", err)
	}
	addGeometry(m, g.Geometry())
	return m, nil
}

func addGeometry(m *Mesh, g orb.Geometry) {
	switch g := g.(type) {
	case orb.LineString:
		m.AddPolyline(toGeo(g))
	case orb.MultiLineString:
		for _, ls := range g {
			m.AddPolyline(toGeo(ls))
		}
	case orb.Ring:
		m.AddPolyline(toGeo(g))
	case orb.Polygon:
		for _, ring := range g {
			m.AddPolyline(toGeo(ring))
		}
	case orb.MultiPolygon:
		for _, poly := range g {
			for _, ring := range poly {
				m.AddPolyline(toGeo(ring))
			}
		}
	case orb.Collection:
		for _, sub := range g {
			addGeometry(m, sub)
		}
	}
}

func toGeo(pts []orb.Point) []sphere.GeoPoint {
	out := make([]sphere.GeoPoint, len(pts))
	for i, p := range pts {
		out[i] = sphere.GeoPoint{Lon: p.Lon(), Lat: p.Lat()}
	}
	return out
}
