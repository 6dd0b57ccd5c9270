package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/Faultbox/mapproj/internal/projection"
	"github.com/Faultbox/mapproj/internal/sphere"
	"github.com/Faultbox/mapproj/internal/view"
)

func cmdSample(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("sample", flag.ContinueOnError)
	fs.SetOutput(out)
	proj := fs.String("projection", "", "Only this projection")
	lon := fs.Float64("center-lon", 0, "Longitude at the view center, degrees")
	lat := fs.Float64("center-lat", 0, "Latitude at the view center, degrees")
	zoom := fs.Float64("zoom", 1, "Zoom factor")
	aspect := fs.Float64("aspect", 1, "Width/height ratio")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 2 {
		return fmt.Errorf("usage: projrender sample [options] <lon> <lat>")
	}
	pLon, err := strconv.ParseFloat(fs.Arg(0), 64)
	if err != nil {
		return fmt.Errorf("longitude: %w", err)
	}
	pLat, err := strconv.ParseFloat(fs.Arg(1), 64)
	if err != nil {
		return fmt.Errorf("latitude: %w", err)
	}
	if *aspect <= 0 {
		return fmt.Errorf("aspect must be positive")
	}

	modes := projection.Modes
	if *proj != "" {
		m, err := projection.ParseMode(*proj)
		if err != nil {
			return err
		}
		modes = []projection.Mode{m}
	}

	c := view.NewController(projection.Orthographic, view.NSEW, 1, 1)
	c.SetZoom(*zoom)
	c.SetCenter(*lon, *lat)
	f := c.Snapshot()
	f.AspectRatio = *aspect

	g := sphere.GeoPoint{Lon: pLon, Lat: pLat}
	fmt.Fprintf(out, "point %s, view center %s\n", view.FormatGeo(g), c.Readout())
	for _, m := range modes {
		v := projection.ProjectVertex(projection.For(m), f, g)
		if !v.Valid {
			fmt.Fprintf(out, "%-14s invalid\n", m)
			continue
		}
		fmt.Fprintf(out, "%-14s x=%+.6f y=%+.6f z=%+.6f w=%.1f\n", m,
			unsigned(v.Clip[0]), unsigned(v.Clip[1]), unsigned(v.Clip[2]), v.Clip[3])
	}
	return nil
}

// unsigned maps negative zero to zero so it prints as +0.
func unsigned(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}
