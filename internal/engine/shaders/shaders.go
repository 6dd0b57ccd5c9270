// Package shaders renders the GLSL programs of the viewer. The sources are
// templates filled from the Go constants of the projection core, so the GPU
// path uses the same sentinel, thresholds and camera as the CPU path.
package shaders

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/mapproj/internal/discard"
	"github.com/Faultbox/mapproj/internal/projection"
)

//go:embed glsl
var files embed.FS

// Params are the values substituted into the templates.
type Params struct {
	Sentinel                    float64
	LineThreshold               float64
	TriangleThreshold           float64
	GnomonicMinCos              float64
	StereographicMinDenominator float64
	OrthographicViewProjection  mgl64.Mat4
	Samples                     int
}

// DefaultParams returns the parameters matching the projection core with
// the given multisample count.
func DefaultParams(samples int) Params {
	return Params{
		Sentinel:                    projection.SentinelComponent,
		LineThreshold:               discard.LineThreshold,
		TriangleThreshold:           discard.TriangleThreshold,
		GnomonicMinCos:              projection.GnomonicMinCos(),
		StereographicMinDenominator: projection.StereographicMinDenominator,
		OrthographicViewProjection:  projection.OrthographicViewProjection(),
		Samples:                     max(samples, 1),
	}
}

// Program holds the stage sources of one GLSL program. Geometry is empty
// for programs without a geometry stage.
type Program struct {
	Name     string
	Vertex   string
	Geometry string
	Fragment string
}

var funcs = template.FuncMap{
	"glfloat": glfloat,
	"mat4":    glmat4,
}

// glfloat formats v as a GLSL float literal.
func glfloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// glmat4 formats m as a column-major GLSL mat4 constructor.
func glmat4(m mgl64.Mat4) string {
	parts := make([]string, len(m))
	for i, v := range m {
		parts[i] = glfloat(v)
	}
	return "mat4(" + strings.Join(parts, ", ") + ")"
}

func render(p Params, entry string, extra ...string) (string, error) {
	patterns := []string{"glsl/" + entry}
	for _, e := range extra {
		patterns = append(patterns, "glsl/"+e)
	}
	t, err := template.New(entry).Funcs(funcs).ParseFS(files, patterns...)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", entry, err)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, entry, p); err != nil {
		return "", fmt.Errorf("render %s: %w", entry, err)
	}
	return buf.String(), nil
}

// Vertex returns the projecting vertex shader for mode.
func Vertex(mode projection.Mode, p Params) (string, error) {
	if !mode.Valid() {
		return "", fmt.Errorf("no vertex shader for %v", mode)
	}
	return render(p, "globe.vert", mode.String()+".glsl")
}

// Lines returns the flat-color line program for mode.
func Lines(mode projection.Mode, p Params) (Program, error) {
	return build(mode.String()+"/lines", p,
		func() (string, error) { return Vertex(mode, p) },
		"lines.geom", "uniform_color.frag")
}

// Triangles returns the globe texturing program for mode.
func Triangles(mode projection.Mode, p Params) (Program, error) {
	return build(mode.String()+"/triangles", p,
		func() (string, error) { return Vertex(mode, p) },
		"tris.geom", "globe_texturing.frag")
}

// Resolve returns the full-screen program copying a color buffer to the
// screen. With more than one sample it averages a multisample texture.
func Resolve(p Params) (Program, error) {
	frag := "texturing.frag"
	if p.Samples > 1 {
		frag = "texturing_multisample.frag"
	}
	return build("resolve", p,
		func() (string, error) { return render(p, "pass_through.vert") },
		"", frag)
}

func build(name string, p Params, vertex func() (string, error), geom, frag string) (Program, error) {
	prog := Program{Name: name}
	var err error
	if prog.Vertex, err = vertex(); err != nil {
		return Program{}, err
	}
	if geom != "" {
		if prog.Geometry, err = render(p, geom); err != nil {
			return Program{}, err
		}
	}
	if prog.Fragment, err = render(p, frag); err != nil {
		return Program{}, err
	}
	return prog, nil
}
