package view

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/mapproj/internal/projection"
)

const eps = 1e-9

func isOrthonormal(m mgl64.Mat3) bool {
	return m.Mul3(m.Transpose()).ApproxEqualThreshold(mgl64.Ident3(), 1e-9) &&
		math.Abs(m.Det()-1) < 1e-9
}

func TestNewControllerDefaults(t *testing.T) {
	c := NewController(projection.Orthographic, Free, 1600, 800)

	f := c.Snapshot()
	if f.Mode != projection.Orthographic {
		t.Errorf("mode = %v", f.Mode)
	}
	if f.Zoom != 1 || f.AspectRatio != 2 {
		t.Errorf("zoom = %v aspect = %v", f.Zoom, f.AspectRatio)
	}
	if f.Orientation != mgl64.Ident3() {
		t.Errorf("orientation not identity: %v", f.Orientation)
	}
	if got := c.Readout(); got != "0.0° E 0.0° N" {
		t.Errorf("readout = %q", got)
	}
}

func TestZoomFloor(t *testing.T) {
	c := NewController(projection.Gnomonic, NSEW, 100, 100)

	c.ZoomBy(0.1)
	if c.Zoom() != MinZoom {
		t.Errorf("zoom = %v, want floor %v", c.Zoom(), MinZoom)
	}

	c.SetZoom(1)
	c.Wheel(2)
	if math.Abs(c.Zoom()-1.44) > eps {
		t.Errorf("wheel 2 zoom = %v, want 1.44", c.Zoom())
	}
	c.Wheel(-100)
	if c.Zoom() != MinZoom {
		t.Errorf("zoom = %v, want floor", c.Zoom())
	}
}

func TestResizeIgnoresZero(t *testing.T) {
	c := NewController(projection.Gnomonic, NSEW, 0, 0)
	if c.AspectRatio() != 1 {
		t.Errorf("aspect = %v, want 1", c.AspectRatio())
	}
	c.Resize(300, 100)
	c.Resize(0, 100)
	if c.AspectRatio() != 3 {
		t.Errorf("aspect = %v, want 3", c.AspectRatio())
	}
}

func TestFreeRotationStaysOrthonormal(t *testing.T) {
	c := NewController(projection.Orthographic, Free, 800, 600)

	c.BeginDrag(400, 300)
	for i := range 500 {
		x := 400 + 150*math.Cos(float64(i)*0.37)
		y := 300 + 120*math.Sin(float64(i)*0.53)
		c.DragTo(x, y)
	}
	c.EndDrag()

	if !isOrthonormal(c.Orientation()) {
		t.Errorf("orientation drifted: %v", c.Orientation())
	}
}

func TestFreeRotationDirection(t *testing.T) {
	c := NewController(projection.Orthographic, Free, 100, 100)
	c.Rotate(mgl64.Vec2{0, 0}, mgl64.Vec2{0.5, 0})

	// the point under the view center moves right, so the new center lies west
	if lon := c.Center().Lon; lon >= 0 {
		t.Errorf("center lon = %v, want < 0", lon)
	}
	if math.Abs(c.Center().Lon+mgl64.RadToDeg(0.5)) > 1e-6 {
		t.Errorf("center lon = %v, want %v", c.Center().Lon, -mgl64.RadToDeg(0.5))
	}
}

func TestFreeRotationZeroDrag(t *testing.T) {
	c := NewController(projection.Orthographic, Free, 100, 100)
	c.Rotate(mgl64.Vec2{0.3, 0.3}, mgl64.Vec2{0.3, 0.3})
	if c.Orientation() != mgl64.Ident3() {
		t.Error("zero-length drag changed orientation")
	}
}

func TestNSEWPitchBounded(t *testing.T) {
	c := NewController(projection.Orthographic, NSEW, 100, 100)

	for range 20 {
		c.Rotate(mgl64.Vec2{0, 1}, mgl64.Vec2{0, 0})
	}
	// dragging down brings the north into view
	if lat := c.Center().Lat; math.Abs(lat-90) > 1e-6 {
		t.Errorf("center lat = %v, want 90 (pitch clamped)", lat)
	}

	for range 40 {
		c.Rotate(mgl64.Vec2{0, 0}, mgl64.Vec2{0, 1})
	}
	if lat := c.Center().Lat; math.Abs(lat+90) > 1e-6 {
		t.Errorf("center lat = %v, want -90", lat)
	}
	if !isOrthonormal(c.Orientation()) {
		t.Error("NSEW orientation not orthonormal")
	}
}

func TestNSEWKeepsNorthUp(t *testing.T) {
	c := NewController(projection.Orthographic, NSEW, 100, 100)
	c.Rotate(mgl64.Vec2{0, 0}, mgl64.Vec2{0.7, 0.2})

	// north pole stays in the x-z plane of the view, never tilted sideways
	north := c.Orientation().Mul3x1(mgl64.Vec3{0, 0, 1})
	if math.Abs(north.Y()) > eps {
		t.Errorf("north pole rolled: %v", north)
	}
}

func TestSetDragRotationResets(t *testing.T) {
	c := NewController(projection.Orthographic, Free, 100, 100)
	c.Rotate(mgl64.Vec2{0, 0}, mgl64.Vec2{0.2, 0.4})
	if c.Orientation() == mgl64.Ident3() {
		t.Fatal("rotation had no effect")
	}

	c.ToggleDragRotation()
	if c.DragRotation() != NSEW {
		t.Fatalf("drag = %v, want nsew", c.DragRotation())
	}
	if c.Orientation() != mgl64.Ident3() {
		t.Error("switching to NSEW should reset orientation")
	}

	c.SetCenter(10, 10)
	c.ToggleDragRotation()
	if c.Orientation() == mgl64.Ident3() {
		t.Error("switching to free should keep orientation")
	}

	c.Reset()
	if c.Orientation() != mgl64.Ident3() {
		t.Error("reset should restore identity")
	}
}

func TestSetCenter(t *testing.T) {
	tests := []struct {
		lon, lat float64
		readout  string
	}{
		{30, 20, "30.0° E 20.0° N"},
		{-75.5, -33.3, "75.5° W 33.3° S"},
		{0, 90, "0.0° E 90.0° N"},
	}

	for _, tt := range tests {
		c := NewController(projection.Orthographic, NSEW, 100, 100)
		c.SetCenter(tt.lon, tt.lat)
		got := c.Center()
		if math.Abs(got.Lat-tt.lat) > 1e-6 {
			t.Errorf("SetCenter(%v, %v) lat = %v", tt.lon, tt.lat, got.Lat)
		}
		if tt.lat != 90 && math.Abs(got.Lon-tt.lon) > 1e-6 {
			t.Errorf("SetCenter(%v, %v) lon = %v", tt.lon, tt.lat, got.Lon)
		}
		if r := c.Readout(); r != tt.readout {
			t.Errorf("readout = %q, want %q", r, tt.readout)
		}
	}
}

func TestScreenToView(t *testing.T) {
	c := NewController(projection.Orthographic, NSEW, 200, 100)

	tests := []struct {
		px, py float64
		want   mgl64.Vec2
	}{
		{100, 50, mgl64.Vec2{0, 0}},
		{0, 0, mgl64.Vec2{-2, 1}},
		{200, 100, mgl64.Vec2{2, -1}},
	}
	for _, tt := range tests {
		if got := c.ScreenToView(tt.px, tt.py); !got.ApproxEqual(tt.want) {
			t.Errorf("ScreenToView(%v, %v) = %v, want %v", tt.px, tt.py, got, tt.want)
		}
	}
}

func TestDragWithoutBegin(t *testing.T) {
	c := NewController(projection.Orthographic, Free, 100, 100)
	c.DragTo(10, 10)
	if c.Orientation() != mgl64.Ident3() || c.Dragging() {
		t.Error("DragTo without BeginDrag should be ignored")
	}
}

func TestParseDragRotation(t *testing.T) {
	for _, s := range []string{"nsew", " NSEW ", "free", "Free"} {
		if _, err := ParseDragRotation(s); err != nil {
			t.Errorf("ParseDragRotation(%q): %v", s, err)
		}
	}
	if _, err := ParseDragRotation("orbit"); err == nil {
		t.Error("expected error")
	}
	if NSEW.String() != "nsew" || Free.String() != "free" {
		t.Error("unexpected names")
	}
}

func TestPick(t *testing.T) {
	c := NewController(projection.Orthographic, NSEW, 800, 800)

	g, ok := c.Pick(600, 400)
	if !ok || math.Abs(g.Lon-30) > 1e-9 || math.Abs(g.Lat) > 1e-9 {
		t.Errorf("Pick east of center = %+v %v, want 30° E", g, ok)
	}
	if _, ok := c.Pick(0, 0); ok {
		t.Error("corner outside the orthographic disc picked the globe")
	}

	c.SetCenter(30, 20)
	for _, m := range projection.Modes {
		c.SetMode(m)
		g, ok := c.Pick(400, 400)
		if !ok || math.Abs(g.Lon-30) > 1e-9 || math.Abs(g.Lat-20) > 1e-9 {
			t.Errorf("%s: Pick(center) = %+v %v, want view center", m, g, ok)
		}
	}
}
