// Package view owns the globe orientation, zoom and projection mode and turns
// user input into the per-frame snapshot consumed by the projection core.
package view

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/mapproj/internal/projection"
	"github.com/Faultbox/mapproj/internal/sphere"
)

// MinZoom is the smallest zoom factor the controller allows.
const MinZoom = 0.5

// WheelZoomFactor is the zoom multiplier per mouse wheel notch.
const WheelZoomFactor = 1.2

// Controller is the single writer of the view state. It is not safe for
// concurrent use; mutate it between frames and hand Snapshot to the renderer.
type Controller struct {
	orientation mgl64.Mat3
	zoom        float64
	mode        projection.Mode
	drag        DragRotation

	width, height int
	aspect        float64

	// NSEW angles in radians
	pitch, yaw float64

	dragging bool
	last     mgl64.Vec2
}

// NewController creates a controller with identity orientation.
func NewController(mode projection.Mode, drag DragRotation, width, height int) *Controller {
	c := &Controller{
		orientation: mgl64.Ident3(),
		zoom:        1,
		mode:        mode,
		drag:        drag,
	}
	c.Resize(width, height)
	return c
}

// Snapshot returns the frame uniforms for the current state.
func (c *Controller) Snapshot() projection.Frame {
	return projection.Frame{
		Orientation: c.orientation,
		Zoom:        c.zoom,
		AspectRatio: c.aspect,
		Mode:        c.mode,
	}
}

func (c *Controller) Orientation() mgl64.Mat3      { return c.orientation }
func (c *Controller) Zoom() float64                { return c.zoom }
func (c *Controller) Mode() projection.Mode        { return c.mode }
func (c *Controller) DragRotation() DragRotation   { return c.drag }
func (c *Controller) AspectRatio() float64         { return c.aspect }
func (c *Controller) Size() (width, height int)    { return c.width, c.height }
func (c *Controller) SetMode(mode projection.Mode) { c.mode = mode }

// Resize updates the viewport size. Non-positive sizes are ignored.
func (c *Controller) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		if c.aspect == 0 {
			c.aspect = 1
		}
		return
	}
	c.width, c.height = width, height
	c.aspect = float64(width) / float64(height)
}

// SetZoom sets the zoom factor, clamped to MinZoom.
func (c *Controller) SetZoom(zoom float64) {
	c.zoom = max(zoom, MinZoom)
}

// ZoomBy multiplies the zoom by factor, clamped to MinZoom.
func (c *Controller) ZoomBy(factor float64) {
	c.SetZoom(c.zoom * factor)
}

// Wheel applies notches of mouse wheel scroll.
func (c *Controller) Wheel(notches float64) {
	c.ZoomBy(math.Pow(WheelZoomFactor, notches))
}

// Reset restores identity orientation.
func (c *Controller) Reset() {
	c.orientation = mgl64.Ident3()
	c.pitch, c.yaw = 0, 0
}

// SetDragRotation switches drag mode. Entering NSEW resets the orientation
// since an arbitrary free rotation has no upright equivalent.
func (c *Controller) SetDragRotation(d DragRotation) {
	if d == c.drag {
		return
	}
	c.drag = d
	if d == NSEW {
		c.Reset()
	}
}

// ToggleDragRotation switches between NSEW and free rotation.
func (c *Controller) ToggleDragRotation() {
	if c.drag == NSEW {
		c.SetDragRotation(Free)
	} else {
		c.SetDragRotation(NSEW)
	}
}

// SetCenter orients the globe so (lon, lat) in degrees faces the viewer
// with north up.
func (c *Controller) SetCenter(lon, lat float64) {
	lat = max(-90, min(90, lat))
	c.pitch = mgl64.DegToRad(lat)
	c.yaw = -mgl64.DegToRad(lon)
	c.applyNSEW()
}

// Center returns the geographic point at the center of the view.
func (c *Controller) Center() sphere.GeoPoint {
	return sphere.FromSphere(c.orientation.Transpose().Mul3x1(mgl64.Vec3{1, 0, 0}))
}

// Readout formats the view center like "12.3° E 45.6° N".
func (c *Controller) Readout() string {
	return FormatGeo(c.Center())
}

// FormatGeo formats g with hemisphere letters.
func FormatGeo(g sphere.GeoPoint) string {
	ew, ns := "E", "N"
	lon, lat := g.Lon, g.Lat
	if lon < 0 {
		ew, lon = "W", -lon
	}
	if lat < 0 {
		ns, lat = "S", -lat
	}
	// avoid "-0.0" style artifacts from rounding tiny negatives
	if lon < 0.05 {
		ew, lon = "E", 0
	}
	if lat < 0.05 {
		ns, lat = "N", 0
	}
	return fmt.Sprintf("%.1f° %s %.1f° %s", lon, ew, lat, ns)
}

// ScreenToView converts a window pixel position to view coordinates:
// y up, the vertical extent spans [-1, 1] and x is scaled by the aspect ratio.
func (c *Controller) ScreenToView(px, py float64) mgl64.Vec2 {
	if c.width == 0 || c.height == 0 {
		return mgl64.Vec2{}
	}
	x := (2*px/float64(c.width) - 1) * c.aspect
	y := 1 - 2*py/float64(c.height)
	return mgl64.Vec2{x, y}
}

// BeginDrag starts a drag at pixel (px, py).
func (c *Controller) BeginDrag(px, py float64) {
	c.dragging = true
	c.last = c.ScreenToView(px, py)
}

// DragTo continues a drag to pixel (px, py). No-op without BeginDrag.
func (c *Controller) DragTo(px, py float64) {
	if !c.dragging {
		return
	}
	next := c.ScreenToView(px, py)
	c.Rotate(c.last, next)
	c.last = next
}

// EndDrag finishes the current drag.
func (c *Controller) EndDrag() { c.dragging = false }

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool { return c.dragging }

// Rotate applies the rotation for a drag from start to end in view coordinates.
func (c *Controller) Rotate(start, end mgl64.Vec2) {
	switch c.drag {
	case Free:
		c.rotateFree(start, end)
	default:
		c.rotateNSEW(start, end)
	}
}

func (c *Controller) rotateFree(start, end mgl64.Vec2) {
	dist := end.Sub(start).Len()
	if dist == 0 {
		return
	}
	from := mgl64.Vec3{1, start.X(), start.Y()}
	to := mgl64.Vec3{1, end.X(), end.Y()}
	axis := from.Cross(to)
	if axis.Len() == 0 {
		return
	}
	rot := mgl64.QuatRotate(dist/c.zoom, axis.Normalize()).Mat4().Mat3()
	c.orientation = orthonormalize(rot.Mul3(c.orientation))
}

func (c *Controller) rotateNSEW(start, end mgl64.Vec2) {
	c.pitch += (start.Y() - end.Y()) / c.zoom
	c.yaw += (end.X() - start.X()) / c.zoom
	c.applyNSEW()
}

func (c *Controller) applyNSEW() {
	c.pitch = max(-math.Pi/2, min(math.Pi/2, c.pitch))
	c.yaw = math.Remainder(c.yaw, 2*math.Pi)
	c.orientation = mgl64.Rotate3DY(c.pitch).Mul3(mgl64.Rotate3DZ(c.yaw))
}

// orthonormalize re-derives a rotation from m by Gram-Schmidt on its columns.
func orthonormalize(m mgl64.Mat3) mgl64.Mat3 {
	x := m.Col(0).Normalize()
	y := m.Col(1)
	y = y.Sub(x.Mul(x.Dot(y))).Normalize()
	z := x.Cross(y)
	return mgl64.Mat3FromCols(x, y, z)
}

// Pick returns the geographic point drawn at pixel (px, py) under the
// current projection, or false when the pixel shows no globe.
func (c *Controller) Pick(px, py float64) (sphere.GeoPoint, bool) {
	v := c.ScreenToView(px, py)
	p, ok := projection.For(c.mode).Unproject(v.X()/c.zoom, v.Y()/c.zoom)
	if !ok {
		return sphere.GeoPoint{}, false
	}
	return sphere.FromSphere(c.orientation.Transpose().Mul3x1(p)), true
}
