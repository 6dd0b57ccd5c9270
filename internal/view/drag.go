package view

import (
	"fmt"
	"strings"
)

// DragRotation selects how mouse drags rotate the globe.
type DragRotation int

const (
	// NSEW keeps the poles upright: horizontal drags spin around the polar
	// axis, vertical drags tilt north/south up to the poles.
	NSEW DragRotation = iota
	// Free rotates around the axis perpendicular to the drag direction.
	Free
)

func (d DragRotation) String() string {
	switch d {
	case NSEW:
		return "nsew"
	case Free:
		return "free"
	default:
		return fmt.Sprintf("DragRotation(%d)", int(d))
	}
}

// ParseDragRotation parses "nsew" or "free" (case-insensitive).
func ParseDragRotation(s string) (DragRotation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nsew":
		return NSEW, nil
	case "free":
		return Free, nil
	default:
		return NSEW, fmt.Errorf("unknown drag rotation %q (want nsew or free)", s)
	}
}
