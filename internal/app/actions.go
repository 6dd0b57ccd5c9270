package app

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/mapproj/internal/engine/input"
	"github.com/Faultbox/mapproj/internal/projection"
	"github.com/Faultbox/mapproj/internal/view"
)

// Action is a viewer command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionGnomonic
	ActionAzimuthal
	ActionOrthographic
	ActionStereographic
	ActionToggleMode
	ActionToggleGraticule
	ActionToggleDrag
	ActionReset
	ActionScreenshot
	ActionQuit
)

var keyBindings = map[sdl.Scancode]Action{
	sdl.SCANCODE_1:      ActionGnomonic,
	sdl.SCANCODE_2:      ActionAzimuthal,
	sdl.SCANCODE_3:      ActionOrthographic,
	sdl.SCANCODE_4:      ActionStereographic,
	sdl.SCANCODE_KP_1:   ActionGnomonic,
	sdl.SCANCODE_KP_2:   ActionAzimuthal,
	sdl.SCANCODE_KP_3:   ActionOrthographic,
	sdl.SCANCODE_KP_4:   ActionStereographic,
	sdl.SCANCODE_T:      ActionToggleMode,
	sdl.SCANCODE_G:      ActionToggleGraticule,
	sdl.SCANCODE_F:      ActionToggleDrag,
	sdl.SCANCODE_R:      ActionReset,
	sdl.SCANCODE_F12:    ActionScreenshot,
	sdl.SCANCODE_ESCAPE: ActionQuit,
}

// ActionForKey returns the action bound to a key, or ActionNone.
func ActionForKey(key sdl.Scancode) Action {
	return keyBindings[key]
}

// State is the view state the event handlers mutate between frames.
type State struct {
	View      *view.Controller
	Textured  bool
	Graticule bool

	// last pointer position in window pixels
	cursorX, cursorY float64
	hasCursor        bool

	quit       bool
	screenshot bool
	dirty      bool
}

// Apply performs a keyboard action.
func (s *State) Apply(a Action) {
	switch a {
	case ActionGnomonic:
		s.View.SetMode(projection.Gnomonic)
	case ActionAzimuthal:
		s.View.SetMode(projection.Azimuthal)
	case ActionOrthographic:
		s.View.SetMode(projection.Orthographic)
	case ActionStereographic:
		s.View.SetMode(projection.Stereographic)
	case ActionToggleMode:
		s.Textured = !s.Textured
	case ActionToggleGraticule:
		s.Graticule = !s.Graticule
	case ActionToggleDrag:
		s.View.ToggleDragRotation()
	case ActionReset:
		s.View.Reset()
	case ActionScreenshot:
		s.screenshot = true
	case ActionQuit:
		s.quit = true
	default:
		return
	}
	s.dirty = true
}

// Handle applies one input event. Resize events are handled by the caller,
// which owns the GPU buffers.
func (s *State) Handle(e input.Event) {
	switch e.Type {
	case input.EventQuit:
		s.quit = true
	case input.EventKeyDown:
		s.Apply(ActionForKey(e.Key))
	case input.EventMouseDown:
		if e.Button == sdl.BUTTON_LEFT {
			s.View.BeginDrag(float64(e.MouseX), float64(e.MouseY))
		}
	case input.EventMouseUp:
		if e.Button == sdl.BUTTON_LEFT {
			s.View.EndDrag()
		}
	case input.EventMouseMove:
		s.cursorX, s.cursorY, s.hasCursor = float64(e.MouseX), float64(e.MouseY), true
		if s.View.Dragging() {
			s.View.DragTo(s.cursorX, s.cursorY)
		}
		s.dirty = true
	case input.EventMouseWheel:
		s.View.Wheel(e.Wheel)
		s.dirty = true
	}
}

// Title is the window title for the current state: projection, view
// center and, when the pointer is over the globe, the point under it.
func (s *State) Title() string {
	title := "mapproj: " + s.View.Mode().Title() + " | " + s.View.Readout()
	if s.hasCursor {
		if g, ok := s.View.Pick(s.cursorX, s.cursorY); ok {
			title += " | cursor " + view.FormatGeo(g)
		}
	}
	return title
}

