package projection

import (
	"fmt"
	"strings"
)

// Mode selects the projection applied to the oriented globe.
type Mode int

const (
	Gnomonic Mode = iota
	Azimuthal
	Orthographic
	Stereographic
)

// Modes lists every mode in selector order.
var Modes = []Mode{Gnomonic, Azimuthal, Orthographic, Stereographic}

var modeNames = [...]string{
	Gnomonic:      "gnomonic",
	Azimuthal:     "azimuthal",
	Orthographic:  "orthographic",
	Stereographic: "stereographic",
}

// String returns the lowercase mode name.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// Title returns the mode name for display.
func (m Mode) Title() string {
	s := m.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m >= 0 && int(m) < len(modeNames)
}

// ParseMode parses a mode name (case-insensitive).
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown projection %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid projection mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
