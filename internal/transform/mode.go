package transform

import "fmt"

// Mode selects which transform channel encodes segment state and whether
// targets are interpreted in local or world space.
type Mode string

const (
	LocalRotation  Mode = "local_rotation"
	GlobalRotation Mode = "global_rotation"
	LocalLocation  Mode = "local_location"
	GlobalLocation Mode = "global_location"
	Scale          Mode = "scale"
)

// ParseMode maps a configuration string to a Mode.
func ParseMode(value string) (Mode, error) {
	switch Mode(value) {
	case LocalRotation, GlobalRotation, LocalLocation, GlobalLocation, Scale:
		return Mode(value), nil
	default:
		return "", fmt.Errorf("transform: unknown mode %q", value)
	}
}

// DataPath returns the animation channel the mode writes to.
func (m Mode) DataPath() string {
	switch m {
	case LocalRotation, GlobalRotation:
		return "rotation_euler"
	case LocalLocation, GlobalLocation:
		return "location"
	case Scale:
		return "scale"
	default:
		return ""
	}
}

// IsRotation reports whether the mode drives the Euler rotation channel.
// Rotation writes force the object's rotation order to XYZ first.
func (m Mode) IsRotation() bool {
	return m == LocalRotation || m == GlobalRotation
}

// IsGlobal reports whether targets are expressed in world space and need
// conversion through the parent transform before writing.
func (m Mode) IsGlobal() bool {
	return m == GlobalRotation || m == GlobalLocation
}

// Label returns the human-readable mode name used in tables and logs.
func (m Mode) Label() string {
	switch m {
	case LocalRotation:
		return "Local Rotation"
	case GlobalRotation:
		return "Global Rotation"
	case LocalLocation:
		return "Local Location"
	case GlobalLocation:
		return "Global Location"
	case Scale:
		return "Scale"
	default:
		return "Unknown"
	}
}

// AllModes returns the five modes in configuration order.
func AllModes() []Mode {
	return []Mode{LocalRotation, GlobalRotation, LocalLocation, GlobalLocation, Scale}
}
