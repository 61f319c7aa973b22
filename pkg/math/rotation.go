package math

import "fmt"

// RotationMode selects which axis rotations are composed into an object's
// model matrix. There are three single-axis, three double-axis and one
// triple-axis mode; the set is intentionally uneven and cycled in order.
type RotationMode uint8

const (
	RotateModeY   RotationMode = iota // Y only
	RotateModeX                       // X only
	RotateModeZ                       // Z only
	RotateModeXY                      // X then Y
	RotateModeZY                      // Z then Y
	RotateModeZX                      // Z then X
	RotateModeYXZ                     // Y then X then Z

	rotationModeCount = 7
)

// Next returns the following mode, wrapping from RotateModeYXZ to RotateModeY.
func (m RotationMode) Next() RotationMode {
	return (m + 1) % rotationModeCount
}

// Valid reports whether m is one of the seven defined modes.
func (m RotationMode) Valid() bool {
	return m < rotationModeCount
}

// Axes returns the rotation axes in application order.
func (m RotationMode) Axes() []Axis {
	switch m {
	case RotateModeY:
		return []Axis{AxisY}
	case RotateModeX:
		return []Axis{AxisX}
	case RotateModeZ:
		return []Axis{AxisZ}
	case RotateModeXY:
		return []Axis{AxisX, AxisY}
	case RotateModeZY:
		return []Axis{AxisZ, AxisY}
	case RotateModeZX:
		return []Axis{AxisZ, AxisX}
	case RotateModeYXZ:
		return []Axis{AxisY, AxisX, AxisZ}
	default:
		return nil
	}
}

// String returns the axis sequence, e.g. "YXZ".
func (m RotationMode) String() string {
	axes := m.Axes()
	if axes == nil {
		return fmt.Sprintf("Unknown(%d)", uint8(m))
	}
	s := make([]byte, len(axes))
	for i, a := range axes {
		s[i] = a.String()[0]
	}
	return string(s)
}

// Axis is a principal rotation axis.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns "X", "Y" or "Z".
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return fmt.Sprintf("Axis(%d)", uint8(a))
	}
}

// ParseRotationMode returns the mode whose String form is name.
func ParseRotationMode(name string) (RotationMode, bool) {
	for m := RotateModeY; m.Valid(); m++ {
		if m.String() == name {
			return m, true
		}
	}
	return 0, false
}
