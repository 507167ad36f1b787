// Package pointer contains the values carried by pointer input.
package pointer

// Button indicates a mouse button.
type Button uint32

// These values were pulled from linux/input-event-codes.h.
const (
	ButtonLeft Button = 0x110 + iota
	ButtonRight
	ButtonMiddle
	ButtonSide
	ButtonExtra
	ButtonForward
	ButtonBack
	ButtonTask
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	case ButtonSide:
		return "side"
	case ButtonExtra:
		return "extra"
	case ButtonForward:
		return "forward"
	case ButtonBack:
		return "back"
	case ButtonTask:
		return "task"
	}

	return "unknown"
}

// ParseButton returns the Button with the given name, as returned by
// Button.String.
func ParseButton(name string) (Button, bool) {
	for b := ButtonLeft; b <= ButtonTask; b++ {
		if b.String() == name {
			return b, true
		}
	}
	return 0, false
}

// ButtonState is the physical state of a button.
type ButtonState uint32

const (
	ButtonReleased ButtonState = iota
	ButtonPressed
)

func (s ButtonState) String() string {
	switch s {
	case ButtonReleased:
		return "released"
	case ButtonPressed:
		return "pressed"
	}

	return "unknown"
}

// Axis is a scroll axis.
type Axis uint32

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

func (a Axis) String() string {
	switch a {
	case AxisVertical:
		return "vertical"
	case AxisHorizontal:
		return "horizontal"
	}

	return "unknown"
}
