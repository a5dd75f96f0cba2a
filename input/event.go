// Package input maintains an always-current snapshot of keyboard and
// mouse physical state by consuming the OS's raw, system-wide input
// event stream, and answers point-in-time queries against that
// snapshot. Queries are gated by window-focus scope so input meant for
// other applications is not observed as directed at the target.
package input

// KeyCode is a virtual-key code identifying a physical key. The code
// space is bounded (one byte), so key state lives in a fixed table
// rather than a dynamic map.
type KeyCode uint16

// keyTableSize covers the whole virtual-key code space.
const keyTableSize = 256

// Button identifies a mouse button. WheelUp and WheelDown are synthetic
// pseudo-buttons: a wheel produces discrete ticks, not a sustained
// press, so their "held" state is a decaying pulse (see WheelPulseWindow).
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
	ButtonX1
	ButtonX2
	WheelUp
	WheelDown

	buttonCount
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	case ButtonX1:
		return "x1"
	case ButtonX2:
		return "x2"
	case WheelUp:
		return "wheel-up"
	case WheelDown:
		return "wheel-down"
	}
	return "unknown"
}

// EventKind classifies a raw hardware event.
type EventKind int

const (
	KeyDown EventKind = iota
	KeyUp
	ButtonDown
	ButtonUp
	Wheel
	Move
)

// RawEvent is one raw hardware event as delivered by the OS hook. The
// OS backend translates its native payloads into this form and hands
// them to Tracker.Apply; that registration is the only dynamic-dispatch
// boundary in the package.
type RawEvent struct {
	Kind EventKind

	// Key is set for KeyDown/KeyUp.
	Key KeyCode

	// Button is set for ButtonDown/ButtonUp. Extended (side) buttons
	// are disambiguated by the backend from the event payload.
	Button Button

	// WheelDelta is set for Wheel: positive pulses up, negative down.
	WheelDelta int16

	// X, Y are set for Move: absolute screen coordinates.
	X, Y int32
}
