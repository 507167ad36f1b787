package seat

import (
	"deedles.dev/wlseat/keyboard"
	"deedles.dev/wlseat/pointer"
)

// PointerGrab intercepts the pointer input of a seat while it is
// active. Each method corresponds to the PointerNotify method of the
// same name; Cancel is called when the grab ends.
//
// A grab that only needs to change some of the routing can embed
// PassthroughPointerGrab.
type PointerGrab interface {
	Enter(s *Seat, surface Surface, sx, sy float64)
	Motion(s *Seat, time uint32, sx, sy float64)
	Button(s *Seat, time uint32, button pointer.Button, state pointer.ButtonState) uint32
	Axis(s *Seat, time uint32, axis pointer.Axis, value float64)
	Cancel(s *Seat)
}

// KeyboardGrab intercepts the keyboard input of a seat while it is
// active.
type KeyboardGrab interface {
	Enter(s *Seat, surface Surface, keycodes []uint32, mods keyboard.Modifiers)
	Key(s *Seat, time, key uint32, state keyboard.KeyState)
	Modifiers(s *Seat, mods keyboard.Modifiers)
	Cancel(s *Seat)
}

// TouchGrab intercepts the touch input of a seat while it is active.
// Down returns the serial of the down event that it sent, or zero.
type TouchGrab interface {
	Down(s *Seat, surface Surface, time uint32, id TouchID, sx, sy float64) uint32
	Up(s *Seat, time uint32, id TouchID)
	Motion(s *Seat, time uint32, id TouchID, sx, sy float64)
	Cancel(s *Seat)
}

// PassthroughPointerGrab forwards everything to the seat's default
// routing.
type PassthroughPointerGrab struct{}

func (PassthroughPointerGrab) Enter(s *Seat, surface Surface, sx, sy float64) {
	s.PointerEnter(surface, sx, sy)
}

func (PassthroughPointerGrab) Motion(s *Seat, time uint32, sx, sy float64) {
	s.PointerSendMotion(time, sx, sy)
}

func (PassthroughPointerGrab) Button(s *Seat, time uint32, button pointer.Button, state pointer.ButtonState) uint32 {
	return s.PointerSendButton(time, button, state)
}

func (PassthroughPointerGrab) Axis(s *Seat, time uint32, axis pointer.Axis, value float64) {
	s.PointerSendAxis(time, axis, value)
}

func (PassthroughPointerGrab) Cancel(*Seat) {}

// PassthroughKeyboardGrab forwards everything to the seat's default
// routing.
type PassthroughKeyboardGrab struct{}

func (PassthroughKeyboardGrab) Enter(s *Seat, surface Surface, keycodes []uint32, mods keyboard.Modifiers) {
	s.KeyboardEnter(surface, keycodes, mods)
}

func (PassthroughKeyboardGrab) Key(s *Seat, time, key uint32, state keyboard.KeyState) {
	s.KeyboardSendKey(time, key, state)
}

func (PassthroughKeyboardGrab) Modifiers(s *Seat, mods keyboard.Modifiers) {
	s.KeyboardSendModifiers(mods)
}

func (PassthroughKeyboardGrab) Cancel(*Seat) {}

// PassthroughTouchGrab forwards everything to the seat's default
// routing.
type PassthroughTouchGrab struct{}

func (PassthroughTouchGrab) Down(s *Seat, surface Surface, time uint32, id TouchID, sx, sy float64) uint32 {
	return s.TouchSendDown(surface, time, id, sx, sy)
}

func (PassthroughTouchGrab) Up(s *Seat, time uint32, id TouchID) {
	s.TouchSendUp(time, id)
}

func (PassthroughTouchGrab) Motion(s *Seat, time uint32, id TouchID, sx, sy float64) {
	s.TouchSendMotion(time, id, sx, sy)
}

func (PassthroughTouchGrab) Cancel(*Seat) {}
