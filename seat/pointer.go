package seat

import (
	"deedles.dev/wlseat/pointer"
	"deedles.dev/wlseat/wire"
)

type pointerState struct {
	surface Surface
	client  Client
	sx, sy  float64
	grab    PointerGrab

	buttons    int
	grabSerial uint32
}

// PointerSurfaceHasFocus returns true if surface has pointer focus.
func (s *Seat) PointerSurfaceHasFocus(surface Surface) bool {
	return surface != nil && s.pointer.surface == surface
}

// PointerFocus returns the surface with pointer focus, if any, along
// with the last surface-local coordinates of the pointer.
func (s *Seat) PointerFocus() (surface Surface, sx, sy float64) {
	return s.pointer.surface, s.pointer.sx, s.pointer.sy
}

// PointerEnter sends a pointer enter event to surface and considers
// it to be the focused surface for the pointer. The previously
// focused surface is sent a leave event first. Entering the surface
// that already has focus does nothing.
//
// Coordinates are surface-local. PointerEnter ignores grabs;
// compositors should use PointerNotifyEnter to respect them.
func (s *Seat) PointerEnter(surface Surface, sx, sy float64) {
	if s.pointer.surface == surface {
		return
	}

	prev, prevClient := s.pointer.surface, s.pointer.client
	client := s.clientFor(surface)

	if prevClient != nil {
		if p := prevClient.Pointer(); p != nil {
			p.Leave(s.display.NextSerial(), prev)
		}
	}

	if client != nil {
		if p := client.Pointer(); p != nil {
			p.Enter(s.display.NextSerial(), surface, wire.FixedFloat(sx), wire.FixedFloat(sy))
		}
	}

	s.pointer.surface = surface
	s.pointer.client = client
	if surface == nil {
		sx, sy = 0, 0
	}
	s.pointer.sx, s.pointer.sy = sx, sy
}

// PointerClearFocus sends a leave event to the focused surface, if
// any, and clears the pointer focus.
func (s *Seat) PointerClearFocus() {
	s.PointerEnter(nil, 0, 0)
}

// PointerSendMotion sends a motion event to the surface with pointer
// focus. Coordinates are surface-local.
//
// Compositors should use PointerNotifyMotion to respect grabs.
func (s *Seat) PointerSendMotion(time uint32, sx, sy float64) {
	if s.pointer.surface != nil {
		s.pointer.sx, s.pointer.sy = sx, sy
	}

	c := s.pointer.client
	if c == nil {
		return
	}
	if p := c.Pointer(); p != nil {
		p.Motion(time, wire.FixedFloat(sx), wire.FixedFloat(sy))
	}
}

// PointerSendButton sends a button event to the surface with pointer
// focus and returns its serial. It returns zero if there is no
// focused client to send to.
//
// Compositors should use PointerNotifyButton to respect grabs.
func (s *Seat) PointerSendButton(time uint32, button pointer.Button, state pointer.ButtonState) uint32 {
	c := s.pointer.client
	if c == nil {
		return 0
	}
	p := c.Pointer()
	if p == nil {
		return 0
	}

	serial := s.display.NextSerial()
	p.Button(serial, time, button, state)
	return serial
}

// PointerSendAxis sends an axis event to the surface with pointer
// focus.
//
// Compositors should use PointerNotifyAxis to respect grabs.
func (s *Seat) PointerSendAxis(time uint32, axis pointer.Axis, value float64) {
	c := s.pointer.client
	if c == nil {
		return
	}
	if p := c.Pointer(); p != nil {
		p.Axis(time, axis, wire.FixedFloat(value))
	}
}

// PointerNotifyEnter requests that surface become the focused
// surface for the pointer. Defers to any pointer grab.
func (s *Seat) PointerNotifyEnter(surface Surface, sx, sy float64) {
	if g := s.pointer.grab; g != nil {
		g.Enter(s, surface, sx, sy)
		return
	}
	s.PointerEnter(surface, sx, sy)
}

// PointerNotifyMotion notifies the seat of pointer motion over the
// focused surface. Defers to any pointer grab.
func (s *Seat) PointerNotifyMotion(time uint32, sx, sy float64) {
	if g := s.pointer.grab; g != nil {
		g.Motion(s, time, sx, sy)
		return
	}
	s.PointerSendMotion(time, sx, sy)
}

// PointerNotifyButton notifies the seat that a button changed state
// and returns the serial of the resulting event, or zero if none was
// sent. Defers to any pointer grab.
//
// The serial of the first button press in a sequence is remembered
// for ValidatePointerGrabSerial.
func (s *Seat) PointerNotifyButton(time uint32, button pointer.Button, state pointer.ButtonState) uint32 {
	if state == pointer.ButtonPressed {
		s.pointer.buttons++
	} else if s.pointer.buttons > 0 {
		s.pointer.buttons--
	}

	var serial uint32
	if g := s.pointer.grab; g != nil {
		serial = g.Button(s, time, button, state)
	} else {
		serial = s.PointerSendButton(time, button, state)
	}

	if serial != 0 && s.pointer.buttons == 1 && state == pointer.ButtonPressed {
		s.pointer.grabSerial = serial
	}
	return serial
}

// PointerNotifyAxis notifies the seat of an axis event. Defers to any
// pointer grab.
func (s *Seat) PointerNotifyAxis(time uint32, axis pointer.Axis, value float64) {
	if g := s.pointer.grab; g != nil {
		g.Axis(s, time, axis, value)
		return
	}
	s.PointerSendAxis(time, axis, value)
}

// PointerButtonCount returns the number of buttons that are currently
// held down.
func (s *Seat) PointerButtonCount() int {
	return s.pointer.buttons
}

// ValidatePointerGrabSerial returns true if serial is the serial of
// the button press that started the current implicit grab and, when
// origin is not nil, origin has pointer focus. Compositors use this
// to check client requests such as interactive move and resize.
func (s *Seat) ValidatePointerGrabSerial(origin Surface, serial uint32) bool {
	if s.pointer.buttons != 1 || serial == 0 || s.pointer.grabSerial != serial {
		return false
	}
	return origin == nil || s.pointer.surface == origin
}

// PointerStartGrab starts a grab of the pointer. The grab receives
// every PointerNotify call until it ends. If another grab is active,
// it is ended first.
func (s *Seat) PointerStartGrab(g PointerGrab) {
	if g == nil {
		return
	}
	s.PointerEndGrab()

	s.pointer.grab = g
	s.events.pointerGrabBegin.Emit(g)
}

// PointerEndGrab ends the active pointer grab, if any, reverting to
// default routing. The grab's Cancel method is called after the end
// event.
func (s *Seat) PointerEndGrab() {
	g := s.pointer.grab
	if g == nil {
		return
	}

	s.pointer.grab = nil
	s.events.pointerGrabEnd.Emit(g)
	g.Cancel(s)
}

// PointerHasGrab returns true if a pointer grab is active.
func (s *Seat) PointerHasGrab() bool {
	return s.pointer.grab != nil
}

// PointerGrab returns the active pointer grab, or nil.
func (s *Seat) PointerGrab() PointerGrab {
	return s.pointer.grab
}
