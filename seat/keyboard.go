package seat

import (
	"slices"

	"deedles.dev/wlseat/keyboard"
)

type keyboardState struct {
	surface Surface
	client  Client
	grab    KeyboardGrab
}

// KeyboardFocus returns the surface with keyboard focus, or nil.
func (s *Seat) KeyboardFocus() Surface {
	return s.kb.surface
}

// KeyboardEnter sends a keyboard enter event to surface and considers
// it to be the focused surface for the keyboard. The previously
// focused surface is sent a leave event first. keycodes is the
// complete set of keys currently held down and mods the current
// modifier state, which is sent to the new surface right after the
// enter event.
//
// KeyboardEnter ignores grabs; compositors should use
// KeyboardNotifyEnter to respect them.
func (s *Seat) KeyboardEnter(surface Surface, keycodes []uint32, mods keyboard.Modifiers) {
	if s.kb.surface == surface {
		return
	}

	prev, prevClient := s.kb.surface, s.kb.client
	client := s.clientFor(surface)

	if prevClient != nil {
		if k := prevClient.Keyboard(); k != nil {
			k.Leave(s.display.NextSerial(), prev)
		}
	}

	s.kb.surface = surface
	s.kb.client = client

	if client != nil {
		if k := client.Keyboard(); k != nil {
			k.Enter(s.display.NextSerial(), surface, slices.Clone(keycodes))
			s.KeyboardSendModifiers(mods)
		}
	}
}

// KeyboardClearFocus sends a leave event to the focused surface, if
// any, and clears the keyboard focus.
func (s *Seat) KeyboardClearFocus() {
	s.KeyboardEnter(nil, nil, keyboard.Modifiers{})
}

// KeyboardSendKey sends a key event to the surface with keyboard
// focus.
//
// Compositors should use KeyboardNotifyKey to respect grabs.
func (s *Seat) KeyboardSendKey(time, key uint32, state keyboard.KeyState) {
	c := s.kb.client
	if c == nil {
		return
	}
	if k := c.Keyboard(); k != nil {
		k.Key(s.display.NextSerial(), time, key, state)
	}
}

// KeyboardSendModifiers sends the modifier state to the surface with
// keyboard focus.
//
// Compositors should use KeyboardNotifyModifiers to respect grabs.
func (s *Seat) KeyboardSendModifiers(mods keyboard.Modifiers) {
	c := s.kb.client
	if c == nil {
		return
	}
	if k := c.Keyboard(); k != nil {
		k.Modifiers(s.display.NextSerial(), mods)
	}
}

// KeyboardNotifyEnter requests that surface become the focused
// surface for the keyboard. Defers to any keyboard grab.
func (s *Seat) KeyboardNotifyEnter(surface Surface, keycodes []uint32, mods keyboard.Modifiers) {
	if g := s.kb.grab; g != nil {
		g.Enter(s, surface, keycodes, mods)
		return
	}
	s.KeyboardEnter(surface, keycodes, mods)
}

// KeyboardNotifyKey notifies the seat that a key changed state.
// Defers to any keyboard grab.
func (s *Seat) KeyboardNotifyKey(time, key uint32, state keyboard.KeyState) {
	if g := s.kb.grab; g != nil {
		g.Key(s, time, key, state)
		return
	}
	s.KeyboardSendKey(time, key, state)
}

// KeyboardNotifyModifiers notifies the seat that the modifier state
// changed. Defers to any keyboard grab.
func (s *Seat) KeyboardNotifyModifiers(mods keyboard.Modifiers) {
	if g := s.kb.grab; g != nil {
		g.Modifiers(s, mods)
		return
	}
	s.KeyboardSendModifiers(mods)
}

// KeyboardStartGrab starts a grab of the keyboard. If another grab is
// active, it is ended first.
func (s *Seat) KeyboardStartGrab(g KeyboardGrab) {
	if g == nil {
		return
	}
	s.KeyboardEndGrab()

	s.kb.grab = g
	s.events.keyboardGrabBegin.Emit(g)
}

// KeyboardEndGrab ends the active keyboard grab, if any.
func (s *Seat) KeyboardEndGrab() {
	g := s.kb.grab
	if g == nil {
		return
	}

	s.kb.grab = nil
	s.events.keyboardGrabEnd.Emit(g)
	g.Cancel(s)
}

// KeyboardHasGrab returns true if a keyboard grab is active.
func (s *Seat) KeyboardHasGrab() bool {
	return s.kb.grab != nil
}

// KeyboardGrab returns the active keyboard grab, or nil.
func (s *Seat) KeyboardGrab() KeyboardGrab {
	return s.kb.grab
}
