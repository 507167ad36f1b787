// Package seat implements the input routing core of a compositor. A
// Seat multiplexes pointer, keyboard and touch input across client
// surfaces, tracks the focus of each capability and lets grabs
// intercept that routing.
//
// A Seat is not safe for concurrent use. All of its methods, and all
// of the grab and handler callbacks that it invokes, run on the
// goroutine that owns the display.
package seat

import (
	"deedles.dev/wlseat/internal/debug"
	"deedles.dev/wlseat/internal/set"
	"deedles.dev/wlseat/internal/signal"
)

// Display is the source of serials for a seat.
type Display interface {
	NextSerial() uint32
}

// Registry is the process-wide collection of named seats.
//
// TakeSeat removes the named seat and returns it, ReplaceSeat puts a
// previously taken seat back under its current name and AddSeat
// registers a seat unless one with the same name exists, returning
// whichever seat ends up registered.
//
// A Registry may also implement
//
//	ShuttingDown() bool
//
// in which case the seat's destroy handler is skipped while it
// returns true.
type Registry interface {
	TakeSeat(name string) (*Seat, bool)
	ReplaceSeat(s *Seat)
	AddSeat(s *Seat) *Seat
}

type Seat struct {
	display  Display
	name     string
	valid    bool
	caps     Capability
	clients  set.Set[Client]
	keyboard KeyboardDevice

	pointer  pointerState
	kb       keyboardState
	touch    touchState
	selected selectionState

	destroyed bool
	events    events
}

type events struct {
	pointerGrabBegin  signal.Signal[PointerGrab]
	pointerGrabEnd    signal.Signal[PointerGrab]
	keyboardGrabBegin signal.Signal[KeyboardGrab]
	keyboardGrabEnd   signal.Signal[KeyboardGrab]
	touchGrabBegin    signal.Signal[TouchGrab]
	touchGrabEnd      signal.Signal[TouchGrab]
	requestSetCursor  signal.Signal[*CursorRequest]
	selection         signal.Signal[DataSource]
	primarySelection  signal.Signal[DataSource]
	destroy           signal.Signal[*Seat]
}

func (ev *events) removeAll() {
	ev.pointerGrabBegin.RemoveAll()
	ev.pointerGrabEnd.RemoveAll()
	ev.keyboardGrabBegin.RemoveAll()
	ev.keyboardGrabEnd.RemoveAll()
	ev.touchGrabBegin.RemoveAll()
	ev.touchGrabEnd.RemoveAll()
	ev.requestSetCursor.RemoveAll()
	ev.selection.RemoveAll()
	ev.primarySelection.RemoveAll()
	ev.destroy.RemoveAll()
}

func newSeat(display Display, name string) *Seat {
	return &Seat{
		display: display,
		name:    name,
		valid:   true,
		clients: make(set.Set[Client]),
		touch:   touchState{points: make(map[TouchID]*TouchPoint)},
	}
}

// Create allocates a new seat, registers it with reg and connects
// handler to the seat's lifecycle events. If handler is nil, the
// events are ignored.
//
// A seat is only registered if no other seat in reg has the same
// name. Otherwise a SeatExistsError is returned.
func Create(reg Registry, display Display, name string, handler Handler) (*Seat, error) {
	if display == nil {
		return nil, ErrNoDisplay
	}
	if handler == nil {
		handler = NopHandler{}
	}

	s := newSeat(display, name)
	if got := reg.AddSeat(s); got != s {
		return nil, SeatExistsError{Name: name}
	}

	d := dispatcher{reg: reg, seat: s, handler: handler}
	d.subscribe()

	debug.Log("seat created", "name", name)
	return s, nil
}

// Name returns the name of the seat. It returns false if the seat
// was never initialized.
func (s *Seat) Name() (string, bool) {
	if s == nil || !s.valid {
		return "", false
	}
	return s.name, true
}

// SetName changes the name of the seat and sends it to every bound
// client.
//
// The registry that the seat was created with is not updated, so
// the seat can no longer be found there under either name until it
// is taken and replaced. Use a registry-level rename to keep the two
// in step.
func (s *Seat) SetName(name string) {
	s.name = name
	for c := range s.clients {
		c.Name(name)
	}
}

// Capabilities returns the capabilities that the seat currently
// advertises.
func (s *Seat) Capabilities() Capability {
	return s.caps
}

// SetCapabilities changes the advertised capabilities and sends the
// new set to every bound client.
func (s *Seat) SetCapabilities(caps Capability) {
	s.caps = caps
	for c := range s.clients {
		c.Capabilities(caps)
	}
}

// Bind adds c to the clients of the seat and sends it the current
// capabilities and name.
func (s *Seat) Bind(c Client) {
	if s.clients.Has(c) {
		return
	}

	s.clients.Add(c)
	c.Capabilities(s.caps)
	c.Name(s.name)
}

// Unbind removes c from the seat. Any focus or touch points held by
// the client are dropped without sending events to it, so a later
// enter on the same surface is delivered again.
func (s *Seat) Unbind(c Client) {
	if !s.clients.Has(c) {
		return
	}
	s.clients.Delete(c)

	if s.pointer.client == c {
		s.pointer.surface = nil
		s.pointer.client = nil
		s.pointer.sx, s.pointer.sy = 0, 0
	}
	if s.kb.client == c {
		s.kb.surface = nil
		s.kb.client = nil
	}
	for id, p := range s.touch.points {
		if p.Client == c {
			delete(s.touch.points, id)
			continue
		}
		if p.FocusClient == c {
			p.FocusClient = nil
		}
	}
}

// IsBound returns true if c is bound to the seat.
func (s *Seat) IsBound(c Client) bool {
	return s.clients.Has(c)
}

// clientFor returns the bound client that owns surface, or nil.
func (s *Seat) clientFor(surface Surface) Client {
	if surface == nil {
		return nil
	}
	c := surface.Client()
	if c == nil || !s.clients.Has(c) {
		return nil
	}
	return c
}

// SetKeyboard sets the keyboard device that is reported as the seat's
// active keyboard.
func (s *Seat) SetKeyboard(dev KeyboardDevice) {
	s.keyboard = dev
}

// Keyboard returns the active keyboard device, or nil.
func (s *Seat) Keyboard() KeyboardDevice {
	return s.keyboard
}

// SurfaceDestroyed drops every reference the seat holds to surface.
// No leave events are sent, as the surface no longer exists.
func (s *Seat) SurfaceDestroyed(surface Surface) {
	if s.pointer.surface == surface {
		s.pointer.surface = nil
		s.pointer.client = nil
	}
	if s.kb.surface == surface {
		s.kb.surface = nil
		s.kb.client = nil
	}
	for _, p := range s.touch.points {
		if p.Focus == surface {
			p.Focus = nil
			p.FocusClient = nil
		}
	}
}

// Destroyed returns true once Destroy has been called.
func (s *Seat) Destroyed() bool {
	return s.destroyed
}

// Destroy tears the seat down. The destroy event is emitted first,
// while the seat is still intact. Active grabs are then cancelled,
// focused surfaces are left and all touch points and clients are
// dropped. Calling Destroy more than once is a no-op.
//
// If Destroy is called from inside a Handler method for the same
// seat, the seat is not in its registry, so Handler.Destroy is not
// called and the seat is not put back when the method returns.
func (s *Seat) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true

	s.events.destroy.Emit(s)
	s.events.removeAll()

	if g := s.pointer.grab; g != nil {
		s.pointer.grab = nil
		g.Cancel(s)
	}
	if g := s.kb.grab; g != nil {
		s.kb.grab = nil
		g.Cancel(s)
	}
	if g := s.touch.grab; g != nil {
		s.touch.grab = nil
		g.Cancel(s)
	}

	s.PointerClearFocus()
	s.KeyboardClearFocus()
	clear(s.touch.points)

	if src := s.selected.selection; src != nil {
		s.selected.selection = nil
		src.Cancel()
	}
	if src := s.selected.primary; src != nil {
		s.selected.primary = nil
		src.Cancel()
	}

	clear(s.clients)
	debug.Log("seat destroyed", "name", s.name)
}
