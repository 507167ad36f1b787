// Package compositor provides the process-wide registry of named
// seats.
package compositor

import (
	"fmt"

	"deedles.dev/wlseat/display"
	"deedles.dev/wlseat/internal/debug"
	"deedles.dev/wlseat/seat"
	"golang.org/x/exp/maps"
)

// UnknownSeatError is returned when an operation names a seat that is
// not registered.
type UnknownSeatError struct {
	Name string
}

func (err UnknownSeatError) Error() string {
	return fmt.Sprintf("unknown seat %q", err.Name)
}

// Compositor owns the seats of a display, keyed by name. It
// implements seat.Registry.
//
// Like the seats that it holds, a Compositor must only be used from
// the goroutine that flushes its display.
type Compositor struct {
	display *display.Display
	seats   map[string]*seat.Seat
	closing bool
}

func New(d *display.Display) *Compositor {
	return &Compositor{
		display: d,
		seats:   make(map[string]*seat.Seat),
	}
}

func (c *Compositor) Display() *display.Display {
	return c.display
}

// NewSeat creates a seat on the compositor's display and registers
// it.
func (c *Compositor) NewSeat(name string, handler seat.Handler) (*seat.Seat, error) {
	if c.display == nil {
		return nil, seat.ErrNoDisplay
	}
	return seat.Create(c, c.display, name, handler)
}

// Seat looks up the seat with the given name without removing it. A
// seat whose handler is currently running can not be found.
func (c *Compositor) Seat(name string) (*seat.Seat, bool) {
	s, ok := c.seats[name]
	return s, ok
}

// Seats returns a snapshot of the registered seats.
func (c *Compositor) Seats() map[string]*seat.Seat {
	return maps.Clone(c.seats)
}

// TakeSeat removes the named seat from the registry and returns it.
func (c *Compositor) TakeSeat(name string) (*seat.Seat, bool) {
	s, ok := c.seats[name]
	if ok {
		delete(c.seats, name)
	}
	return s, ok
}

// ReplaceSeat registers s under its current name, replacing whatever
// was there. Seats that have been destroyed are not registered again.
func (c *Compositor) ReplaceSeat(s *seat.Seat) {
	name, ok := s.Name()
	if !ok || s.Destroyed() {
		return
	}
	c.seats[name] = s
}

// AddSeat registers s unless a seat with the same name already
// exists. It returns the seat that is registered under the name.
func (c *Compositor) AddSeat(s *seat.Seat) *seat.Seat {
	name, ok := s.Name()
	if !ok {
		return nil
	}
	if existing, ok := c.seats[name]; ok {
		return existing
	}
	c.seats[name] = s
	return s
}

// RenameSeat changes the name of a seat and its registry key
// together.
func (c *Compositor) RenameSeat(from, to string) error {
	s, ok := c.seats[from]
	if !ok {
		return UnknownSeatError{Name: from}
	}
	if from == to {
		return nil
	}
	if _, ok := c.seats[to]; ok {
		return seat.SeatExistsError{Name: to}
	}

	delete(c.seats, from)
	s.SetName(to)
	c.seats[to] = s
	return nil
}

// DestroySeat destroys the named seat and removes it from the
// registry. The seat's destroy handler runs before it is removed. It
// returns false if there is no such seat.
func (c *Compositor) DestroySeat(name string) bool {
	s, ok := c.seats[name]
	if !ok {
		return false
	}

	s.Destroy()
	delete(c.seats, name)
	return true
}

// ShuttingDown returns true while the compositor is closing.
func (c *Compositor) ShuttingDown() bool {
	return c.closing
}

// Close destroys every seat, without running their destroy handlers,
// and closes the display.
func (c *Compositor) Close() error {
	if c.closing {
		return nil
	}
	c.closing = true

	for name, s := range c.seats {
		debug.Log("destroying seat on shutdown", "name", name)
		s.Destroy()
	}
	clear(c.seats)

	if c.display == nil {
		return nil
	}
	if err := c.display.Close(); err != nil {
		return fmt.Errorf("close display: %w", err)
	}
	return nil
}
