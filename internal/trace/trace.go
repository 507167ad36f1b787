// Package trace provides seat clients and surfaces that record every
// event they receive. It is used to observe what a seat sends to
// clients.
package trace

import (
	"fmt"
	"strings"

	"deedles.dev/wlseat/seat"
)

// Event is a single event received by a client object.
type Event struct {
	// Target is the name of the surface that the event is for, or of
	// the client if the event isn't for a surface.
	Target string
	Kind   string
	Serial uint32
	Time   uint32
	X, Y   float64
	Detail string
}

func (ev Event) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%v %v", ev.Target, ev.Kind)
	if ev.Serial != 0 {
		fmt.Fprintf(&sb, " serial=%v", ev.Serial)
	}
	if ev.Time != 0 {
		fmt.Fprintf(&sb, " time=%v", ev.Time)
	}
	if ev.X != 0 || ev.Y != 0 {
		fmt.Fprintf(&sb, " x=%v y=%v", ev.X, ev.Y)
	}
	if ev.Detail != "" {
		fmt.Fprintf(&sb, " %v", ev.Detail)
	}
	return sb.String()
}

// Log is an ordered record of events shared by any number of
// clients.
type Log struct {
	events []Event
}

// Record appends ev to the log.
func (log *Log) Record(ev Event) {
	log.events = append(log.events, ev)
}

// Events returns every event recorded so far.
func (log *Log) Events() []Event {
	return log.events
}

// Kinds returns the kinds of the events recorded for target, in
// order.
func (log *Log) Kinds(target string) []string {
	var kinds []string
	for _, ev := range log.events {
		if ev.Target == target {
			kinds = append(kinds, ev.Kind)
		}
	}
	return kinds
}

// Filter returns the events whose kind starts with prefix.
func (log *Log) Filter(prefix string) []Event {
	var r []Event
	for _, ev := range log.events {
		if strings.HasPrefix(ev.Kind, prefix) {
			r = append(r, ev)
		}
	}
	return r
}

// Reset discards all recorded events.
func (log *Log) Reset() {
	log.events = nil
}

// Client is a recording seat.Client. The device objects that it
// exposes are decided when it is created.
type Client struct {
	name     string
	log      *Log
	pointer  *Pointer
	keyboard *Keyboard
	touch    *Touch

	seatCaps seat.Capability
	seatName string
}

// NewClient returns a client that has created device objects for
// every capability in devices.
func NewClient(log *Log, name string, devices seat.Capability) *Client {
	c := Client{
		name: name,
		log:  log,
	}
	if devices.Has(seat.CapPointer) {
		c.pointer = &Pointer{client: &c}
	}
	if devices.Has(seat.CapKeyboard) {
		c.keyboard = &Keyboard{client: &c}
	}
	if devices.Has(seat.CapTouch) {
		c.touch = &Touch{client: &c, points: make(map[seat.TouchID]string)}
	}
	return &c
}

func (c *Client) String() string {
	return c.name
}

// NewSurface creates a surface owned by c.
func (c *Client) NewSurface(name string) *Surface {
	return &Surface{name: name, client: c}
}

// SeatCapabilities returns the capabilities most recently advertised
// to the client.
func (c *Client) SeatCapabilities() seat.Capability {
	return c.seatCaps
}

// SeatName returns the seat name most recently advertised to the
// client.
func (c *Client) SeatName() string {
	return c.seatName
}

func (c *Client) Capabilities(caps seat.Capability) {
	c.seatCaps = caps
	c.log.Record(Event{Target: c.name, Kind: "seat.capabilities", Detail: caps.String()})
}

func (c *Client) Name(name string) {
	c.seatName = name
	c.log.Record(Event{Target: c.name, Kind: "seat.name", Detail: name})
}

func (c *Client) Pointer() seat.PointerObject {
	if c.pointer == nil {
		return nil
	}
	return c.pointer
}

func (c *Client) Keyboard() seat.KeyboardObject {
	if c.keyboard == nil {
		return nil
	}
	return c.keyboard
}

func (c *Client) Touch() seat.TouchObject {
	if c.touch == nil {
		return nil
	}
	return c.touch
}

// Surface is a named surface that records nothing itself; the events
// for it are recorded by its client's device objects.
type Surface struct {
	name   string
	client *Client
}

// NewSurface returns a surface that belongs to no client.
func NewSurface(name string) *Surface {
	return &Surface{name: name}
}

func (s *Surface) Name() string {
	return s.name
}

func (s *Surface) String() string {
	return s.name
}

func (s *Surface) Client() seat.Client {
	if s.client == nil {
		return nil
	}
	return s.client
}

func surfaceName(s seat.Surface) string {
	if s == nil {
		return "<nil>"
	}
	if s, ok := s.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%p", s)
}

// Source is a recording seat.DataSource.
type Source struct {
	Types     []string
	Cancelled bool
}

func (src *Source) MimeTypes() []string {
	return src.Types
}

func (src *Source) Cancel() {
	src.Cancelled = true
}
