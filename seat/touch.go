package seat

import (
	"deedles.dev/wlseat/internal/debug"
	"deedles.dev/wlseat/wire"
)

// TouchID identifies a touch contact. IDs are assigned by the input
// device and may be reused once the previous contact with the same ID
// has been released.
type TouchID int32

// TouchPoint is the state of an active touch contact.
type TouchPoint struct {
	ID TouchID

	// Surface is the surface that the contact went down on. All events
	// for the point go to its client until the point is released.
	Surface Surface
	Client  Client

	// Focus is the surface that the contact is currently over, as set
	// by TouchPointFocus.
	Focus       Surface
	FocusClient Client

	SX, SY   float64
	DownTime uint32
}

type touchState struct {
	points map[TouchID]*TouchPoint
	grab   TouchGrab

	grabSerial uint32
	grabID     TouchID
}

// TouchNumPoints returns the number of active touch points.
func (s *Seat) TouchNumPoints() int {
	return len(s.touch.points)
}

// TouchPoint returns a copy of the active touch point with the given
// ID. It returns false if no such point exists or it has already been
// released.
func (s *Seat) TouchPoint(id TouchID) (TouchPoint, bool) {
	p, ok := s.touch.points[id]
	if !ok {
		return TouchPoint{}, false
	}
	return *p, true
}

// TouchSendDown sends a touch down event to the client of surface and
// creates a touch point for id. All future events for the point go
// to that client until it is released. It returns the serial of the
// event.
//
// The down is rejected, returning zero and creating no point, if the
// client of surface is not bound to the seat, has no touch object or
// if a point with the same id is still active.
//
// Coordinates are surface-local. Compositors should use
// TouchNotifyDown to respect grabs.
func (s *Seat) TouchSendDown(surface Surface, time uint32, id TouchID, sx, sy float64) uint32 {
	if _, ok := s.touch.points[id]; ok {
		debug.Log("touch down for active point", "id", id)
		return 0
	}

	client := s.clientFor(surface)
	if client == nil {
		return 0
	}
	t := client.Touch()
	if t == nil {
		return 0
	}

	s.touch.points[id] = &TouchPoint{
		ID:          id,
		Surface:     surface,
		Client:      client,
		Focus:       surface,
		FocusClient: client,
		SX:          sx,
		SY:          sy,
		DownTime:    time,
	}

	serial := s.display.NextSerial()
	t.Down(serial, time, surface, id, wire.FixedFloat(sx), wire.FixedFloat(sy))
	t.Frame()
	return serial
}

// TouchSendUp sends a touch up event for the point with the given id
// and removes the point. It does nothing if there is no such point.
//
// Compositors should use TouchNotifyUp to respect grabs.
func (s *Seat) TouchSendUp(time uint32, id TouchID) {
	p, ok := s.touch.points[id]
	if !ok {
		debug.Log("touch up for unknown point", "id", id)
		return
	}
	delete(s.touch.points, id)

	if t := p.Client.Touch(); t != nil {
		t.Up(s.display.NextSerial(), time, id)
		t.Frame()
	}
}

// TouchSendMotion sends a touch motion event for the point with the
// given id to the client that owns it. It does nothing if there is no
// such point.
//
// Compositors should use TouchNotifyMotion to respect grabs.
func (s *Seat) TouchSendMotion(time uint32, id TouchID, sx, sy float64) {
	p, ok := s.touch.points[id]
	if !ok {
		debug.Log("touch motion for unknown point", "id", id)
		return
	}
	p.SX, p.SY = sx, sy

	if t := p.Client.Touch(); t != nil {
		t.Motion(time, id, wire.FixedFloat(sx), wire.FixedFloat(sy))
		t.Frame()
	}
}

// TouchPointFocus sets the surface that the point with the given id
// is over. It does not change which client receives the point's
// events.
func (s *Seat) TouchPointFocus(surface Surface, time uint32, id TouchID, sx, sy float64) {
	p, ok := s.touch.points[id]
	if !ok {
		return
	}

	p.Focus = surface
	p.FocusClient = s.clientFor(surface)
	p.SX, p.SY = sx, sy
}

// TouchPointClearFocus clears the surface that the point with the
// given id is over.
func (s *Seat) TouchPointClearFocus(time uint32, id TouchID) {
	p, ok := s.touch.points[id]
	if !ok {
		return
	}

	p.Focus = nil
	p.FocusClient = nil
}

// TouchNotifyDown notifies the seat of a touch down on surface and
// returns the resulting serial, or zero if none was sent. Defers to
// any touch grab.
//
// The serial of the down that starts a touch sequence is remembered
// for ValidateTouchGrabSerial.
func (s *Seat) TouchNotifyDown(surface Surface, time uint32, id TouchID, sx, sy float64) uint32 {
	var serial uint32
	if g := s.touch.grab; g != nil {
		serial = g.Down(s, surface, time, id, sx, sy)
	} else {
		serial = s.TouchSendDown(surface, time, id, sx, sy)
	}

	if serial != 0 && s.TouchNumPoints() == 1 {
		s.touch.grabSerial = serial
		s.touch.grabID = id
	}
	return serial
}

// TouchNotifyUp notifies the seat that the point with the given id
// was released. Defers to any touch grab.
func (s *Seat) TouchNotifyUp(time uint32, id TouchID) {
	if g := s.touch.grab; g != nil {
		g.Up(s, time, id)
		return
	}
	s.TouchSendUp(time, id)
}

// TouchNotifyMotion notifies the seat that the point with the given
// id moved. Defers to any touch grab.
//
// The seat should be notified of motion even when the point is over
// a surface other than the one it went down on, as grabs may need it.
// Grabs also receive motion for ids that have no active point.
func (s *Seat) TouchNotifyMotion(time uint32, id TouchID, sx, sy float64) {
	if g := s.touch.grab; g != nil {
		g.Motion(s, time, id, sx, sy)
		return
	}
	s.TouchSendMotion(time, id, sx, sy)
}

// ValidateTouchGrabSerial returns true if serial is the serial of the
// down that started the current touch sequence and, when origin is
// not nil, that point went down on origin.
func (s *Seat) ValidateTouchGrabSerial(origin Surface, serial uint32) bool {
	if serial == 0 || s.touch.grabSerial != serial {
		return false
	}
	p, ok := s.touch.points[s.touch.grabID]
	if !ok {
		return false
	}
	return origin == nil || p.Surface == origin
}

// TouchStartGrab starts a grab of the touch device. If another grab
// is active, it is ended first.
func (s *Seat) TouchStartGrab(g TouchGrab) {
	if g == nil {
		return
	}
	s.TouchEndGrab()

	s.touch.grab = g
	s.events.touchGrabBegin.Emit(g)
}

// TouchEndGrab ends the active touch grab, if any.
func (s *Seat) TouchEndGrab() {
	g := s.touch.grab
	if g == nil {
		return
	}

	s.touch.grab = nil
	s.events.touchGrabEnd.Emit(g)
	g.Cancel(s)
}

// TouchHasGrab returns true if a touch grab is active.
func (s *Seat) TouchHasGrab() bool {
	return s.touch.grab != nil
}

// TouchGrab returns the active touch grab, or nil.
func (s *Seat) TouchGrab() TouchGrab {
	return s.touch.grab
}
