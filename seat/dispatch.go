package seat

import "deedles.dev/wlseat/internal/debug"

// dispatcher connects the lifecycle events of a seat to a Handler.
type dispatcher struct {
	reg     Registry
	seat    *Seat
	handler Handler
}

func (d *dispatcher) subscribe() {
	ev := &d.seat.events

	ev.pointerGrabBegin.Add(func(g PointerGrab) {
		d.dispatch(func(s *Seat) { d.handler.PointerGrabbed(d.reg, s, g) })
	})
	ev.pointerGrabEnd.Add(func(g PointerGrab) {
		d.dispatch(func(s *Seat) { d.handler.PointerReleased(d.reg, s, g) })
	})
	ev.keyboardGrabBegin.Add(func(g KeyboardGrab) {
		d.dispatch(func(s *Seat) { d.handler.KeyboardGrabbed(d.reg, s, g) })
	})
	ev.keyboardGrabEnd.Add(func(g KeyboardGrab) {
		d.dispatch(func(s *Seat) { d.handler.KeyboardReleased(d.reg, s, g) })
	})
	ev.touchGrabBegin.Add(func(g TouchGrab) {
		d.dispatch(func(s *Seat) { d.handler.TouchGrabbed(d.reg, s, g) })
	})
	ev.touchGrabEnd.Add(func(g TouchGrab) {
		d.dispatch(func(s *Seat) { d.handler.TouchReleased(d.reg, s, g) })
	})
	ev.requestSetCursor.Add(func(req *CursorRequest) {
		d.dispatch(func(s *Seat) { d.handler.CursorSet(d.reg, s, req) })
	})
	ev.selection.Add(func(DataSource) {
		d.dispatch(func(s *Seat) { d.handler.ReceivedSelection(d.reg, s) })
	})
	ev.primarySelection.Add(func(DataSource) {
		d.dispatch(func(s *Seat) { d.handler.PrimarySelection(d.reg, s) })
	})
	ev.destroy.Add(func(*Seat) {
		if d.shuttingDown() {
			return
		}
		d.dispatch(func(s *Seat) { d.handler.Destroy(d.reg, s) })
	})
}

func (d *dispatcher) shuttingDown() bool {
	sd, ok := d.reg.(interface{ ShuttingDown() bool })
	return ok && sd.ShuttingDown()
}

// dispatch takes the seat out of the registry for the duration of f,
// so that f has the only reference to it, and puts it back afterwards
// no matter how f returns. If the seat is not in the registry,
// because it was renamed or because a callback for it is already
// running, f is not called.
func (d *dispatcher) dispatch(f func(s *Seat)) {
	name, ok := d.seat.Name()
	if !ok {
		return
	}

	s, ok := d.reg.TakeSeat(name)
	if !ok {
		debug.Log("seat not in registry, dropping event", "name", name)
		return
	}
	defer d.reg.ReplaceSeat(s)

	f(s)
}
