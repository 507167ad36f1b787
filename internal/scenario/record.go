package scenario

import (
	"fmt"

	"deedles.dev/wlseat/internal/trace"
	"deedles.dev/wlseat/keyboard"
	"deedles.dev/wlseat/pointer"
	"deedles.dev/wlseat/seat"
)

func seatName(s *seat.Seat) string {
	name, _ := s.Name()
	return name
}

// handler records seat lifecycle events in the transcript.
type handler struct {
	log *trace.Log
}

func (h *handler) record(s *seat.Seat, kind string, detail any) {
	ev := trace.Event{Target: seatName(s), Kind: "handler." + kind}
	if detail != nil {
		ev.Detail = fmt.Sprint(detail)
	}
	h.log.Record(ev)
}

func (h *handler) PointerGrabbed(_ seat.Registry, s *seat.Seat, g seat.PointerGrab) {
	h.record(s, "pointer_grab", g)
}

func (h *handler) PointerReleased(_ seat.Registry, s *seat.Seat, g seat.PointerGrab) {
	h.record(s, "pointer_release", g)
}

func (h *handler) KeyboardGrabbed(_ seat.Registry, s *seat.Seat, g seat.KeyboardGrab) {
	h.record(s, "keyboard_grab", g)
}

func (h *handler) KeyboardReleased(_ seat.Registry, s *seat.Seat, g seat.KeyboardGrab) {
	h.record(s, "keyboard_release", g)
}

func (h *handler) TouchGrabbed(_ seat.Registry, s *seat.Seat, g seat.TouchGrab) {
	h.record(s, "touch_grab", g)
}

func (h *handler) TouchReleased(_ seat.Registry, s *seat.Seat, g seat.TouchGrab) {
	h.record(s, "touch_release", g)
}

func (h *handler) CursorSet(_ seat.Registry, s *seat.Seat, req *seat.CursorRequest) {
	h.record(s, "cursor", req.Surface)
}

func (h *handler) ReceivedSelection(_ seat.Registry, s *seat.Seat) {
	h.record(s, "selection", nil)
}

func (h *handler) PrimarySelection(_ seat.Registry, s *seat.Seat) {
	h.record(s, "primary_selection", nil)
}

func (h *handler) Destroy(_ seat.Registry, s *seat.Seat) {
	h.record(s, "destroy", nil)
}

// The grabs below record what they intercept and then pass it on to
// the default routing.

type pointerGrab struct {
	seat.PassthroughPointerGrab
	log  *trace.Log
	name string
}

func (g *pointerGrab) String() string { return g.name }

func (g *pointerGrab) record(kind string, time uint32, x, y float64) {
	g.log.Record(trace.Event{Target: g.name, Kind: "grab.pointer." + kind, Time: time, X: x, Y: y})
}

func (g *pointerGrab) Enter(s *seat.Seat, surface seat.Surface, sx, sy float64) {
	g.record("enter", 0, sx, sy)
	g.PassthroughPointerGrab.Enter(s, surface, sx, sy)
}

func (g *pointerGrab) Motion(s *seat.Seat, time uint32, sx, sy float64) {
	g.record("motion", time, sx, sy)
	g.PassthroughPointerGrab.Motion(s, time, sx, sy)
}

func (g *pointerGrab) Button(s *seat.Seat, time uint32, button pointer.Button, state pointer.ButtonState) uint32 {
	g.record("button", time, 0, 0)
	return g.PassthroughPointerGrab.Button(s, time, button, state)
}

func (g *pointerGrab) Axis(s *seat.Seat, time uint32, axis pointer.Axis, value float64) {
	g.record("axis", time, 0, 0)
	g.PassthroughPointerGrab.Axis(s, time, axis, value)
}

func (g *pointerGrab) Cancel(*seat.Seat) {
	g.record("cancel", 0, 0, 0)
}

type keyboardGrab struct {
	seat.PassthroughKeyboardGrab
	log  *trace.Log
	name string
}

func (g *keyboardGrab) String() string { return g.name }

func (g *keyboardGrab) record(kind string, time uint32) {
	g.log.Record(trace.Event{Target: g.name, Kind: "grab.keyboard." + kind, Time: time})
}

func (g *keyboardGrab) Enter(s *seat.Seat, surface seat.Surface, keycodes []uint32, mods keyboard.Modifiers) {
	g.record("enter", 0)
	g.PassthroughKeyboardGrab.Enter(s, surface, keycodes, mods)
}

func (g *keyboardGrab) Key(s *seat.Seat, time, key uint32, state keyboard.KeyState) {
	g.record("key", time)
	g.PassthroughKeyboardGrab.Key(s, time, key, state)
}

func (g *keyboardGrab) Modifiers(s *seat.Seat, mods keyboard.Modifiers) {
	g.record("modifiers", 0)
	g.PassthroughKeyboardGrab.Modifiers(s, mods)
}

func (g *keyboardGrab) Cancel(*seat.Seat) {
	g.record("cancel", 0)
}

type touchGrab struct {
	seat.PassthroughTouchGrab
	log  *trace.Log
	name string
}

func (g *touchGrab) String() string { return g.name }

func (g *touchGrab) record(kind string, time uint32, id seat.TouchID) {
	g.log.Record(trace.Event{Target: g.name, Kind: "grab.touch." + kind, Time: time, Detail: fmt.Sprintf("id=%v", id)})
}

func (g *touchGrab) Down(s *seat.Seat, surface seat.Surface, time uint32, id seat.TouchID, sx, sy float64) uint32 {
	g.record("down", time, id)
	return g.PassthroughTouchGrab.Down(s, surface, time, id, sx, sy)
}

func (g *touchGrab) Up(s *seat.Seat, time uint32, id seat.TouchID) {
	g.record("up", time, id)
	g.PassthroughTouchGrab.Up(s, time, id)
}

func (g *touchGrab) Motion(s *seat.Seat, time uint32, id seat.TouchID, sx, sy float64) {
	g.record("motion", time, id)
	g.PassthroughTouchGrab.Motion(s, time, id, sx, sy)
}

func (g *touchGrab) Cancel(*seat.Seat) {
	g.log.Record(trace.Event{Target: g.name, Kind: "grab.touch.cancel"})
}
