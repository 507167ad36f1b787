package seat_test

import (
	"fmt"
	"testing"

	"deedles.dev/wlseat/compositor"
	"deedles.dev/wlseat/display"
	"deedles.dev/wlseat/internal/trace"
	"deedles.dev/wlseat/keyboard"
	"deedles.dev/wlseat/pointer"
	"deedles.dev/wlseat/seat"
	"github.com/stretchr/testify/require"
)

const allCaps = seat.CapPointer | seat.CapKeyboard | seat.CapTouch

type fixture struct {
	comp   *compositor.Compositor
	seat   *seat.Seat
	log    *trace.Log
	client *trace.Client
	a, b   *trace.Surface
}

func newFixture(t *testing.T, h seat.Handler) *fixture {
	t.Helper()

	comp := compositor.New(display.New())
	t.Cleanup(func() { comp.Close() })
	if rh, ok := h.(*recordingHandler); ok {
		rh.comp = comp
	}

	s, err := comp.NewSeat("seat0", h)
	require.NoError(t, err)

	var log trace.Log
	client := trace.NewClient(&log, "app", allCaps)
	s.Bind(client)
	s.SetCapabilities(allCaps)
	log.Reset()

	return &fixture{
		comp:   comp,
		seat:   s,
		log:    &log,
		client: client,
		a:      client.NewSurface("a"),
		b:      client.NewSurface("b"),
	}
}

// indexOf returns the index in the log of the first event with the
// given target and kind, or -1.
func (f *fixture) indexOf(target, kind string) int {
	for i, ev := range f.log.Events() {
		if ev.Target == target && ev.Kind == kind {
			return i
		}
	}
	return -1
}

// recordingHandler records every handler call along with whether the
// seat could be found in the registry while the call ran.
type recordingHandler struct {
	seat.NopHandler
	comp *compositor.Compositor

	calls   []string
	visible []bool
	grabs   []any
	onCall  func(call string, s *seat.Seat)
}

func (h *recordingHandler) record(call string, s *seat.Seat, grab any) {
	name, _ := s.Name()
	_, ok := h.comp.Seat(name)
	h.calls = append(h.calls, call)
	h.visible = append(h.visible, ok)
	h.grabs = append(h.grabs, grab)
	if h.onCall != nil {
		h.onCall(call, s)
	}
}

func (h *recordingHandler) PointerGrabbed(_ seat.Registry, s *seat.Seat, g seat.PointerGrab) {
	h.record("pointer_grabbed", s, g)
}

func (h *recordingHandler) PointerReleased(_ seat.Registry, s *seat.Seat, g seat.PointerGrab) {
	h.record("pointer_released", s, g)
}

func (h *recordingHandler) KeyboardGrabbed(_ seat.Registry, s *seat.Seat, g seat.KeyboardGrab) {
	h.record("keyboard_grabbed", s, g)
}

func (h *recordingHandler) KeyboardReleased(_ seat.Registry, s *seat.Seat, g seat.KeyboardGrab) {
	h.record("keyboard_released", s, g)
}

func (h *recordingHandler) TouchGrabbed(_ seat.Registry, s *seat.Seat, g seat.TouchGrab) {
	h.record("touch_grabbed", s, g)
}

func (h *recordingHandler) TouchReleased(_ seat.Registry, s *seat.Seat, g seat.TouchGrab) {
	h.record("touch_released", s, g)
}

func (h *recordingHandler) CursorSet(_ seat.Registry, s *seat.Seat, req *seat.CursorRequest) {
	h.record("cursor_set", s, req)
}

func (h *recordingHandler) ReceivedSelection(_ seat.Registry, s *seat.Seat) {
	h.record("selection", s, nil)
}

func (h *recordingHandler) PrimarySelection(_ seat.Registry, s *seat.Seat) {
	h.record("primary_selection", s, nil)
}

func (h *recordingHandler) Destroy(_ seat.Registry, s *seat.Seat) {
	h.record("destroy", s, nil)
}

// recordingPointerGrab records the calls it receives and forwards them
// to the default routing if forward is set.
type recordingPointerGrab struct {
	seat.PassthroughPointerGrab
	name      string
	forward   bool
	calls     []string
	cancelled bool
}

func (g *recordingPointerGrab) String() string {
	return g.name
}

func (g *recordingPointerGrab) Enter(s *seat.Seat, surface seat.Surface, sx, sy float64) {
	g.calls = append(g.calls, fmt.Sprintf("enter %v", surface))
	if g.forward {
		g.PassthroughPointerGrab.Enter(s, surface, sx, sy)
	}
}

func (g *recordingPointerGrab) Motion(s *seat.Seat, time uint32, sx, sy float64) {
	g.calls = append(g.calls, "motion")
	if g.forward {
		g.PassthroughPointerGrab.Motion(s, time, sx, sy)
	}
}

func (g *recordingPointerGrab) Button(s *seat.Seat, time uint32, button pointer.Button, state pointer.ButtonState) uint32 {
	g.calls = append(g.calls, "button")
	if g.forward {
		return g.PassthroughPointerGrab.Button(s, time, button, state)
	}
	return 0
}

func (g *recordingPointerGrab) Axis(s *seat.Seat, time uint32, axis pointer.Axis, value float64) {
	g.calls = append(g.calls, "axis")
	if g.forward {
		g.PassthroughPointerGrab.Axis(s, time, axis, value)
	}
}

func (g *recordingPointerGrab) Cancel(*seat.Seat) {
	g.cancelled = true
}

type recordingKeyboardGrab struct {
	seat.PassthroughKeyboardGrab
	calls     []string
	cancelled bool
}

func (g *recordingKeyboardGrab) Enter(s *seat.Seat, surface seat.Surface, keycodes []uint32, mods keyboard.Modifiers) {
	g.calls = append(g.calls, fmt.Sprintf("enter %v", surface))
}

func (g *recordingKeyboardGrab) Key(s *seat.Seat, time, key uint32, state keyboard.KeyState) {
	g.calls = append(g.calls, fmt.Sprintf("key %v", key))
}

func (g *recordingKeyboardGrab) Modifiers(s *seat.Seat, mods keyboard.Modifiers) {
	g.calls = append(g.calls, "modifiers")
}

func (g *recordingKeyboardGrab) Cancel(*seat.Seat) {
	g.cancelled = true
}

// recordingTouchGrab forwards downs and ups but only records motion.
type recordingTouchGrab struct {
	seat.PassthroughTouchGrab
	calls     []string
	cancelled bool
}

func (g *recordingTouchGrab) Down(s *seat.Seat, surface seat.Surface, time uint32, id seat.TouchID, sx, sy float64) uint32 {
	g.calls = append(g.calls, fmt.Sprintf("down %v", id))
	return g.PassthroughTouchGrab.Down(s, surface, time, id, sx, sy)
}

func (g *recordingTouchGrab) Up(s *seat.Seat, time uint32, id seat.TouchID) {
	g.calls = append(g.calls, fmt.Sprintf("up %v", id))
	g.PassthroughTouchGrab.Up(s, time, id)
}

func (g *recordingTouchGrab) Motion(s *seat.Seat, time uint32, id seat.TouchID, sx, sy float64) {
	g.calls = append(g.calls, fmt.Sprintf("motion %v", id))
}

func (g *recordingTouchGrab) Cancel(*seat.Seat) {
	g.cancelled = true
}
