package seat_test

import (
	"testing"

	"deedles.dev/wlseat/internal/trace"
	"deedles.dev/wlseat/seat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerSeesTakenSeat(t *testing.T) {
	h := &recordingHandler{}
	f := newFixture(t, h)

	var got *seat.Seat
	h.onCall = func(call string, s *seat.Seat) { got = s }

	f.seat.PointerStartGrab(seat.PassthroughPointerGrab{})
	f.seat.PointerEndGrab()

	assert.Equal(t, []string{"pointer_grabbed", "pointer_released"}, h.calls)
	assert.Equal(t, []bool{false, false}, h.visible)
	assert.Same(t, f.seat, got)

	_, ok := f.comp.Seat("seat0")
	assert.True(t, ok)
}

func TestHandlerPanicRestoresSeat(t *testing.T) {
	h := &recordingHandler{}
	f := newFixture(t, h)
	h.onCall = func(string, *seat.Seat) { panic("handler failed") }

	assert.Panics(t, func() {
		f.seat.KeyboardStartGrab(seat.PassthroughKeyboardGrab{})
	})

	got, ok := f.comp.Seat("seat0")
	require.True(t, ok)
	assert.Same(t, f.seat, got)
}

func TestNestedEventDropped(t *testing.T) {
	h := &recordingHandler{}
	f := newFixture(t, h)

	src := &trace.Source{Types: []string{"text/plain"}}
	h.onCall = func(call string, s *seat.Seat) {
		if call == "touch_grabbed" {
			s.SetSelection(src)
		}
	}

	f.seat.TouchStartGrab(seat.PassthroughTouchGrab{})
	assert.Equal(t, []string{"touch_grabbed"}, h.calls)
	assert.Equal(t, seat.DataSource(src), f.seat.Selection())

	h.onCall = nil
	f.seat.SetSelection(nil)
	assert.Equal(t, []string{"touch_grabbed", "selection"}, h.calls)
	assert.True(t, src.Cancelled)
}

func TestSelection(t *testing.T) {
	h := &recordingHandler{}
	f := newFixture(t, h)

	first := &trace.Source{Types: []string{"text/plain"}}
	second := &trace.Source{Types: []string{"image/png"}}

	f.seat.SetSelection(first)
	f.seat.SetSelection(first)
	assert.Equal(t, []string{"selection"}, h.calls)

	f.seat.SetSelection(second)
	assert.True(t, first.Cancelled)
	assert.False(t, second.Cancelled)
	assert.Equal(t, seat.DataSource(second), f.seat.Selection())

	f.seat.SetPrimarySelection(first)
	assert.Equal(t, seat.DataSource(first), f.seat.PrimarySelection())
	assert.Equal(t, []string{"selection", "selection", "primary_selection"}, h.calls)
}

func TestRequestSetCursor(t *testing.T) {
	h := &recordingHandler{}
	f := newFixture(t, h)

	var log trace.Log
	other := trace.NewClient(&log, "other", seat.CapPointer)
	f.seat.Bind(other)
	cursor := f.client.NewSurface("cursor")

	f.seat.RequestSetCursor(f.client, cursor, 1, 2, 3)
	assert.Empty(t, h.calls, "no pointer focus")

	f.seat.PointerEnter(f.a, 0, 0)
	f.seat.RequestSetCursor(other, other.NewSurface("x"), 1, 0, 0)
	assert.Empty(t, h.calls, "client without focus")

	f.seat.RequestSetCursor(f.client, cursor, 7, 2, 3)
	require.Equal(t, []string{"cursor_set"}, h.calls)

	req, ok := h.grabs[0].(*seat.CursorRequest)
	require.True(t, ok)
	assert.Equal(t, seat.Client(f.client), req.Client)
	assert.Equal(t, seat.Surface(cursor), req.Surface)
	assert.Equal(t, uint32(7), req.Serial)
	assert.Equal(t, int32(2), req.HotspotX)
	assert.Equal(t, int32(3), req.HotspotY)
}

func TestNopHandler(t *testing.T) {
	f := newFixture(t, seat.NopHandler{})

	f.seat.PointerStartGrab(seat.PassthroughPointerGrab{})
	f.seat.SetSelection(&trace.Source{})
	require.True(t, f.comp.DestroySeat("seat0"))
}

func TestGrabReplacedFromHandler(t *testing.T) {
	h := &recordingHandler{}
	f := newFixture(t, h)

	g1 := &recordingPointerGrab{name: "g1"}
	g2 := &recordingPointerGrab{name: "g2"}
	f.seat.PointerStartGrab(g1)

	h.onCall = func(call string, s *seat.Seat) {
		if call == "selection" {
			s.PointerStartGrab(g2)
		}
	}
	f.seat.SetSelection(&trace.Source{Types: []string{"text/plain"}})

	assert.Equal(t, []string{"pointer_grabbed", "selection"}, h.calls)
	assert.True(t, g1.cancelled)
	assert.False(t, g2.cancelled)
	assert.Equal(t, seat.PointerGrab(g2), f.seat.PointerGrab())
}

func TestDestroyFromHandler(t *testing.T) {
	h := &recordingHandler{}
	f := newFixture(t, h)

	h.onCall = func(call string, s *seat.Seat) {
		if call == "selection" {
			s.Destroy()
		}
	}
	f.seat.SetSelection(&trace.Source{Types: []string{"text/plain"}})

	assert.Equal(t, []string{"selection"}, h.calls)
	assert.True(t, f.seat.Destroyed())

	_, ok := f.comp.Seat("seat0")
	assert.False(t, ok)
}
