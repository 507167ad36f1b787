package seat_test

import (
	"testing"

	"deedles.dev/wlseat/compositor"
	"deedles.dev/wlseat/display"
	"deedles.dev/wlseat/internal/trace"
	"deedles.dev/wlseat/keyboard"
	"deedles.dev/wlseat/pointer"
	"deedles.dev/wlseat/seat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	comp := compositor.New(display.New())
	defer comp.Close()

	s, err := seat.Create(comp, comp.Display(), "seat0", nil)
	require.NoError(t, err)

	name, ok := s.Name()
	assert.True(t, ok)
	assert.Equal(t, "seat0", name)
	assert.Equal(t, seat.Capability(0), s.Capabilities())
	assert.Equal(t, 0, s.TouchNumPoints())
	assert.False(t, s.PointerHasGrab())

	got, ok := comp.Seat("seat0")
	require.True(t, ok)
	assert.Same(t, s, got)
}

func TestCreateDuplicate(t *testing.T) {
	h := &recordingHandler{}
	comp := compositor.New(display.New())
	h.comp = comp
	defer comp.Close()

	first, err := comp.NewSeat("seat0", nil)
	require.NoError(t, err)

	_, err = comp.NewSeat("seat0", h)
	var exists seat.SeatExistsError
	require.ErrorAs(t, err, &exists)
	assert.Equal(t, "seat0", exists.Name)

	got, _ := comp.Seat("seat0")
	assert.Same(t, first, got)

	first.PointerStartGrab(seat.PassthroughPointerGrab{})
	require.True(t, comp.DestroySeat("seat0"))
	assert.Empty(t, h.calls)
}

func TestCreateWithoutDisplay(t *testing.T) {
	comp := compositor.New(nil)

	_, err := seat.Create(comp, nil, "seat0", nil)
	assert.ErrorIs(t, err, seat.ErrNoDisplay)

	_, err = comp.NewSeat("seat0", nil)
	assert.ErrorIs(t, err, seat.ErrNoDisplay)
	assert.Empty(t, comp.Seats())
}

func TestNameOfNilSeat(t *testing.T) {
	var s *seat.Seat
	_, ok := s.Name()
	assert.False(t, ok)
}

func TestBind(t *testing.T) {
	f := newFixture(t, nil)

	var log trace.Log
	c := trace.NewClient(&log, "late", seat.CapPointer)
	f.seat.Bind(c)
	f.seat.Bind(c)

	assert.True(t, f.seat.IsBound(c))
	assert.Equal(t, []string{"seat.capabilities", "seat.name"}, log.Kinds("late"))
	assert.Equal(t, allCaps, c.SeatCapabilities())
	assert.Equal(t, "seat0", c.SeatName())
}

func TestCapabilityBroadcast(t *testing.T) {
	f := newFixture(t, nil)

	var log trace.Log
	other := trace.NewClient(&log, "other", 0)
	f.seat.Bind(other)

	f.seat.SetCapabilities(seat.CapKeyboard)
	assert.Equal(t, seat.CapKeyboard, f.seat.Capabilities())
	assert.Equal(t, seat.CapKeyboard, f.client.SeatCapabilities())
	assert.Equal(t, seat.CapKeyboard, other.SeatCapabilities())

	events := f.log.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "keyboard", events[0].Detail)
}

func TestSetNameLeavesRegistryKey(t *testing.T) {
	h := &recordingHandler{}
	f := newFixture(t, h)

	f.seat.SetName("seat1")
	assert.Equal(t, "seat1", f.client.SeatName())

	got, ok := f.comp.Seat("seat0")
	require.True(t, ok)
	assert.Same(t, f.seat, got)
	_, ok = f.comp.Seat("seat1")
	assert.False(t, ok)

	f.seat.PointerStartGrab(seat.PassthroughPointerGrab{})
	assert.Empty(t, h.calls, "events for a seat that can't be found are dropped")
}

func TestRenameSeat(t *testing.T) {
	h := &recordingHandler{}
	f := newFixture(t, h)

	require.NoError(t, f.comp.RenameSeat("seat0", "seat1"))
	assert.Equal(t, "seat1", f.client.SeatName())
	_, ok := f.comp.Seat("seat0")
	assert.False(t, ok)

	f.seat.PointerStartGrab(seat.PassthroughPointerGrab{})
	assert.Equal(t, []string{"pointer_grabbed"}, h.calls)
	assert.Equal(t, []bool{false}, h.visible)

	got, ok := f.comp.Seat("seat1")
	require.True(t, ok)
	assert.Same(t, f.seat, got)
}

func TestUnbind(t *testing.T) {
	f := newFixture(t, nil)

	f.seat.PointerEnter(f.a, 0, 0)
	f.seat.KeyboardEnter(f.a, nil, keyboard.Modifiers{})
	f.seat.TouchSendDown(f.a, 0, 1, 0, 0)
	f.log.Reset()

	f.seat.Unbind(f.client)
	assert.False(t, f.seat.IsBound(f.client))
	assert.Equal(t, 0, f.seat.TouchNumPoints())
	assert.Empty(t, f.log.Events())

	f.seat.PointerSendMotion(1, 1, 1)
	f.seat.KeyboardSendKey(1, 30, keyboard.KeyPressed)
	assert.Empty(t, f.log.Events())

	f.seat.SetCapabilities(seat.CapPointer)
	assert.Empty(t, f.log.Events())

	surface, _, _ := f.seat.PointerFocus()
	assert.Nil(t, surface)
	assert.Nil(t, f.seat.KeyboardFocus())
}

func TestRebindEntersAgain(t *testing.T) {
	f := newFixture(t, nil)

	f.seat.PointerEnter(f.a, 0, 0)
	f.seat.KeyboardEnter(f.a, nil, keyboard.Modifiers{})
	f.seat.Unbind(f.client)

	f.seat.Bind(f.client)
	f.log.Reset()

	f.seat.PointerEnter(f.a, 0, 0)
	f.seat.KeyboardEnter(f.a, nil, keyboard.Modifiers{})
	assert.Contains(t, f.log.Kinds("a"), "pointer.enter")
	assert.Contains(t, f.log.Kinds("a"), "keyboard.enter")

	surface, _, _ := f.seat.PointerFocus()
	assert.Equal(t, seat.Surface(f.a), surface)
	assert.Equal(t, seat.Surface(f.a), f.seat.KeyboardFocus())
}

func TestSurfaceDestroyed(t *testing.T) {
	f := newFixture(t, nil)

	f.seat.PointerEnter(f.a, 0, 0)
	f.seat.KeyboardEnter(f.a, nil, keyboard.Modifiers{})
	f.seat.TouchSendDown(f.b, 0, 1, 0, 0)
	f.seat.TouchPointFocus(f.a, 0, 1, 0, 0)
	f.log.Reset()

	f.seat.SurfaceDestroyed(f.a)

	surface, _, _ := f.seat.PointerFocus()
	assert.Nil(t, surface)
	assert.Nil(t, f.seat.KeyboardFocus())
	p, ok := f.seat.TouchPoint(1)
	require.True(t, ok)
	assert.Nil(t, p.Focus)
	assert.Equal(t, seat.Surface(f.b), p.Surface)
	assert.Empty(t, f.log.Events())

	f.seat.PointerEnter(f.b, 0, 0)
	assert.Equal(t, []string{"pointer.enter"}, f.log.Kinds("b"))
}

func TestDestroy(t *testing.T) {
	h := &recordingHandler{}
	f := newFixture(t, h)

	var sawFocus bool
	h.onCall = func(call string, s *seat.Seat) {
		if call == "destroy" {
			sawFocus = s.PointerSurfaceHasFocus(f.a)
		}
	}

	src := &trace.Source{}
	f.seat.SetSelection(src)
	f.seat.PointerEnter(f.a, 0, 0)
	f.seat.TouchSendDown(f.a, 0, 1, 0, 0)
	f.log.Reset()
	h.calls = nil

	require.True(t, f.comp.DestroySeat("seat0"))
	assert.True(t, f.seat.Destroyed())
	assert.Equal(t, []string{"destroy"}, h.calls)
	assert.True(t, sawFocus)
	assert.True(t, src.Cancelled)
	assert.Nil(t, f.seat.Selection())
	assert.Equal(t, 0, f.seat.TouchNumPoints())
	assert.Equal(t, []string{"pointer.leave"}, f.log.Kinds("a"))
	assert.False(t, f.seat.IsBound(f.client))

	_, ok := f.comp.Seat("seat0")
	assert.False(t, ok)
	assert.False(t, f.comp.DestroySeat("seat0"))

	f.seat.Destroy()
	assert.Equal(t, []string{"destroy"}, h.calls)
}

func TestCloseSkipsDestroyHandler(t *testing.T) {
	h := &recordingHandler{}
	f := newFixture(t, h)

	g := &recordingPointerGrab{name: "g"}
	f.seat.PointerStartGrab(g)
	h.calls = nil

	require.NoError(t, f.comp.Close())
	assert.True(t, f.seat.Destroyed())
	assert.True(t, g.cancelled)
	assert.Empty(t, h.calls)
	assert.Empty(t, f.comp.Seats())
}

func TestPointerFocusCoordinates(t *testing.T) {
	f := newFixture(t, nil)

	f.seat.PointerEnter(f.a, 1.5, 2.5)
	surface, sx, sy := f.seat.PointerFocus()
	assert.Equal(t, seat.Surface(f.a), surface)
	assert.Equal(t, 1.5, sx)
	assert.Equal(t, 2.5, sy)
	assert.True(t, f.seat.PointerSurfaceHasFocus(f.a))
	assert.False(t, f.seat.PointerSurfaceHasFocus(f.b))

	f.seat.PointerNotifyMotion(1, 3, 4)
	_, sx, sy = f.seat.PointerFocus()
	assert.Equal(t, 3.0, sx)
	assert.Equal(t, 4.0, sy)

	f.seat.PointerNotifyButton(2, pointer.ButtonLeft, pointer.ButtonPressed)
	assert.Equal(t, 1, f.seat.PointerButtonCount())
}
