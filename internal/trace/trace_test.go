package trace_test

import (
	"testing"

	"deedles.dev/wlseat/internal/trace"
	"deedles.dev/wlseat/seat"
	"deedles.dev/wlseat/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientDevices(t *testing.T) {
	var log trace.Log
	c := trace.NewClient(&log, "c", seat.CapPointer|seat.CapTouch)

	assert.NotNil(t, c.Pointer())
	assert.Nil(t, c.Keyboard())
	assert.NotNil(t, c.Touch())
	assert.Equal(t, "c", c.String())
}

func TestTouchAttribution(t *testing.T) {
	var log trace.Log
	c := trace.NewClient(&log, "c", seat.CapTouch)
	s := c.NewSurface("s")
	assert.Equal(t, seat.Client(c), s.Client())

	touch := c.Touch()
	touch.Down(1, 0, s, 4, wire.FixedInt(1), wire.FixedInt(2))
	touch.Motion(1, 4, wire.FixedInt(3), wire.FixedInt(4))
	touch.Up(2, 2, 4)
	touch.Motion(3, 4, 0, 0)

	events := log.Events()
	require.Len(t, events, 4)
	assert.Equal(t, []string{"touch.down", "touch.motion", "touch.up"}, log.Kinds("s"))
	assert.Equal(t, "c", events[3].Target)
	assert.Equal(t, "s touch.down serial=1 x=1 y=2 id=4", events[0].String())

	assert.Len(t, log.Filter("touch.m"), 2)
	log.Reset()
	assert.Empty(t, log.Events())
}

func TestOrphanSurface(t *testing.T) {
	s := trace.NewSurface("o")
	assert.Nil(t, s.Client())
	assert.Equal(t, "o", s.Name())
}
