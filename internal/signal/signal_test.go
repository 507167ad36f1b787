package signal_test

import (
	"testing"

	"deedles.dev/wlseat/internal/signal"
	"github.com/stretchr/testify/assert"
)

func TestEmitOrder(t *testing.T) {
	var s signal.Signal[int]
	var got []string
	s.Add(func(v int) { got = append(got, "first") })
	s.Add(func(v int) { got = append(got, "second") })

	s.Emit(1)
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestRemoveDuringEmit(t *testing.T) {
	var s signal.Signal[int]
	var calls int

	var second *signal.Listener[int]
	s.Add(func(int) {
		calls++
		s.Remove(second)
	})
	second = s.Add(func(int) { calls += 10 })

	s.Emit(0)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, s.Len())

	s.Remove(second)
	assert.Equal(t, 1, s.Len())
}

func TestAddDuringEmit(t *testing.T) {
	var s signal.Signal[int]
	var calls int
	s.Add(func(int) {
		calls++
		s.Add(func(int) { calls += 100 })
	})

	s.Emit(0)
	assert.Equal(t, 1, calls)

	s.RemoveAll()
	s.Emit(0)
	assert.Equal(t, 1, calls)
	assert.Zero(t, s.Len())
}
