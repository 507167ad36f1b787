// Package signal implements synchronous signals in the style of
// wl_signal. Listeners run in the order they were added, on the
// goroutine that emits the signal.
package signal

import "deedles.dev/wlseat/internal/xslices"

// Listener is a handle to a function added to a Signal.
type Listener[T any] struct {
	fn      func(T)
	removed bool
}

// Signal is a list of listeners. The zero value is ready to use.
type Signal[T any] struct {
	listeners []*Listener[T]
}

// Add registers fn to be called every time the signal is emitted.
func (s *Signal[T]) Add(fn func(T)) *Listener[T] {
	l := &Listener[T]{fn: fn}
	s.listeners = append(s.listeners, l)
	return l
}

// Remove unregisters l. It is safe to call from inside a listener,
// including l itself, and removing a listener twice is a no-op.
func (s *Signal[T]) Remove(l *Listener[T]) {
	if l == nil || l.removed {
		return
	}
	l.removed = true
	s.listeners = xslices.Without(s.listeners, l)
}

// RemoveAll unregisters every listener.
func (s *Signal[T]) RemoveAll() {
	for _, l := range s.listeners {
		l.removed = true
	}
	s.listeners = nil
}

// Len returns the number of registered listeners.
func (s *Signal[T]) Len() int {
	return len(s.listeners)
}

// Emit calls every listener with v. Listeners added during the
// emission are not called until the next one, and listeners removed
// during the emission are skipped if they have not run yet.
func (s *Signal[T]) Emit(v T) {
	listeners := s.listeners
	for _, l := range listeners {
		if l.removed {
			continue
		}
		l.fn(v)
	}
}
