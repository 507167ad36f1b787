// Package display provides the event loop primitive that a seat runs
// on. A Display hands out serials and serializes work from arbitrary
// goroutines onto the goroutine that calls Flush.
package display

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"deedles.dev/wlseat/internal/ev"
)

// ErrClosed is returned when work is queued on a closed Display.
var ErrClosed = errors.New("display closed")

type Display struct {
	done   chan struct{}
	close  sync.Once
	serial atomic.Uint32
	queue  *ev.Queue
}

func New() *Display {
	return &Display{
		done:  make(chan struct{}),
		queue: ev.NewQueue(),
	}
}

// NextSerial returns a new serial. Serials increase monotonically and
// are never zero.
func (d *Display) NextSerial() uint32 {
	for {
		s := d.serial.Add(1)
		if s != 0 {
			return s
		}
	}
}

// Serial returns the most recently issued serial, or zero if none has
// been issued yet.
func (d *Display) Serial() uint32 {
	return d.serial.Load()
}

// Enqueue queues f to be run by the next call to Flush. It may be
// called from any goroutine.
func (d *Display) Enqueue(f func() error) error {
	select {
	case <-d.done:
		return ErrClosed
	default:
	}

	select {
	case <-d.done:
		return ErrClosed
	case d.queue.Add() <- f:
		return nil
	}
}

// Flush runs all of the work that has been queued since the last
// time the queue was flushed on the calling goroutine. It returns all
// errors encountered.
func (d *Display) Flush() error {
	select {
	case events, ok := <-d.queue.Get():
		if !ok {
			return ErrClosed
		}
		return events.Flush()
	default:
		return nil
	}
}

// Dispatch waits until work has been queued and then runs it on the
// calling goroutine, the same as Flush. It returns early if ctx is
// cancelled or the display is closed.
func (d *Display) Dispatch(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-d.done:
		return ErrClosed
	case events, ok := <-d.queue.Get():
		if !ok {
			return ErrClosed
		}
		return events.Flush()
	}
}

// Done is closed when the display is closed.
func (d *Display) Done() <-chan struct{} {
	return d.done
}

// Close stops the display. Work that has not been flushed is
// discarded.
func (d *Display) Close() error {
	d.close.Do(func() {
		close(d.done)
		d.queue.Stop()
	})
	return nil
}
