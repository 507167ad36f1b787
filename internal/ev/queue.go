// Package ev provides the bulk work queue used to move events onto
// the goroutine that owns a display.
package ev

import (
	"errors"

	"deedles.dev/xsync/cq"
)

// Queue collects queued work functions until they are retrieved as a
// single batch.
type Queue = cq.BulkQueue[func() error, *Events]

func NewQueue() *Queue {
	return cq.New(func(v []func() error) *Events {
		return &Events{
			events: v,
		}
	})
}

// Events represents a batch of work pulled from a Queue.
type Events struct {
	events []func() error
}

// Len returns the number of unprocessed events in the batch.
func (q *Events) Len() int {
	return len(q.events)
}

// Flush processess all of the events represented by q, in order, and
// returns every error encountered joined together.
func (q *Events) Flush() error {
	return errors.Join(Flush(q)...)
}

func Flush(queue *Events) (errs []error) {
	for _, ev := range queue.events {
		err := ev()
		if err != nil {
			errs = append(errs, err)
		}
	}
	queue.events = nil
	return errs
}
