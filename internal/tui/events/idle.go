package events

import (
	"context"

	"github.com/billie-coop/lumen/internal/csync"
)

// IdleQueue carries callbacks from any goroutine to the UI goroutine. Post
// never blocks and never drops; the UI loop collects batches with Wait and
// runs them in posting order.
type IdleQueue struct {
	pending *csync.Slice[func()]
	ready   chan struct{}
}

// NewIdleQueue creates an empty queue.
func NewIdleQueue() *IdleQueue {
	return &IdleQueue{
		pending: csync.NewSlice[func()](),
		ready:   make(chan struct{}, 1),
	}
}

// Post schedules fn to run on the UI goroutine.
func (q *IdleQueue) Post(fn func()) {
	if fn == nil {
		return
	}
	q.pending.Append(fn)
	select {
	case q.ready <- struct{}{}:
	default:
		// A wakeup is already pending
	}
}

// Wait blocks until at least one callback is pending and returns all of
// them. It returns nil when ctx is done first.
func (q *IdleQueue) Wait(ctx context.Context) []func() {
	for {
		if fns := q.pending.Drain(); len(fns) > 0 {
			return fns
		}
		select {
		case <-q.ready:
		case <-ctx.Done():
			return nil
		}
	}
}

// Drain returns pending callbacks without blocking.
func (q *IdleQueue) Drain() []func() {
	return q.pending.Drain()
}

// Len reports how many callbacks are waiting.
func (q *IdleQueue) Len() int {
	return q.pending.Len()
}
