// Package async runs work off the UI goroutine.
//
// Go starts fn on its own goroutine and returns a Handle. Callers that only
// want fire-and-forget drop the handle; callers that care about completion
// Wait on it or select on Done.
package async

import (
	"context"
	"fmt"
)

// Handle tracks one background call.
type Handle struct {
	done chan struct{}
	err  error
}

// Go runs fn in a new goroutine. A panic inside fn is recovered and reported
// as the handle's error.
func Go(fn func() error) *Handle {
	h := &Handle{done: make(chan struct{})}
	go func() {
		defer close(h.done)
		defer func() {
			if r := recover(); r != nil {
				h.err = fmt.Errorf("background task panicked: %v", r)
			}
		}()
		h.err = fn()
	}()
	return h
}

// GoContext is Go for functions that take a context.
func GoContext(ctx context.Context, fn func(context.Context) error) *Handle {
	return Go(func() error { return fn(ctx) })
}

// Done is closed when the call returns.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the call returns and reports its error.
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

// WaitContext is Wait bounded by ctx.
func (h *Handle) WaitContext(ctx context.Context) error {
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
