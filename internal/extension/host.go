package extension

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/billie-coop/lumen/internal/async"
	"github.com/billie-coop/lumen/internal/csync"
	"github.com/billie-coop/lumen/internal/deferred"
	"github.com/billie-coop/lumen/internal/logging"
	"github.com/billie-coop/lumen/internal/tui/events"
)

// Coordinator is the part of deferred.Coordinator the host drives.
type Coordinator interface {
	Submit(event *deferred.Event, provider deferred.Provider) deferred.Action
	HandleResponse(resp deferred.Response) (bool, error)
	OnQueryChanged()
}

// Host routes queries to controllers.
type Host struct {
	ctx         context.Context
	coordinator Coordinator
	broker      *events.Broker
	controllers *csync.Slice[*Controller]
	disabled    atomic.Bool
	logger      logging.Logger

	mu     sync.Mutex
	cancel context.CancelFunc // stops the handler of the current query
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithHostLogger sets the logger.
func WithHostLogger(l logging.Logger) HostOption {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHost creates a host. Each handler gets a context derived from ctx that
// is cancelled when the next query starts or the query changes.
func NewHost(ctx context.Context, coordinator Coordinator, broker *events.Broker, opts ...HostOption) *Host {
	h := &Host{
		ctx:         ctx,
		coordinator: coordinator,
		broker:      broker,
		controllers: csync.NewSlice[*Controller](),
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register adds c. Controllers are tried in registration order.
func (h *Host) Register(c *Controller) {
	h.controllers.Append(c)
}

// Controllers returns the registered controllers.
func (h *Host) Controllers() []*Controller {
	return h.controllers.ToSlice()
}

// Disable stops the host from answering any further query.
func (h *Host) Disable() {
	h.disabled.Store(true)
}

// Find returns the first controller matching q.
func (h *Host) Find(q Query) (*Controller, bool) {
	for _, c := range h.controllers.ToSlice() {
		if c.Matches(q) {
			return c, true
		}
	}
	return nil, false
}

// Query submits raw to the matching controller and runs it in the
// background. It reports false when no controller takes the query. Either
// way the previous query is superseded and its handler cancelled.
func (h *Host) Query(raw string) (*async.Handle, bool) {
	if h.disabled.Load() || raw == "" {
		h.OnQueryChanged()
		return nil, false
	}

	q := ParseQuery(raw)
	c, ok := h.Find(q)
	if !ok {
		h.OnQueryChanged()
		return nil, false
	}

	// Submit before cancelling so the old handler's reply is already stale.
	event := deferred.NewEvent(raw)
	h.coordinator.Submit(event, c)
	ctx, cancel := context.WithCancel(h.ctx)
	h.swapCancel(cancel)

	h.publish(events.QuerySubmittedEvent, events.QueryPayload{Query: raw})
	h.logger.Debug("Query submitted", "extension", c.Name(), "event", event.ID)

	return async.GoContext(ctx, func(ctx context.Context) error {
		defer cancel()
		return h.run(ctx, event, c, q)
	}), true
}

// OnQueryChanged cancels the running handler and forgets the active request.
func (h *Host) OnQueryChanged() {
	h.coordinator.OnQueryChanged()
	h.swapCancel(nil)
}

// swapCancel installs next as the current query's cancel func and cancels
// the one it replaces.
func (h *Host) swapCancel(next context.CancelFunc) {
	h.mu.Lock()
	prev := h.cancel
	h.cancel = next
	h.mu.Unlock()

	if prev != nil {
		prev()
	}
}

func (h *Host) run(ctx context.Context, event *deferred.Event, c *Controller, q Query) error {
	reply, handlerErr := c.Handle(ctx, q)
	if handlerErr != nil {
		// An empty reply retires the placeholder if the query is still current.
		reply = Reply{}
	}

	handled, err := h.coordinator.HandleResponse(deferred.Response{
		Event:    event,
		Provider: c,
		Action:   reply.Action,
		Items:    reply.Items,
	})
	if !handled {
		h.logger.Debug("Reply for a superseded query dropped", "extension", c.Name(), "event", event.ID, "error", handlerErr)
		return nil
	}
	if handlerErr != nil {
		err := fmt.Errorf("extension %s failed: %w", c.Name(), handlerErr)
		h.fail(c, q, err)
		return err
	}
	if err != nil {
		h.fail(c, q, err)
		return err
	}

	h.publish(events.ExtensionRespondedEvent, events.ExtensionPayload{Extension: c.Name(), Query: q.Raw})
	return nil
}

func (h *Host) fail(c *Controller, q Query, err error) {
	h.logger.Error("Extension error", "extension", c.Name(), "error", err)
	h.publish(events.ExtensionFailedEvent, events.ExtensionPayload{Extension: c.Name(), Query: q.Raw, Err: err})
	if h.broker != nil {
		h.broker.PublishStatus(events.StatusError, err.Error())
	}
}

func (h *Host) publish(t events.EventType, payload any) {
	if h.broker == nil {
		return
	}
	h.broker.Publish(events.Event{Type: t, Payload: payload})
}
