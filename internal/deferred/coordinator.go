package deferred

import (
	"fmt"
	"sync"
	"time"

	"github.com/billie-coop/lumen/internal/logging"
	"github.com/billie-coop/lumen/internal/result"
)

// LoadingDelay is how long a provider may take before the placeholder shows.
const LoadingDelay = 300 * time.Millisecond

// Coordinator owns the active request slot and the placeholder timer. Build
// one per process and pass it to the query controller and the extension
// host.
type Coordinator struct {
	mu      sync.Mutex
	active  *activeRequest
	pending Timer

	ui        UI
	dispatch  Dispatcher
	scheduler Scheduler
	delay     time.Duration
	logger    logging.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithScheduler replaces the runtime clock, mostly for tests.
func WithScheduler(s Scheduler) Option {
	return func(c *Coordinator) {
		c.scheduler = s
	}
}

// WithDelay overrides LoadingDelay.
func WithDelay(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a coordinator that renders into ui through dispatch.
func New(ui UI, dispatch Dispatcher, opts ...Option) *Coordinator {
	c := &Coordinator{
		ui:        ui,
		dispatch:  dispatch,
		scheduler: ClockScheduler{},
		delay:     LoadingDelay,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit makes (event, provider) the active request and arms the loading
// placeholder. The returned action has no visible effect.
func (c *Coordinator) Submit(event *Event, provider Provider) Action {
	// Resolve the icon now so the timer callback does no I/O.
	icon := c.iconFor(provider)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelLoadingLocked()
	req := &activeRequest{event: event, provider: provider}
	c.active = req
	c.pending = c.scheduler.AfterFunc(c.delay, func() {
		c.renderLoading(req, icon)
	})

	c.logger.Debug("request submitted", "event", eventID(event), "provider", providerName(provider))
	return DoNothing{}
}

// HandleResponse runs the response action if it answers the active request
// and drops it otherwise, reporting which happened. It may be called from any
// goroutine. An error from the action is returned as is and the window is
// left open.
func (c *Coordinator) HandleResponse(resp Response) (bool, error) {
	c.mu.Lock()
	req := c.active
	if req == nil || !req.matches(resp) {
		c.mu.Unlock()
		c.logger.Debug("stale response dropped", "event", eventID(resp.Event), "provider", providerName(resp.Provider))
		return false, nil
	}
	c.cancelLoadingLocked()
	req.answered = true
	c.mu.Unlock()

	action := resp.action()
	if err := action.Run(dispatchedUI{c: c, req: req}); err != nil {
		return true, fmt.Errorf("failed to run %s action: %w", providerName(resp.Provider), err)
	}
	if !action.KeepOpen() {
		c.post(req, c.ui.HideAndClearInput)
	}
	return true, nil
}

// OnQueryChanged forgets the active request. Responses still on their way
// for it will be dropped.
func (c *Coordinator) OnQueryChanged() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelLoadingLocked()
	c.active = nil
}

// ActiveProvider returns the provider of the active request. It stays set
// after the request is answered, until the next Submit or OnQueryChanged.
func (c *Coordinator) ActiveProvider() (Provider, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil {
		return nil, false
	}
	return c.active.provider, true
}

func (c *Coordinator) renderLoading(req *activeRequest, icon string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// A stopped timer can still deliver if it fired just before Stop.
	if c.active != req || req.answered {
		return
	}
	c.pending = nil

	// Posting under the lock keeps the placeholder ahead of any render a
	// response queues afterwards.
	items := []result.Item{result.Placeholder(icon)}
	_ = RenderResultList(items).Run(dispatchedUI{c: c, req: req})
	c.logger.Debug("loading placeholder shown", "event", eventID(req.event), "provider", providerName(req.provider))
}

// post queues fn for the UI goroutine. fn is skipped if req stopped being
// the active request before the UI got to it.
func (c *Coordinator) post(req *activeRequest, fn func()) {
	c.dispatch.Post(func() {
		if c.isActive(req) {
			fn()
		}
	})
}

func (c *Coordinator) isActive(req *activeRequest) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active == req
}

func (c *Coordinator) cancelLoadingLocked() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

func (c *Coordinator) iconFor(p Provider) string {
	if p == nil {
		return ""
	}
	icon, err := p.IconPath()
	if err != nil {
		c.logger.Warn("provider icon unavailable", "provider", p.Name(), "error", err)
		return ""
	}
	return icon
}

func eventID(e *Event) string {
	if e == nil {
		return ""
	}
	return e.ID
}

func providerName(p Provider) string {
	if p == nil {
		return ""
	}
	return p.Name()
}
