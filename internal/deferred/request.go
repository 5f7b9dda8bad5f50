package deferred

import (
	"time"

	"github.com/google/uuid"

	"github.com/billie-coop/lumen/internal/result"
)

// Event identifies one query sent to an extension. Coordinators compare
// events by pointer; ID and Query exist for logging.
type Event struct {
	ID      string
	Query   string
	Created time.Time
}

// NewEvent stamps a fresh event for query.
func NewEvent(query string) *Event {
	return &Event{
		ID:      uuid.NewString(),
		Query:   query,
		Created: time.Now(),
	}
}

// Provider is whatever computes the answer, usually an extension controller.
// Providers are compared with ==, so implementations should be pointers.
type Provider interface {
	Name() string
	IconPath() (string, error)
}

// Response is what a provider hands back. When Action is nil the ordered
// Items are the payload and get rendered as a result list.
type Response struct {
	Event    *Event
	Provider Provider
	Action   Action
	Items    []result.Item
}

func (r Response) action() Action {
	if r.Action != nil {
		return r.Action
	}
	return RenderResultList(r.Items)
}

type activeRequest struct {
	event    *Event
	provider Provider
	// answered is set once the first matching response has been handled.
	answered bool
}

func (a *activeRequest) matches(r Response) bool {
	return !a.answered && a.event == r.Event && a.provider == r.Provider
}
