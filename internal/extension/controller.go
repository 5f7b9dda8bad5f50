// Package extension runs in-process result providers.
//
// A Controller is a named provider with an icon and a Handler. The Host
// picks the controller for each query, registers the request with the
// deferred coordinator, runs the handler in the background and hands the
// reply back to the coordinator, which drops it if the query moved on.
package extension

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/billie-coop/lumen/internal/deferred"
	"github.com/billie-coop/lumen/internal/result"
)

// ErrNoIcon is returned by IconPath for controllers without an icon.
var ErrNoIcon = errors.New("extension has no icon")

// Query is a parsed input line.
type Query struct {
	Raw      string
	Keyword  string // first word
	Argument string // everything after the first word, trimmed
}

// ParseQuery splits raw into keyword and argument.
func ParseQuery(raw string) Query {
	q := Query{Raw: raw}
	trimmed := strings.TrimLeft(raw, " ")
	keyword, argument, _ := strings.Cut(trimmed, " ")
	q.Keyword = keyword
	q.Argument = strings.TrimSpace(argument)
	return q
}

// Reply is what a handler produces. A nil Action renders Items.
type Reply struct {
	Action deferred.Action
	Items  []result.Item
}

// Handler computes a reply. It runs off the UI goroutine.
type Handler func(ctx context.Context, q Query) (Reply, error)

// Controller is one provider.
type Controller struct {
	name    string
	icon    string
	keyword string
	match   func(Query) bool
	handler Handler
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithKeyword makes the controller answer queries starting with kw.
func WithKeyword(kw string) ControllerOption {
	return func(c *Controller) {
		c.keyword = kw
	}
}

// WithIcon sets the icon file.
func WithIcon(path string) ControllerOption {
	return func(c *Controller) {
		c.icon = path
	}
}

// WithMatcher makes the controller answer queries for which match is true.
// It is consulted when no keyword is set.
func WithMatcher(match func(Query) bool) ControllerOption {
	return func(c *Controller) {
		c.match = match
	}
}

// NewController creates a controller named name.
func NewController(name string, handler Handler, opts ...ControllerOption) *Controller {
	c := &Controller{name: name, handler: handler}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements deferred.Provider.
func (c *Controller) Name() string { return c.name }

// Keyword returns the trigger keyword, if any.
func (c *Controller) Keyword() string { return c.keyword }

// IconPath implements deferred.Provider. The icon must exist on disk.
func (c *Controller) IconPath() (string, error) {
	if c.icon == "" {
		return "", fmt.Errorf("%w: %s", ErrNoIcon, c.name)
	}
	if _, err := os.Stat(c.icon); err != nil {
		return "", fmt.Errorf("failed to find icon for %s: %w", c.name, err)
	}
	return c.icon, nil
}

// Matches reports whether the controller should answer q.
func (c *Controller) Matches(q Query) bool {
	if c.keyword != "" {
		return q.Keyword == c.keyword
	}
	if c.match != nil {
		return c.match(q)
	}
	return false
}

// Handle runs the handler.
func (c *Controller) Handle(ctx context.Context, q Query) (Reply, error) {
	if c.handler == nil {
		return Reply{}, nil
	}
	return c.handler(ctx, q)
}

var _ deferred.Provider = (*Controller)(nil)
