package deferred

import (
	"slices"

	"github.com/billie-coop/lumen/internal/result"
)

// UI is the rendering side the coordinator drives. Implementations are not
// required to be goroutine safe; the coordinator only reaches them through
// its Dispatcher.
type UI interface {
	Render(items []result.Item)
	HideAndClearInput()
}

// Action is what a response asks the launcher to do.
type Action interface {
	Run(ui UI) error
	// KeepOpen reports whether the window stays visible after Run.
	KeepOpen() bool
}

// DoNothing has no effect and keeps the window open. Submit returns it.
type DoNothing struct{}

func (DoNothing) Run(UI) error   { return nil }
func (DoNothing) KeepOpen() bool { return true }

// RenderResultList replaces the visible results.
type RenderResultList []result.Item

func (r RenderResultList) Run(ui UI) error {
	ui.Render(slices.Clone([]result.Item(r)))
	return nil
}

func (RenderResultList) KeepOpen() bool { return true }

// HideWindow closes the launcher without rendering anything.
type HideWindow struct{}

func (HideWindow) Run(UI) error   { return nil }
func (HideWindow) KeepOpen() bool { return false }

// Func adapts a plain function. Open controls KeepOpen.
type Func struct {
	Fn   func(UI) error
	Open bool
}

func (f Func) Run(ui UI) error {
	if f.Fn == nil {
		return nil
	}
	return f.Fn(ui)
}

func (f Func) KeepOpen() bool { return f.Open }

// dispatchedUI forwards every call through the coordinator's Dispatcher so
// actions running on a worker goroutine never touch the UI directly. Calls
// that reach the UI goroutine after req was superseded are dropped.
type dispatchedUI struct {
	c   *Coordinator
	req *activeRequest
}

func (d dispatchedUI) Render(items []result.Item) {
	items = slices.Clone(items)
	d.c.post(d.req, func() { d.c.ui.Render(items) })
}

func (d dispatchedUI) HideAndClearInput() {
	d.c.post(d.req, d.c.ui.HideAndClearInput)
}
