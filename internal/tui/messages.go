package tui

// idleMsg carries callbacks posted to the idle queue.
type idleMsg struct {
	fns []func()
}

// activatedMsg reports the result of an item's OnEnter.
type activatedMsg struct {
	name string
	err  error
}
