package deferred

import "time"

// Dispatcher runs callbacks on the UI goroutine. Post must not block and
// must not run fn before returning.
type Dispatcher interface {
	Post(fn func())
}

// Scheduler arms one-shot timers.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancellable pending callback. Stop is safe to call any number
// of times, before or after the callback ran.
type Timer interface {
	Stop() bool
}

// ClockScheduler schedules on the runtime clock.
type ClockScheduler struct{}

// AfterFunc wraps time.AfterFunc.
func (ClockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
