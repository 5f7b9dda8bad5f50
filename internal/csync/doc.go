// Package csync provides small generic containers that are safe for
// concurrent use.
//
// Map backs the shortcut store and the extension registry, which are read
// from the UI goroutine and written from worker goroutines. Slice backs the
// idle queue, where producers append callbacks from any goroutine and the UI
// goroutine drains them in one step.
//
// Example usage:
//
//	shortcuts := csync.NewMap[string, *Shortcut]()
//	shortcuts.Set(sc.ID, sc)
//	if sc, ok := shortcuts.Get(id); ok {
//		// use sc
//	}
//
//	pending := csync.NewSlice[func()]()
//	pending.Append(fn)
//	for _, fn := range pending.Drain() {
//		fn()
//	}
package csync
