// Package deferred coordinates the one in-flight extension request.
//
// A query handed to an extension is answered asynchronously, from a worker
// goroutine, possibly long after the user has typed something else. The
// Coordinator keeps the single active (event, provider) pair and uses it to
// decide which answers still matter:
//
//	action := coord.Submit(event, provider) // arms the "Loading…" timer
//	_ = action.Run(ui)                      // DoNothing: the real effect comes later
//	...
//	coord.OnQueryChanged()                  // user typed: forget the request
//	...
//	err := coord.HandleResponse(resp)       // from the extension worker
//
// Responses are matched by identity. Anything that does not carry the exact
// *Event and Provider of the active request is dropped without touching the
// UI. If the provider has not answered after LoadingDelay, a single
// non-highlightable "Loading…" row with the provider icon is rendered; the
// real answer later replaces it.
//
// The coordinator never calls the UI directly. Every render and every
// hide request is posted to a Dispatcher whose callbacks run on the UI
// goroutine, so HandleResponse is safe to call from any goroutine.
package deferred
