// Package safego launches background goroutines that cannot crash the server.
package safego

import "log/slog"

// Go runs fn on its own goroutine and swallows any panic, logging it instead.
// Audit shipping, scheduled jobs, and other fire-and-forget work all go
// through here: a panic in one of them must not take the HTTP server down,
// and without the recover it would.
func Go(fn func()) {
	go func() {
		defer logPanic()
		fn()
	}()
}

func logPanic() {
	if r := recover(); r != nil {
		slog.Error("panic in background goroutine", "panic", r)
	}
}
