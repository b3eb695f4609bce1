package safego

import (
	"testing"
	"time"
)

func waitOrFail(t *testing.T, done <-chan struct{}, msg string) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Error(msg)
	}
}

func TestGo_RunsFunction(t *testing.T) {
	done := make(chan struct{})
	Go(func() { close(done) })
	waitOrFail(t, done, "background function never ran")
}

func TestGo_RecoversPanic(t *testing.T) {
	done := make(chan struct{})
	Go(func() {
		defer close(done)
		panic("deliberate panic")
	})
	// The process surviving to this point is the real assertion.
	waitOrFail(t, done, "goroutine did not finish after panicking")
}

func TestGo_PanicDoesNotBlockLaterWork(t *testing.T) {
	Go(func() { panic("first launch dies") })

	done := make(chan struct{})
	Go(func() { close(done) })
	waitOrFail(t, done, "launcher unusable after a recovered panic")
}
