package jobs

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// countingRefresher counts Refresh calls.
type countingRefresher struct {
	calls atomic.Int32
}

func (c *countingRefresher) Refresh(_ context.Context) (int, error) {
	c.calls.Add(1)
	return 5, nil
}

// fakeClock hands out a controllable wall time.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

// startJob runs the job on a goroutine and returns a join function.
func startJob(j *RateRefreshJob) func() {
	done := make(chan struct{})
	go func() {
		defer close(done)
		j.Start(context.Background())
	}()
	return func() {
		j.Stop()
		<-done
	}
}

func waitForCalls(t *testing.T, r *countingRefresher, want int32) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for r.calls.Load() < want {
		select {
		case <-deadline:
			t.Fatalf("timed out: refresher called %d times, want %d", r.calls.Load(), want)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestNewRateRefreshJob(t *testing.T) {
	t.Run("valid time parses", func(t *testing.T) {
		j, err := NewRateRefreshJob(&countingRefresher{}, "02:30", 10)
		if err != nil {
			t.Fatalf("NewRateRefreshJob() error: %v", err)
		}
		if j.hour != 2 || j.minute != 30 {
			t.Errorf("parsed trigger = %02d:%02d, want 02:30", j.hour, j.minute)
		}
		if j.grace != 10*time.Minute {
			t.Errorf("grace = %v, want 10m", j.grace)
		}
	})

	t.Run("grace defaults to 15 minutes", func(t *testing.T) {
		j, err := NewRateRefreshJob(&countingRefresher{}, "02:00", 0)
		if err != nil {
			t.Fatal(err)
		}
		if j.grace != 15*time.Minute {
			t.Errorf("grace = %v, want 15m default", j.grace)
		}
	})

	t.Run("invalid time rejected", func(t *testing.T) {
		for _, bad := range []string{"", "25:00", "2pm", "02:60"} {
			if _, err := NewRateRefreshJob(&countingRefresher{}, bad, 0); err == nil {
				t.Errorf("NewRateRefreshJob(%q) expected error, got nil", bad)
			}
		}
	})
}

func TestRateRefreshJob_FiresAtTrigger(t *testing.T) {
	refresher := &countingRefresher{}
	j, err := NewRateRefreshJob(refresher, "02:00", 15)
	if err != nil {
		t.Fatal(err)
	}

	clock := &fakeClock{t: time.Date(2026, 3, 1, 1, 0, 0, 0, time.UTC)}
	j.now = clock.now
	j.checkInterval = time.Millisecond

	stop := startJob(j)
	defer stop()

	// Before the trigger: nothing fires.
	time.Sleep(20 * time.Millisecond)
	if refresher.calls.Load() != 0 {
		t.Fatalf("refresher fired %d times before trigger", refresher.calls.Load())
	}

	// Cross the trigger.
	clock.set(time.Date(2026, 3, 1, 2, 0, 30, 0, time.UTC))
	waitForCalls(t, refresher, 1)

	// A day later it fires again.
	clock.set(time.Date(2026, 3, 2, 2, 1, 0, 0, time.UTC))
	waitForCalls(t, refresher, 2)
}

func TestRateRefreshJob_MissedTriggerWithinGraceFiresOnStart(t *testing.T) {
	refresher := &countingRefresher{}
	j, err := NewRateRefreshJob(refresher, "02:00", 15)
	if err != nil {
		t.Fatal(err)
	}

	// Process starts 5 minutes after the trigger: inside the grace window.
	clock := &fakeClock{t: time.Date(2026, 3, 1, 2, 5, 0, 0, time.UTC)}
	j.now = clock.now
	j.checkInterval = time.Millisecond

	stop := startJob(j)
	defer stop()

	waitForCalls(t, refresher, 1)
}

func TestRateRefreshJob_MissedTriggerBeyondGraceSkips(t *testing.T) {
	refresher := &countingRefresher{}
	j, err := NewRateRefreshJob(refresher, "02:00", 15)
	if err != nil {
		t.Fatal(err)
	}

	// Process starts an hour late: the run is skipped until the next day.
	clock := &fakeClock{t: time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)}
	j.now = clock.now
	j.checkInterval = time.Millisecond

	stop := startJob(j)
	defer stop()

	time.Sleep(20 * time.Millisecond)
	if refresher.calls.Load() != 0 {
		t.Fatalf("refresher fired %d times despite missed grace window", refresher.calls.Load())
	}

	// Next day's trigger still fires.
	clock.set(time.Date(2026, 3, 2, 2, 0, 30, 0, time.UTC))
	waitForCalls(t, refresher, 1)
}

func TestRateRefreshJob_LateTickWithinGraceStillFires(t *testing.T) {
	refresher := &countingRefresher{}
	j, err := NewRateRefreshJob(refresher, "02:00", 15)
	if err != nil {
		t.Fatal(err)
	}

	clock := &fakeClock{t: time.Date(2026, 3, 1, 1, 0, 0, 0, time.UTC)}
	j.now = clock.now
	j.checkInterval = time.Millisecond

	stop := startJob(j)
	defer stop()

	// The loop notices 10 minutes late (suspend/resume) but within grace.
	clock.set(time.Date(2026, 3, 1, 2, 10, 0, 0, time.UTC))
	waitForCalls(t, refresher, 1)
}

func TestRateRefreshJob_StopEndsLoop(t *testing.T) {
	j, err := NewRateRefreshJob(&countingRefresher{}, "02:00", 15)
	if err != nil {
		t.Fatal(err)
	}
	clock := &fakeClock{t: time.Date(2026, 3, 1, 1, 0, 0, 0, time.UTC)}
	j.now = clock.now
	j.checkInterval = time.Millisecond

	done := make(chan struct{})
	go func() {
		defer close(done)
		j.Start(context.Background())
	}()

	j.Stop()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start() did not return after Stop()")
	}
}
