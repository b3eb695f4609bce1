// rate_refresh.go implements the RateRefreshJob background job, which
// refreshes the exchange-rate cache once a day at a configured wall-clock
// time. The loop checks once a minute rather than sleeping until the
// trigger, so clock adjustments and suspend/resume cannot strand the timer.
// A trigger detected late still fires within the misfire grace window;
// beyond it, the run is skipped until the next day.
package jobs

import (
	"context"
	"fmt"
	"log"
	"time"
)

// RateRefreshJobID keys the job in the Scheduler.
const RateRefreshJobID = "exchange-rate-refresh"

// Refresher is the refresh surface of the rates service.
type Refresher interface {
	Refresh(ctx context.Context) (int, error)
}

// RateRefreshJob fires a rate refresh daily at hour:minute server-local.
type RateRefreshJob struct {
	refresher Refresher
	hour      int
	minute    int
	grace     time.Duration
	stopChan  chan struct{}

	// checkInterval and now are fixed in production; tests shrink the
	// interval and substitute a fake clock.
	checkInterval time.Duration
	now           func() time.Time
}

// NewRateRefreshJob creates a rate refresh job firing daily at refreshAt
// ("HH:MM", 24h). graceMinutes bounds how late a missed trigger may still
// fire; values <= 0 default to 15.
func NewRateRefreshJob(refresher Refresher, refreshAt string, graceMinutes int) (*RateRefreshJob, error) {
	t, err := time.Parse("15:04", refreshAt)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh time %q (expected HH:MM): %w", refreshAt, err)
	}
	if graceMinutes <= 0 {
		graceMinutes = 15
	}
	return &RateRefreshJob{
		refresher:     refresher,
		hour:          t.Hour(),
		minute:        t.Minute(),
		grace:         time.Duration(graceMinutes) * time.Minute,
		stopChan:      make(chan struct{}),
		checkInterval: time.Minute,
		now:           time.Now,
	}, nil
}

// Start begins the refresh loop. If the process starts inside the grace
// window of today's trigger (a restart shortly after the scheduled time),
// the missed run fires immediately. The loop exits when ctx is cancelled or
// Stop() is called.
func (j *RateRefreshJob) Start(ctx context.Context) {
	log.Printf("rate refresh job started (daily at %02d:%02d, grace window %v)", j.hour, j.minute, j.grace)

	next := j.triggerFor(j.now())
	if elapsed := j.now().Sub(next); elapsed >= 0 && elapsed <= j.grace {
		j.runRefresh(ctx)
		next = next.Add(24 * time.Hour)
	} else if elapsed > j.grace {
		next = next.Add(24 * time.Hour)
	}

	ticker := time.NewTicker(j.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := j.now()
			if now.Before(next) {
				continue
			}
			if now.Sub(next) <= j.grace {
				j.runRefresh(ctx)
			} else {
				log.Printf("rate refresh: missed %s trigger beyond grace window, skipping to next day",
					next.Format("2006-01-02 15:04"))
			}
			next = next.Add(24 * time.Hour)
		case <-j.stopChan:
			log.Println("rate refresh job stopped")
			return
		case <-ctx.Done():
			log.Println("rate refresh job context cancelled")
			return
		}
	}
}

// Stop signals the refresh loop to exit.
func (j *RateRefreshJob) Stop() {
	close(j.stopChan)
}

// triggerFor returns the trigger time on the same day as t.
func (j *RateRefreshJob) triggerFor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), j.hour, j.minute, 0, 0, t.Location())
}

func (j *RateRefreshJob) runRefresh(ctx context.Context) {
	written, err := j.refresher.Refresh(ctx)
	if err != nil {
		log.Printf("rate refresh: failed: %v", err)
		return
	}
	log.Printf("rate refresh: updated %d currency rate(s)", written)
}
