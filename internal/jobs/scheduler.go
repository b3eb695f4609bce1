// Package jobs contains the background workers that run alongside the HTTP
// server, plus the Scheduler that owns their lifecycles.
package jobs

import (
	"context"
	"log"
	"sync"

	"github.com/churchsite/church-backend/internal/safego"
)

// Job is a long-running background worker. Start blocks until the context is
// cancelled or Stop is called; Stop must be safe to call exactly once.
type Job interface {
	Start(ctx context.Context)
	Stop()
}

// Scheduler owns registered background jobs, keyed by a stable ID.
// Registering an ID that is already running stops and replaces the existing
// job rather than starting a duplicate, so re-wiring during config reload
// can never leave two timers firing for the same work.
type Scheduler struct {
	mu   sync.Mutex
	jobs map[string]*managedJob
}

type managedJob struct {
	job  Job
	done chan struct{}
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{jobs: make(map[string]*managedJob)}
}

// Register starts job under id on its own goroutine. An existing job with
// the same id is stopped and joined first.
func (s *Scheduler) Register(ctx context.Context, id string, job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.jobs[id]; ok {
		log.Printf("scheduler: replacing job %q", id)
		existing.job.Stop()
		<-existing.done
	}

	m := &managedJob{job: job, done: make(chan struct{})}
	s.jobs[id] = m

	safego.Go(func() {
		defer close(m.done)
		job.Start(ctx)
	})
}

// Running reports whether a job with the given id is registered.
func (s *Scheduler) Running(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.jobs[id]
	return ok
}

// Shutdown stops all jobs and waits for their goroutines to exit.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	jobs := make([]*managedJob, 0, len(s.jobs))
	for id, m := range s.jobs {
		jobs = append(jobs, m)
		delete(s.jobs, id)
	}
	s.mu.Unlock()

	for _, m := range jobs {
		m.job.Stop()
		<-m.done
	}
}
