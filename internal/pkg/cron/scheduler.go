package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// job is an internal registration of a background task.
type job struct {
	name     string
	interval time.Duration
	timeout  time.Duration
	fn       func(ctx context.Context) error
}

// Scheduler runs registered background jobs on fixed intervals. Each job
// gets its own goroutine and a per-run timeout so a stuck job cannot block
// shutdown or its own next tick.
type Scheduler struct {
	mu     sync.Mutex
	jobs   []job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates an empty scheduler. Jobs must be registered before
// Start is called.
func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Register adds a job that runs every interval. The per-run timeout defaults
// to half the interval when timeout is zero.
func (s *Scheduler) Register(name string, interval time.Duration, timeout time.Duration, fn func(ctx context.Context) error) {
	if timeout <= 0 {
		timeout = interval / 2
	}

	s.mu.Lock()
	s.jobs = append(s.jobs, job{name: name, interval: interval, timeout: timeout, fn: fn})
	s.mu.Unlock()

	slog.Info("Background job registered", "job", name, "interval", interval, "timeout", timeout)
}

// Start launches all registered jobs. Each job runs once immediately, then
// on every tick of its interval.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.loop(j)
	}

	slog.Info("Background scheduler started", "jobs", len(s.jobs))
}

// Stop cancels all jobs and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("Background scheduler stopped")
}

func (s *Scheduler) loop(j job) {
	defer s.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	s.run(j)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.run(j)
		}
	}
}

// run executes a single job with its timeout and recovers panics so one bad
// run cannot take down the process.
func (s *Scheduler) run(j job) {
	ctx, cancel := context.WithTimeout(s.ctx, j.timeout)
	defer cancel()

	start := time.Now()

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic in job %s: %v", j.name, r)
			}
		}()
		return j.fn(ctx)
	}()

	if err != nil {
		slog.Error("Background job failed", "job", j.name, "error", err, "duration", time.Since(start))
		return
	}
	slog.Debug("Background job finished", "job", j.name, "duration", time.Since(start))
}

// RunAll executes every registered job once, synchronously. Used by tests
// and by the manual recompute path.
func (s *Scheduler) RunAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		if err := j.fn(ctx); err != nil {
			return fmt.Errorf("job %s: %w", j.name, err)
		}
	}
	return nil
}
