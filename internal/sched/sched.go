package sched

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Task is a unit of recurring work. The context is cancelled on shutdown.
type Task func(ctx context.Context)

type job struct {
	name     string
	task     Task
	interval time.Duration // > 0 for interval jobs
	hour     int           // fixed-time jobs, UTC
	minute   int
	daily    bool
}

// Scheduler runs registered jobs until stopped.
type Scheduler struct {
	logger *slog.Logger
	jobs   []job

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates an empty scheduler.
func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{logger: logger}
}

// Every registers a job that runs immediately on Start and then on every
// interval tick.
func (s *Scheduler) Every(name string, interval time.Duration, task Task) {
	s.jobs = append(s.jobs, job{name: name, task: task, interval: interval})
}

// DailyAt registers a job that runs once a day at the given UTC time.
func (s *Scheduler) DailyAt(name string, hour, minute int, task Task) {
	s.jobs = append(s.jobs, job{name: name, task: task, hour: hour, minute: minute, daily: true})
}

// Start launches one goroutine per registered job.
func (s *Scheduler) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.run(j)
	}

	s.logger.Info("scheduler started", "jobs", len(s.jobs))
	return nil
}

// Stop cancels all jobs and waits for them to drain.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) run(j job) {
	defer s.wg.Done()

	if j.daily {
		s.runDaily(j)
		return
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	// Run immediately on start.
	s.safeRun(j)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.safeRun(j)
		}
	}
}

func (s *Scheduler) runDaily(j job) {
	for {
		wait := untilNext(time.Now().UTC(), j.hour, j.minute)
		timer := time.NewTimer(wait)

		select {
		case <-s.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.safeRun(j)
		}
	}
}

// untilNext returns the duration from now to the next hh:mm occurrence.
func untilNext(now time.Time, hour, minute int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

// safeRun executes a job, containing panics to the single run.
func (s *Scheduler) safeRun(j job) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("job panicked",
				"job", j.name,
				"panic", r,
			)
		}
	}()

	j.task(s.ctx)
}
