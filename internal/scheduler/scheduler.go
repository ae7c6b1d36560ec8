// Package scheduler drives the coordinators on their poll intervals.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"
)

// Poller is anything that can run one poll cycle. Both coordinator
// kinds satisfy it.
type Poller interface {
	Refresh(ctx context.Context) error
}

// Job binds a poller to an interval.
type Job struct {
	// Name identifies the job in logs.
	Name string

	// Poller runs the cycle.
	Poller Poller

	// Interval between cycle starts.
	Interval time.Duration

	// Timeout bounds one cycle. Zero means no per-cycle deadline beyond
	// the scheduler's base context.
	Timeout time.Duration
}

// Scheduler runs the registered jobs until stopped. Each job runs in
// singleton mode, so a slow cycle delays its own next run rather than
// overlapping it, and an immediate first run primes the snapshots at
// startup.
type Scheduler struct {
	scheduler *gocron.Scheduler
	jobs      []Job
	logger    zerolog.Logger

	cancel context.CancelFunc
}

// New creates a scheduler for the given jobs.
func New(jobs []Job, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		jobs:      jobs,
		logger:    logger.With().Str("component", "scheduler").Logger(),
	}
}

// Start registers every job and starts the scheduler asynchronously.
// Cycles inherit from ctx, so cancelling it aborts in-flight polls.
func (s *Scheduler) Start(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)

	for _, job := range s.jobs {
		job := job
		_, err := s.scheduler.Every(job.Interval).
			SingletonMode().
			StartImmediately().
			Do(func() { s.run(ctx, job) })
		if err != nil {
			s.cancel()
			return err
		}
		s.logger.Info().
			Str("job", job.Name).
			Dur("interval", job.Interval).
			Msg("job scheduled")
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) run(ctx context.Context, job Job) {
	if ctx.Err() != nil {
		return
	}

	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}

	start := time.Now()
	if err := job.Poller.Refresh(ctx); err != nil {
		s.logger.Error().
			Err(err).
			Str("job", job.Name).
			Dur("duration", time.Since(start)).
			Msg("poll cycle failed")
		return
	}
	s.logger.Debug().
		Str("job", job.Name).
		Dur("duration", time.Since(start)).
		Msg("poll cycle completed")
}

// Stop cancels in-flight cycles and stops the scheduler.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.scheduler.Stop()
}
