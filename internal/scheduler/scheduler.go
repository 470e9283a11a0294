// Package scheduler reruns the wrapped on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job is one scheduled run
type Job func(ctx context.Context) error

// Scheduler runs a job on a cron schedule in a fixed timezone
type Scheduler struct {
	spec     string
	schedule cron.Schedule
	job      Job
	logger   zerolog.Logger
	timezone *time.Location
}

// NewScheduler creates a new scheduler. spec is a standard five-field cron
// expression or a descriptor such as "@daily", evaluated in timezone.
func NewScheduler(spec, timezone string, job Job, logger zerolog.Logger) (*Scheduler, error) {
	// Load timezone
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %s: %w", timezone, err)
	}

	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schedule %q: %w", spec, err)
	}

	return &Scheduler{
		spec:     spec,
		schedule: schedule,
		job:      job,
		logger:   logger.With().Str("component", "scheduler").Logger(),
		timezone: loc,
	}, nil
}

// NextRun returns the first run after from, in the scheduler's timezone
func (s *Scheduler) NextRun(from time.Time) time.Time {
	return s.schedule.Next(from.In(s.timezone))
}

// Start runs the job on schedule until ctx is cancelled. A run still in
// progress when the next tick fires makes that tick skip.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info().Str("schedule", s.spec).Msg("Starting scheduler...")

	c := cron.New(
		cron.WithLocation(s.timezone),
		cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(&s.logger))),
	)
	c.Schedule(s.schedule, cron.FuncJob(func() {
		s.runJob(ctx)
	}))
	c.Start()

	nextRun := s.NextRun(time.Now())
	s.logger.Info().
		Time("next_run", nextRun).
		Dur("wait_duration", time.Until(nextRun)).
		Msg("Scheduler started and running")

	// Wait for context cancellation
	<-ctx.Done()

	s.logger.Info().Msg("Waiting for the running job to complete...")
	<-c.Stop().Done()
	s.logger.Info().Msg("Scheduler stopped")
	return ctx.Err()
}

// runJob executes one run, recovering from panics
func (s *Scheduler) runJob(ctx context.Context) {
	startTime := time.Now()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("Panic recovered in scheduled job")
		}
	}()

	s.logger.Info().Msg("Scheduled run started")

	if err := s.job(ctx); err != nil {
		s.logger.Error().
			Err(err).
			Dur("duration", time.Since(startTime)).
			Msg("Scheduled run failed")
		return
	}

	s.logger.Info().
		Dur("duration", time.Since(startTime)).
		Time("next_run", s.NextRun(time.Now())).
		Msg("Scheduled run completed")
}
