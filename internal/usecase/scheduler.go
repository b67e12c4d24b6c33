package usecase

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"ArticlesPublisher/internal/ports"
)

// Delays controls the pause after each run, keyed by how the run ended.
type Delays struct {
	MinBetween     time.Duration
	MaxBetween     time.Duration
	Idle           time.Duration
	Error          time.Duration
	PublishFailure time.Duration
	Duplicate      time.Duration
}

// DefaultDelays paces roughly fifteen articles a day.
func DefaultDelays() Delays {
	return Delays{
		MinBetween:     80 * time.Minute,
		MaxBetween:     100 * time.Minute,
		Idle:           time.Hour,
		Error:          10 * time.Minute,
		PublishFailure: 5 * time.Minute,
		Duplicate:      10 * time.Second,
	}
}

// After returns the pause following a run that ended with err.
func (d Delays) After(err error, rnd *rand.Rand) time.Duration {
	switch {
	case err == nil:
		return d.between(rnd)
	case errors.Is(err, ErrNoTask):
		return d.Idle
	case errors.Is(err, ErrDuplicate):
		return d.Duplicate
	case errors.Is(err, ErrPublish):
		return d.PublishFailure
	default:
		return d.Error
	}
}

func (d Delays) between(rnd *rand.Rand) time.Duration {
	if d.MaxBetween <= d.MinBetween {
		return d.MinBetween
	}
	span := int64(d.MaxBetween - d.MinBetween)
	var n int64
	if rnd != nil {
		n = rnd.Int64N(span + 1)
	} else {
		n = rand.Int64N(span + 1)
	}
	return d.MinBetween + time.Duration(n)
}

// Scheduler wires the loop driver with the pipeline use case.
type Scheduler struct {
	driver   ports.Scheduler
	pipeline *Pipeline
	delays   Delays
	logger   *slog.Logger
}

// NewScheduler returns a helper to start/stop the publishing loop.
func NewScheduler(driver ports.Scheduler, pipeline *Pipeline, delays Delays, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if delays == (Delays{}) {
		delays = DefaultDelays()
	}
	return &Scheduler{driver: driver, pipeline: pipeline, delays: delays, logger: logger}
}

// Start registers the pipeline with the provided driver.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.pipeline == nil {
		return nil
	}

	return s.driver.Start(ctx, s.job(ctx))
}

func (s *Scheduler) job(ctx context.Context) func(time.Time) time.Duration {
	return func(trigger time.Time) time.Duration {
		_, err := s.pipeline.RunOnce(ctx)
		wait := s.delays.After(err, nil)

		switch {
		case err == nil:
			s.logger.Info("run finished", "started", trigger, "next_in", wait)
		case errors.Is(err, ErrNoTask):
			s.logger.Info("all combinations posted", "reason", err, "next_in", wait)
		case errors.Is(err, ErrDuplicate):
			s.logger.Warn("duplicate skipped", "error", err, "next_in", wait)
		case errors.Is(err, context.Canceled):
			s.logger.Info("run cancelled")
		default:
			s.logger.Error("run failed", "error", err, "next_in", wait)
		}
		return wait
	}
}

// Stop gracefully tears down the underlying driver.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
