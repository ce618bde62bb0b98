// Package scheduler runs the pipeline on a fixed interval until the
// context is cancelled.
package scheduler

import (
	"context"
	"time"

	"blogpilot/internal/logger"
	"blogpilot/internal/pipeline"
)

// Runner is the single operation the scheduler drives.
type Runner interface {
	Run(ctx context.Context) (*pipeline.RunResult, error)
}

// Scheduler triggers runs on a ticker. One run executes immediately on
// Start, then one per interval. A failing run is logged and the loop
// continues; only context cancellation stops it.
type Scheduler struct {
	runner   Runner
	interval time.Duration
}

// New creates a scheduler. Intervals under a minute are raised to a
// minute to avoid hammering the external APIs on a misconfiguration.
func New(runner Runner, interval time.Duration) *Scheduler {
	if interval < time.Minute {
		interval = time.Minute
	}
	return &Scheduler{runner: runner, interval: interval}
}

// Start blocks until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	logger.Info("Scheduler starting", "interval", s.interval.String())

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Scheduler stopping")
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	res, err := s.runner.Run(ctx)
	if err != nil {
		logger.Error("Scheduled run failed", err)
		return
	}
	if res.Skipped {
		logger.Info("Scheduled run skipped, no distinct topic", "run_id", res.RunID)
		return
	}
	logger.Info("Scheduled run complete",
		"run_id", res.RunID,
		"topic", res.Topic.Text,
		"duration", res.Duration.String())
}
