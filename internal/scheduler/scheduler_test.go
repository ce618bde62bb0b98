package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"blogpilot/internal/pipeline"
)

type countingRunner struct {
	calls atomic.Int32
	err   error
}

func (c *countingRunner) Run(ctx context.Context) (*pipeline.RunResult, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return &pipeline.RunResult{RunID: "test", Skipped: true}, nil
}

func TestStart_RunsImmediatelyAndStopsOnCancel(t *testing.T) {
	runner := &countingRunner{}
	s := New(runner, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	// The first run fires before the first tick.
	deadline := time.After(2 * time.Second)
	for runner.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("expected an immediate run on start")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop on cancellation")
	}

	if got := runner.calls.Load(); got != 1 {
		t.Errorf("expected exactly 1 run before any tick, got %d", got)
	}
}

func TestStart_ContinuesAfterFailedRun(t *testing.T) {
	runner := &countingRunner{err: errors.New("boom")}
	s := &Scheduler{runner: runner, interval: 20 * time.Millisecond}

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	_ = s.Start(ctx)

	if runner.calls.Load() < 2 {
		t.Errorf("failing runs must not stop the loop, got %d calls", runner.calls.Load())
	}
}

func TestNew_ClampsShortIntervals(t *testing.T) {
	s := New(&countingRunner{}, time.Second)
	if s.interval != time.Minute {
		t.Errorf("expected sub-minute intervals to clamp to 1m, got %v", s.interval)
	}
}
