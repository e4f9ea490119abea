package runner

import (
	"log/slog"
	"time"
)

// DefaultMaxSteps bounds a walk when no limit is configured.
const DefaultMaxSteps = 10000

type settings struct {
	delay    time.Duration
	maxSteps int
	runID    string
	logger   *slog.Logger
	onStep   func(Step)
}

// Option defines a functional option for configuring the Walker.
type Option func(*settings)

// WithDelay waits before every step after the first.
func WithDelay(d time.Duration) Option {
	return func(s *settings) {
		s.delay = d
	}
}

// WithMaxSteps sets the step limit. Zero or less disables it.
func WithMaxSteps(n int) Option {
	return func(s *settings) {
		s.maxSteps = n
	}
}

// WithRunID fixes the run ID instead of generating one per walk.
func WithRunID(id string) Option {
	return func(s *settings) {
		s.runID = id
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithStepHook calls fn after every completed step.
func WithStepHook(fn func(Step)) Option {
	return func(s *settings) {
		s.onStep = fn
	}
}
