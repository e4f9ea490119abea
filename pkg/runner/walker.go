package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/engine"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/transition"
	"github.com/google/uuid"
)

// Step describes one completed transition of a walk.
type Step struct {
	RunID   string
	Index   int
	State   string
	Tracer  any
	Elapsed time.Duration
}

// Result summarizes a walk.
type Result struct {
	RunID string
	Steps int
	// Last describes the last state that completed a transition.
	Last string
}

// Walker drives an engine along a route.
type Walker[I, O any] struct {
	settings
}

// NewWalker creates a Walker.
func NewWalker[I, O any](opts ...Option) *Walker[I, O] {
	s := settings{
		maxSteps: DefaultMaxSteps,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return &Walker[I, O]{settings: s}
}

// draining routes consume a state on every NextState call.
type draining interface {
	Len() int
}

// Walk transits path's present state, then keeps running the pending state
// until the route is exhausted.
//
// A draining route (a cascading path) is followed until its queue is empty. A
// plain path has exactly one next state, so the walk stops after running it.
// The walk also stops when the slot is empty, which lets a listener end it by
// clearing the engine's slot.
func (w *Walker[I, O]) Walk(ctx context.Context, eng ports.Transiter[I, O], path transition.Route[I, O], listener domain.Listener[I, O]) (Result, error) {
	res := Result{RunID: w.runID}
	if res.RunID == "" {
		res.RunID = uuid.NewString()
	}
	if domain.IsNil(path) {
		return res, fmt.Errorf("%w: cannot walk a nil path", domain.ErrInvalidArgument)
	}
	logger := w.logger.With("run_id", res.RunID, "path", path.Name())
	logger.Info("Walk started")

	track := &tracker[I, O]{next: listener}
	started := time.Now()

	if err := ctx.Err(); err != nil {
		return res, fmt.Errorf("%w: %w", domain.ErrTransitionCanceled, err)
	}
	if err := eng.TransitPath(ctx, path, track); err != nil {
		logger.Error("Walk failed", "step", 1, "err", err)
		return res, err
	}
	w.completed(&res, track, started)

	_, drains := path.(draining)
	for {
		pending, err := eng.Slot().Next()
		if errors.Is(err, domain.ErrNoNextState) {
			break
		}
		if w.maxSteps > 0 && res.Steps >= w.maxSteps {
			logger.Warn("Walk stopped at the step limit", "steps", res.Steps)
			return res, fmt.Errorf("walk %s: %w (%d)", res.RunID, domain.ErrStepLimit, w.maxSteps)
		}

		var l domain.Listener[I, O] = track
		if drains {
			l = engine.NewNextStateAssigner[I, O](eng, path, track)
		}

		started = time.Now()
		if err := eng.TransitInputAfter(ctx, w.delay, pending.Input(), l); err != nil {
			logger.Error("Walk failed", "step", res.Steps+1, "err", err)
			return res, err
		}
		w.completed(&res, track, started)

		if !drains {
			break
		}
	}

	logger.Info("Walk finished", "steps", res.Steps, "last", res.Last)
	return res, nil
}

func (w *Walker[I, O]) completed(res *Result, track *tracker[I, O], started time.Time) {
	res.Steps++
	step := Step{
		RunID:   res.RunID,
		Index:   res.Steps,
		Elapsed: time.Since(started),
	}
	if track.last != nil {
		step.State = domain.Describe(track.last)
		step.Tracer = track.last.Tracer()
		res.Last = step.State
	}
	w.logger.Debug("Step completed",
		"run_id", step.RunID,
		"step", step.Index,
		"state", step.State,
		"elapsed", step.Elapsed,
	)
	if w.onStep != nil {
		w.onStep(step)
	}
}

// tracker remembers the state of the latest transition.
type tracker[I, O any] struct {
	next domain.Listener[I, O]
	last domain.State[I, O]
}

func (t *tracker[I, O]) OnTransition(ctx context.Context, state domain.State[I, O]) error {
	t.last = state
	if t.next == nil {
		return nil
	}
	return t.next.OnTransition(ctx, state)
}
