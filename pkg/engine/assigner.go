package engine

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/transition"
)

// NextStateTarget is the part of an engine a NextStateAssigner writes to.
type NextStateTarget[I, O any] interface {
	AssignNext(state domain.State[I, O])
	Slot() *transition.Slot[I, O]
}

// NextStateAssigner is a Listener that schedules the path's next state on an
// engine before forwarding to the wrapped listener.
//
// When the path has no next state the engine's slot is cleared, so the following
// Transit fails with domain.ErrNoNextState: the dead end of the chain.
type NextStateAssigner[I, O any] struct {
	target   NextStateTarget[I, O]
	path     transition.Route[I, O]
	listener domain.Listener[I, O]
}

// NewNextStateAssigner wraps listener (which may be nil).
func NewNextStateAssigner[I, O any](target NextStateTarget[I, O], path transition.Route[I, O], listener domain.Listener[I, O]) *NextStateAssigner[I, O] {
	return &NextStateAssigner[I, O]{
		target:   target,
		path:     path,
		listener: listener,
	}
}

// OnTransition assigns the next state and calls the wrapped listener.
func (a *NextStateAssigner[I, O]) OnTransition(ctx context.Context, present domain.State[I, O]) error {
	if next := a.path.NextState(); next != nil {
		a.target.AssignNext(next)
	} else {
		a.target.Slot().Clear()
	}
	if domain.IsNil(a.listener) {
		return nil
	}
	return a.listener.OnTransition(ctx, present)
}
