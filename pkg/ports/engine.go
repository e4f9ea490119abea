package ports

import (
	"context"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/transition"
)

// Transiter defines the surface shared by transition engines.
// This is the interface used by runners that drive an engine step by step.
type Transiter[I, O any] interface {
	// AssignNext sets the pending state.
	AssignNext(state domain.State[I, O])

	// Slot exposes the pending-state holder.
	Slot() *transition.Slot[I, O]

	// TransitPath runs the path's present state and schedules its next state.
	TransitPath(ctx context.Context, path transition.Route[I, O], listener domain.Listener[I, O]) error

	// TransitInputAfter waits for delay, then runs the pending state on input.
	TransitInputAfter(ctx context.Context, delay time.Duration, input I, listener domain.Listener[I, O]) error

	// Transit runs the pending state on its own stored input.
	Transit(ctx context.Context, listener domain.Listener[I, O]) error
}
