package domain

import "context"

// Listener is notified synchronously from within a transition, after Invoke and
// before OnFinish, with the state currently executing.
//
// A listener may assign a new next state and transit again on the same engine.
// Deep synchronous re-entrancy grows the call stack, see runner.Walker for an
// explicit loop.
type Listener[I, O any] interface {
	OnTransition(ctx context.Context, present State[I, O]) error
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc[I, O any] func(ctx context.Context, present State[I, O]) error

// OnTransition calls f(ctx, present).
func (f ListenerFunc[I, O]) OnTransition(ctx context.Context, present State[I, O]) error {
	return f(ctx, present)
}
