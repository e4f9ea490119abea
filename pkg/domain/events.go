package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStateEnter    EventType = "state_enter"
	EventStateLeave    EventType = "state_leave"
	EventDuplicatePath EventType = "duplicate_path"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Engine    string    `json:"engine,omitempty"`
}

// StateEvent represents entry into or exit from a state's protocol.
type StateEvent struct {
	EventBase
	State string `json:"state"`
	Input any    `json:"input,omitempty"`
	// Duration is only set on leave events.
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// PathEvent represents a deterministic check on a transition path.
type PathEvent struct {
	EventBase
	Path string `json:"path"`
}

// LifecycleHooks defines callbacks for engine observability.
// Any hook may be nil.
type LifecycleHooks struct {
	OnStateEnter    func(context.Context, *StateEvent)
	OnStateLeave    func(context.Context, *StateEvent)
	OnDuplicatePath func(context.Context, *PathEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStateEnter:    chain(h.OnStateEnter, other.OnStateEnter),
		OnStateLeave:    chain(h.OnStateLeave, other.OnStateLeave),
		OnDuplicatePath: chain(h.OnDuplicatePath, other.OnDuplicatePath),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
