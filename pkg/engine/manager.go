package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/transition"
)

// Manager drives states through the transition protocol.
//
// A Manager is meant for a single caller goroutine. Listeners may re-enter it
// from OnTransition.
type Manager[I, O any] struct {
	slot  transition.Slot[I, O]
	name  string
	hooks domain.LifecycleHooks
}

var _ ports.Transiter[any, any] = (*Manager[any, any])(nil)

// NewManager creates a Manager with an empty slot.
func NewManager[I, O any](opts ...Option) *Manager[I, O] {
	s := newSettings(opts)
	return &Manager[I, O]{
		name:  s.name,
		hooks: s.hooks,
	}
}

// Name returns the engine label.
func (m *Manager[I, O]) Name() string {
	return m.name
}

// Slot returns the slot holding the pending state.
func (m *Manager[I, O]) Slot() *transition.Slot[I, O] {
	return &m.slot
}

// AssignNext overwrites the pending state. A nil state clears it.
func (m *Manager[I, O]) AssignNext(state domain.State[I, O]) {
	m.slot.Set(state)
	logging.Log(slog.LevelInfo, "Assigned a new state", nil,
		"engine", m.name,
		"state", domain.Describe(state),
	)
}

// AssignNextFrom copies the pending state of another slot.
func (m *Manager[I, O]) AssignNextFrom(slot *transition.Slot[I, O]) {
	next, _ := slot.Next()
	m.AssignNext(next)
}

// TransitPath assigns the path's present state as pending and runs it on its own input.
// Before the listener fires, the path's next state becomes pending (or the slot
// is cleared when the path has none), see NextStateAssigner.
func (m *Manager[I, O]) TransitPath(ctx context.Context, path transition.Route[I, O], listener domain.Listener[I, O]) error {
	if domain.IsNil(path) {
		return fmt.Errorf("%w: cannot accept nil transition paths", domain.ErrInvalidArgument)
	}
	present := path.PresentState()
	if present == nil {
		return fmt.Errorf("path %q has no present state: %w", path.Name(), domain.ErrNoNextState)
	}
	m.AssignNext(present)
	return m.TransitInput(ctx, present.Input(), NewNextStateAssigner[I, O](m, path, listener))
}

// TransitPathAfter waits for delay, runs the pending state on the input of the
// path's present state, then assigns the path's next state as pending and
// removes the path's present state.
//
// If ctx is done before the delay elapses, it returns an error matching
// domain.ErrTransitionCanceled and ctx.Err(); neither the slot nor the path is touched.
func (m *Manager[I, O]) TransitPathAfter(ctx context.Context, delay time.Duration, path transition.Route[I, O], listener domain.Listener[I, O]) error {
	if domain.IsNil(path) {
		return fmt.Errorf("%w: cannot accept nil transition paths", domain.ErrInvalidArgument)
	}
	if err := wait(ctx, delay); err != nil {
		return err
	}
	present := path.PresentState()
	if present == nil {
		return fmt.Errorf("path %q has no present state: %w", path.Name(), domain.ErrNoNextState)
	}
	if err := m.TransitInput(ctx, present.Input(), listener); err != nil {
		return err
	}
	m.AssignNext(path.NextState())
	path.RemovePresentState()
	return nil
}

// TransitInputAfter waits for delay, then runs the pending state on input.
func (m *Manager[I, O]) TransitInputAfter(ctx context.Context, delay time.Duration, input I, listener domain.Listener[I, O]) error {
	if err := wait(ctx, delay); err != nil {
		return err
	}
	return m.TransitInput(ctx, input, listener)
}

// TransitInput runs the pending state on input: SetInput, OnStart, Invoke,
// listener.OnTransition (if listener is non-nil) and OnFinish, in that order.
//
// It fails with domain.ErrNoNextState when nothing is pending. An Invoke or
// listener error aborts the transition before OnFinish.
func (m *Manager[I, O]) TransitInput(ctx context.Context, input I, listener domain.Listener[I, O]) error {
	state, err := m.slot.Next()
	if err != nil {
		return err
	}
	label := domain.Describe(state)
	logging.Log(slog.LevelInfo, "Transiting into a new state", nil,
		"engine", m.name,
		"state", label,
	)

	started := time.Now()
	m.emitEnter(ctx, label, input)

	state.SetInput(input)
	state.OnStart()
	if err := state.Invoke(input); err != nil {
		err = fmt.Errorf("state %s failed: %w", label, err)
		m.emitLeave(ctx, label, started, err)
		return err
	}
	if !domain.IsNil(listener) {
		if err := listener.OnTransition(ctx, state); err != nil {
			m.emitLeave(ctx, label, started, err)
			return err
		}
	}
	state.OnFinish()

	m.emitLeave(ctx, label, started, nil)
	return nil
}

// Transit runs the pending state on its currently stored input.
func (m *Manager[I, O]) Transit(ctx context.Context, listener domain.Listener[I, O]) error {
	state, err := m.slot.Next()
	if err != nil {
		return err
	}
	return m.TransitInput(ctx, state.Input(), listener)
}

func (m *Manager[I, O]) emitEnter(ctx context.Context, label string, input I) {
	if m.hooks.OnStateEnter == nil {
		return
	}
	m.hooks.OnStateEnter(ctx, &domain.StateEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventStateEnter,
			Engine:    m.name,
		},
		State: label,
		Input: input,
	})
}

func (m *Manager[I, O]) emitLeave(ctx context.Context, label string, started time.Time, err error) {
	if m.hooks.OnStateLeave == nil {
		return
	}
	now := time.Now()
	m.hooks.OnStateLeave(ctx, &domain.StateEvent{
		EventBase: domain.EventBase{
			Timestamp: now,
			Type:      domain.EventStateLeave,
			Engine:    m.name,
		},
		State:    label,
		Duration: now.Sub(started),
		Err:      err,
	})
}

// wait blocks for delay unless ctx is done first. A non-positive delay returns immediately.
func wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", domain.ErrTransitionCanceled, ctx.Err())
	case <-timer.C:
		return nil
	}
}
