package transition

import "github.com/aretw0/automata/pkg/domain"

// Route is the view of a transition path consumed by the engines.
// Path and CascadingPath both satisfy it.
type Route[I, O any] interface {
	Name() string
	SetName(name string)

	AssignPresentState(state domain.State[I, O]) error
	AssignNextState(state domain.State[I, O]) error

	// PresentState and NextState return nil when there is nothing to return.
	// On cascading paths both calls consume the head of the queue.
	PresentState() domain.State[I, O]
	NextState() domain.State[I, O]

	HasPresentState() bool
	HasNextState() bool

	RemovePresentState()
	RemoveNextState()

	// Fingerprint computes the replay key without consuming any state.
	Fingerprint() Fingerprint
}

// Path is a named pair of present and next states.
//
// The name is owned by the caller and may change at any time. Deterministic
// engines key their bookkeeping by name, so renaming a path escapes the
// uniqueness check on purpose.
type Path[I, O any] struct {
	id      string
	name    string
	present domain.State[I, O]
	next    Slot[I, O]
}

var _ Route[any, any] = (*Path[any, any])(nil)

// NewPath creates a path with optional present and next states.
func NewPath[I, O any](name string, present, next domain.State[I, O]) *Path[I, O] {
	p := &Path[I, O]{id: newRouteID(), name: name, present: present}
	p.next.Set(next)
	return p
}

func (p *Path[I, O]) Name() string        { return p.name }
func (p *Path[I, O]) SetName(name string) { p.name = name }

// AssignPresentState overwrites the present state. It never fails on a Path.
func (p *Path[I, O]) AssignPresentState(state domain.State[I, O]) error {
	p.present = state
	return nil
}

// AssignNextState overwrites the next state. It never fails on a Path.
func (p *Path[I, O]) AssignNextState(state domain.State[I, O]) error {
	p.next.Set(state)
	return nil
}

func (p *Path[I, O]) PresentState() domain.State[I, O] { return p.present }

func (p *Path[I, O]) NextState() domain.State[I, O] {
	next, err := p.next.Next()
	if err != nil {
		return nil
	}
	return next
}

func (p *Path[I, O]) HasPresentState() bool { return p.present != nil }
func (p *Path[I, O]) HasNextState() bool    { return p.next.HasNext() }

// RemovePresentState drops the reference to the present state.
func (p *Path[I, O]) RemovePresentState() { p.present = nil }

// RemoveNextState drops the reference to the next state.
func (p *Path[I, O]) RemoveNextState() { p.next.Clear() }

// RemoveAll drops both references.
func (p *Path[I, O]) RemoveAll() {
	p.RemovePresentState()
	p.RemoveNextState()
}

func (p *Path[I, O]) Fingerprint() Fingerprint {
	if p.id == "" {
		p.id = newRouteID()
	}
	return NewFingerprint[I, O](p.name, p.id, p.present, p.NextState())
}
