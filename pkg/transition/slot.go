package transition

import "github.com/aretw0/automata/pkg/domain"

// Slot holds at most one next state.
// The zero value is an empty slot ready to use.
type Slot[I, O any] struct {
	next domain.State[I, O]
}

// NewSlot creates a slot holding next (which may be nil).
func NewSlot[I, O any](next domain.State[I, O]) *Slot[I, O] {
	return &Slot[I, O]{next: next}
}

// Set overwrites the next state unconditionally. A nil state clears the slot.
func (s *Slot[I, O]) Set(next domain.State[I, O]) {
	s.next = next
}

// Next returns the next state, or ErrNoNextState if the slot is empty.
func (s *Slot[I, O]) Next() (domain.State[I, O], error) {
	if s.next == nil {
		return nil, domain.ErrNoNextState
	}
	return s.next, nil
}

// HasNext reports whether a next state is assigned.
func (s *Slot[I, O]) HasNext() bool {
	return s.next != nil
}

// Clear drops the reference to the next state. The state itself is not touched.
func (s *Slot[I, O]) Clear() {
	s.next = nil
}
