package demo

import (
	"errors"
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/transition"
)

// EchoState reports its input as its tracer.
type EchoState struct {
	input  string
	tracer string
}

// NewEchoState creates a state whose input is input.
func NewEchoState(input string) *EchoState {
	return &EchoState{input: input}
}

func (s *EchoState) OnStart() {}

func (s *EchoState) Invoke(input string) error {
	s.tracer = input
	return nil
}

func (s *EchoState) OnFinish()             {}
func (s *EchoState) Input() string         { return s.input }
func (s *EchoState) SetInput(input string) { s.input = input }
func (s *EchoState) Tracer() string        { return s.tracer }
func (s *EchoState) String() string        { return "echo(" + s.input + ")" }

// DefaultCascadeInputs are the inputs of the cascade demo.
var DefaultCascadeInputs = []string{"First State", "Second State", "Third State", "Fourth State"}

// FillCascade queues one EchoState per input on path. The first state is
// pushed to the head when the backing allows it.
func FillCascade(path *transition.CascadingPath[string, string], inputs ...string) error {
	for i, input := range inputs {
		state := NewEchoState(input)
		if i == 0 {
			err := path.AssignPresentState(state)
			if err == nil {
				continue
			}
			if !errors.Is(err, domain.ErrUnsupportedOperation) {
				return err
			}
		}
		if err := path.AssignNextState(state); err != nil {
			return fmt.Errorf("failed to queue %q: %w", input, err)
		}
	}
	return nil
}
