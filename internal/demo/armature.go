package demo

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/transition"
)

// ArmatureState moves an armature; its input names the motion.
type ArmatureState struct {
	input  string
	tracer string
}

// NewArmatureState creates a state for motion.
func NewArmatureState(motion string) *ArmatureState {
	return &ArmatureState{input: motion}
}

func (s *ArmatureState) OnStart() {}

func (s *ArmatureState) Invoke(motion string) error {
	s.tracer = "Armature is " + motion
	return nil
}

func (s *ArmatureState) OnFinish()             {}
func (s *ArmatureState) Input() string         { return s.input }
func (s *ArmatureState) SetInput(input string) { s.input = input }
func (s *ArmatureState) Tracer() string        { return s.tracer }
func (s *ArmatureState) String() string        { return s.input }

// ArmaturePath is the path replayed by the armature demo.
func ArmaturePath() *transition.Path[string, string] {
	return transition.NewPath[string, string]("Armature-Mover-Map",
		NewArmatureState("Idle"),
		NewArmatureState("Walking"),
	)
}

// RunArmature transits path on eng, normally a deterministic engine. From inside the
// transition, the listener runs the walking state and then submits path again,
// which the engine rejects: the returned error matches domain.ErrDuplicatePath.
//
// report receives the tracer of every state that ran.
func RunArmature(ctx context.Context, eng ports.Transiter[string, string], path transition.Route[string, string], report func(string)) error {
	if report == nil {
		report = func(string) {}
	}
	reporter := domain.ListenerFunc[string, string](func(_ context.Context, s domain.State[string, string]) error {
		report(s.Tracer())
		return nil
	})

	return eng.TransitPath(ctx, path, domain.ListenerFunc[string, string](func(ctx context.Context, present domain.State[string, string]) error {
		report(present.Tracer())
		if err := eng.Transit(ctx, reporter); err != nil {
			return err
		}
		return eng.TransitPath(ctx, path, nil)
	}))
}
