package demo_test

import (
	"context"
	"testing"

	"github.com/aretw0/automata/internal/demo"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/engine"
	"github.com/aretw0/automata/pkg/runner"
	"github.com/aretw0/automata/pkg/transition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialAdder_SampleStream(t *testing.T) {
	eng := engine.NewManager[*demo.Bits, int]()
	var states []string
	adder := demo.NewSerialAdder(eng, demo.WithColumnHook(func(state string, _ demo.Bits) {
		states = append(states, state)
	}))

	columns := demo.SampleColumns()
	carry, err := adder.Run(context.Background(), columns)
	require.NoError(t, err)

	var z []int
	for _, b := range columns {
		z = append(z, b.Z)
	}
	assert.Equal(t, []int{0, 1, 1, 0, 0, 0, 1, 1, 0}, z)
	assert.False(t, carry)
	assert.Equal(t, []string{
		"proxy(NonCarry)", "proxy(NonCarry)", "proxy(NonCarry)", "proxy(NonCarry)",
		"Carry", "Carry", "Carry", "Carry", "proxy(NonCarry)",
	}, states)
}

func TestSerialAdder_Add(t *testing.T) {
	adder := demo.NewSerialAdder(engine.NewManager[*demo.Bits, int]())
	ctx := context.Background()

	tests := []struct{ x, y uint64 }{
		{0, 0}, {1, 1}, {13, 11}, {255, 1}, {1 << 40, 3}, {12345, 67890},
	}
	for _, tt := range tests {
		sum, err := adder.Add(ctx, tt.x, tt.y)
		require.NoError(t, err)
		assert.Equal(t, tt.x+tt.y, sum, "%d+%d", tt.x, tt.y)
	}
}

func TestSerialAdder_RejectsMissingBits(t *testing.T) {
	adder := demo.NewSerialAdder(engine.NewManager[*demo.Bits, int]())
	_, err := adder.Run(context.Background(), []*demo.Bits{nil})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestArmature_RejectsReplay(t *testing.T) {
	var tracers []string
	err := demo.RunArmature(context.Background(), engine.NewDeterministic[string, string](), demo.ArmaturePath(),
		func(s string) { tracers = append(tracers, s) })

	assert.ErrorIs(t, err, domain.ErrDuplicatePath)
	assert.Equal(t, []string{"Armature is Idle", "Armature is Walking"}, tracers)
}

func TestFillCascade(t *testing.T) {
	for _, backing := range []transition.Backing{transition.BackingRing, transition.BackingLinked, transition.BackingFIFO} {
		t.Run(string(backing), func(t *testing.T) {
			path, err := transition.NewCascadingPath[string, string]("Cascade", transition.WithBacking(backing))
			require.NoError(t, err)
			require.NoError(t, demo.FillCascade(path, demo.DefaultCascadeInputs...))

			var seen []string
			_, err = runner.NewWalker[string, string](runner.WithStepHook(func(s runner.Step) {
				seen = append(seen, s.Tracer.(string))
			})).Walk(context.Background(), engine.NewManager[string, string](), path, nil)

			require.NoError(t, err)
			assert.Equal(t, demo.DefaultCascadeInputs, seen)
		})
	}

	t.Run("Full queue", func(t *testing.T) {
		path, err := transition.NewCascadingPath[string, string]("Cascade", transition.WithCapacity(2))
		require.NoError(t, err)
		assert.ErrorIs(t, demo.FillCascade(path, "a", "b", "c"), domain.ErrQueueFull)
	})
}
