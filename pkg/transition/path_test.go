package transition_test

import (
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/transition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot(t *testing.T) {
	var slot transition.Slot[string, string]

	_, err := slot.Next()
	assert.ErrorIs(t, err, domain.ErrNoNextState, "reading an unset slot is a usage error")
	assert.False(t, slot.HasNext())

	a, b := newState("a"), newState("b")
	slot.Set(a)
	slot.Set(b)
	next, err := slot.Next()
	require.NoError(t, err)
	assert.Same(t, b, next, "last writer wins")

	slot.Clear()
	assert.False(t, slot.HasNext())
	assert.Equal(t, "b", b.Input(), "clearing drops the reference only")
}

func TestPath(t *testing.T) {
	idle, walking := newState("idle"), newState("walking")
	path := transition.NewPath[string, string]("Armature-Mover-Map", idle, walking)

	assert.Equal(t, "Armature-Mover-Map", path.Name())
	assert.Same(t, idle, path.PresentState())
	assert.Same(t, walking, path.NextState())
	assert.Same(t, walking, path.NextState(), "reading a plain path does not consume")

	t.Run("Remove", func(t *testing.T) {
		p := transition.NewPath[string, string]("p", idle, walking)
		p.RemovePresentState()
		assert.False(t, p.HasPresentState())
		assert.Nil(t, p.PresentState())
		assert.True(t, p.HasNextState())

		p.RemoveAll()
		assert.False(t, p.HasNextState())
		assert.Nil(t, p.NextState())
	})

	t.Run("Assign overwrites", func(t *testing.T) {
		p := transition.NewPath[string, string]("p", nil, nil)
		require.NoError(t, p.AssignPresentState(idle))
		require.NoError(t, p.AssignPresentState(walking))
		assert.Same(t, walking, p.PresentState())
	})
}

func TestFingerprint(t *testing.T) {
	idle, walking := newState("idle"), newState("walking")

	first := transition.NewPath[string, string]("map", idle, walking)
	second := transition.NewPath[string, string]("map", idle, walking)

	fp1, fp2 := first.Fingerprint(), second.Fingerprint()
	assert.NotEqual(t, fp1.Route, fp2.Route)
	assert.True(t, fp1.Matches(fp2), "same name and same identities replay")
	assert.Equal(t, fp1.Sum(), fp2.Sum())

	t.Run("Different next input", func(t *testing.T) {
		other := transition.NewPath[string, string]("map", idle, walking)
		fp := other.Fingerprint()
		walking.SetInput("running")
		changed := other.Fingerprint()
		walking.SetInput("walking")

		assert.NotEqual(t, fp.Input, changed.Input)
		assert.False(t, fp1.Matches(changed))
		assert.NotEqual(t, fp.Sum(), changed.Sum())
	})

	t.Run("Same route instance always replays", func(t *testing.T) {
		p := transition.NewPath[string, string]("map", idle, walking)
		before := p.Fingerprint()
		require.NoError(t, p.AssignNextState(newState("other")))
		assert.True(t, before.Matches(p.Fingerprint()))
	})

	t.Run("Different name never replays", func(t *testing.T) {
		renamed := transition.NewPath[string, string]("map-2", idle, walking)
		assert.False(t, fp1.Matches(renamed.Fingerprint()))
	})
}
