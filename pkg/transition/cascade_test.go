package transition_test

import (
	"sync"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/transition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCascadingPath_DrainsInOrder(t *testing.T) {
	for _, backing := range []transition.Backing{transition.BackingRing, transition.BackingLinked, transition.BackingFIFO} {
		t.Run(string(backing), func(t *testing.T) {
			path, err := transition.NewCascadingPath[string, string]("Cascade", transition.WithBacking(backing))
			require.NoError(t, err)

			a, b, c := newState("A"), newState("B"), newState("C")
			require.NoError(t, path.AssignNextState(a))
			require.NoError(t, path.AssignNextState(b))
			require.NoError(t, path.AssignNextState(c))
			assert.Equal(t, 3, path.Len())

			assert.Same(t, a, path.NextState())
			assert.Same(t, b, path.NextState())
			assert.Same(t, c, path.NextState())
			assert.Nil(t, path.NextState(), "a drained cascade yields nothing")
			assert.False(t, path.HasNextState())
		})
	}
}

func TestCascadingPath_PresentAndNextBothConsume(t *testing.T) {
	path, err := transition.NewCascadingPath[string, string]("Cascade")
	require.NoError(t, err)

	a, b, c := newState("A"), newState("B"), newState("C")
	require.NoError(t, path.AssignNextState(b))
	require.NoError(t, path.AssignNextState(c))
	require.NoError(t, path.AssignPresentState(a))

	assert.Same(t, a, path.PresentState())
	assert.Same(t, b, path.NextState())
	assert.Same(t, c, path.PresentState())
	assert.Equal(t, 0, path.Len())
}

func TestCascadingPath_LastState(t *testing.T) {
	t.Run("Double-ended", func(t *testing.T) {
		path, err := transition.NewCascadingPath[string, string]("Cascade", transition.WithBacking(transition.BackingLinked))
		require.NoError(t, err)
		a, b := newState("A"), newState("B")
		require.NoError(t, path.AssignNextState(a))
		require.NoError(t, path.AssignNextState(b))

		last, err := path.LastState()
		require.NoError(t, err)
		assert.Same(t, b, last)
		last, err = path.LastState()
		require.NoError(t, err)
		assert.Same(t, a, last)

		_, err = path.LastState()
		assert.ErrorIs(t, err, domain.ErrNoNextState)
	})

	t.Run("Single-ended", func(t *testing.T) {
		path, err := transition.NewCascadingPath[string, string]("Cascade", transition.WithBacking(transition.BackingFIFO))
		require.NoError(t, err)
		require.NoError(t, path.AssignNextState(newState("A")))

		_, err = path.LastState()
		assert.ErrorIs(t, err, domain.ErrUnsupportedOperation)

		err = path.AssignPresentState(newState("B"))
		assert.ErrorIs(t, err, domain.ErrUnsupportedOperation)
		assert.Equal(t, 1, path.Len(), "a rejected head insertion leaves the queue untouched")
	})
}

func TestCascadingPath_Full(t *testing.T) {
	path, err := transition.NewCascadingPath[string, string]("Cascade", transition.WithCapacity(1))
	require.NoError(t, err)

	require.NoError(t, path.AssignNextState(newState("A")))
	assert.ErrorIs(t, path.AssignNextState(newState("B")), domain.ErrQueueFull)
	assert.ErrorIs(t, path.AssignPresentState(newState("C")), domain.ErrQueueFull)
}

func TestCascadingPath_NilState(t *testing.T) {
	path, err := transition.NewCascadingPath[string, string]("Cascade")
	require.NoError(t, err)

	assert.ErrorIs(t, path.AssignNextState(nil), domain.ErrInvalidArgument)
	assert.ErrorIs(t, path.AssignPresentState(nil), domain.ErrInvalidArgument)
	assert.Zero(t, path.Len())
}

func TestCascadingPath_WithQueue(t *testing.T) {
	q := transition.NewLinkedDeque[domain.State[string, string]](0)
	path, err := transition.NewCascadingPath[string, string]("Cascade", transition.WithQueue[domain.State[string, string]](q))
	require.NoError(t, err)
	require.NoError(t, path.AssignNextState(newState("A")))
	assert.Equal(t, 1, q.Len())

	_, err = transition.NewCascadingPath[string, string]("Cascade", transition.WithQueue[int](transition.NewFIFO[int](0)))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestCascadingPath_FingerprintPeeks(t *testing.T) {
	path, err := transition.NewCascadingPath[string, string]("Cascade")
	require.NoError(t, err)
	a, b := newState("A"), newState("B")
	require.NoError(t, path.AssignNextState(a))
	require.NoError(t, path.AssignNextState(b))

	fp := path.Fingerprint()
	assert.Equal(t, 2, path.Len(), "fingerprinting must not consume")
	assert.Equal(t, domain.IdentityKey(a), fp.Present)
	assert.Equal(t, domain.IdentityKey(b), fp.Next)
	assert.Equal(t, domain.IdentityKey("B"), fp.Input)
}

func TestConcurrentCascadingPath(t *testing.T) {
	path, err := transition.NewConcurrentCascadingPath[string, string]("Concurrent", transition.WithBacking(transition.BackingLinked))
	require.NoError(t, err)

	const producers, perProducer = 8, 50
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				assert.NoError(t, path.AssignNextState(newState("s")))
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, producers*perProducer, path.Len())

	var (
		mu      sync.Mutex
		drained int
	)
	for c := 0; c < 4; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path.NextState() != nil {
				mu.Lock()
				drained++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, producers*perProducer, drained)
}
