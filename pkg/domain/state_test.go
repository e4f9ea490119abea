package domain_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counterState struct {
	input   string
	tracer  int
	started int
}

func (s *counterState) OnStart()                  { s.started++ }
func (s *counterState) Invoke(input string) error { s.tracer += len(input); return nil }
func (s *counterState) OnFinish()                 {}
func (s *counterState) Input() string             { return s.input }
func (s *counterState) SetInput(input string)     { s.input = input }
func (s *counterState) Tracer() int               { return s.tracer }

type namedState struct {
	counterState
	id string
}

func (s *namedState) Identity() string { return s.id }

func TestClone_Shallow(t *testing.T) {
	original := &counterState{}
	clone := domain.Clone[string, int](original, domain.CloneShallow)

	assert.Same(t, original, clone, "shallow clone must be the same instance")
}

func TestClone_Deep(t *testing.T) {
	original := &counterState{}
	clone := domain.Clone[string, int](original, domain.CloneDeep)

	proxy, ok := clone.(*domain.Proxy[string, int])
	require.True(t, ok, "deep clone must be a proxy")
	assert.NotSame(t, original, clone)
	assert.Same(t, original, proxy.Substrate())

	t.Run("Original mutations are observed by the clone", func(t *testing.T) {
		original.SetInput("from-original")
		assert.Equal(t, "from-original", clone.Input())
	})

	t.Run("Clone mutations are observed by the original", func(t *testing.T) {
		clone.SetInput("from-clone")
		assert.Equal(t, "from-clone", original.Input())

		clone.OnStart()
		require.NoError(t, clone.Invoke("abc"))
		assert.Equal(t, 1, original.started)
		assert.Equal(t, 3, original.Tracer())
		assert.Equal(t, 3, clone.Tracer())
	})

	t.Run("Clone keeps the substrate reachable", func(t *testing.T) {
		substrate := proxy.Substrate()
		assert.Equal(t, "from-clone", substrate.Input())
	})
}

func TestClone_Nil(t *testing.T) {
	assert.Nil(t, domain.Clone[string, int](nil, domain.CloneDeep))
}

func TestCloneMode_String(t *testing.T) {
	assert.Equal(t, "shallow", domain.CloneShallow.String())
	assert.Equal(t, "deep", domain.CloneDeep.String())
	assert.Equal(t, "CloneMode(7)", domain.CloneMode(7).String())
}

func TestIdentityKey(t *testing.T) {
	a, b := &counterState{}, &counterState{}

	assert.Equal(t, domain.IdentityKey(a), domain.IdentityKey(a))
	assert.NotEqual(t, domain.IdentityKey(a), domain.IdentityKey(b), "distinct pointers are distinct identities")
	assert.Equal(t, domain.IdentityKey("idle"), domain.IdentityKey("idle"), "equal strings share an identity")
	assert.NotEqual(t, domain.IdentityKey(1), domain.IdentityKey("1"))
	assert.Equal(t, "nil", domain.IdentityKey(nil))

	n1 := &namedState{id: "walker"}
	n2 := &namedState{id: "walker"}
	assert.Equal(t, domain.IdentityKey(n1), domain.IdentityKey(n2), "Identifiable overrides reference identity")
}

func TestIdentityKey_AddressScopedToProcess(t *testing.T) {
	a := &counterState{}
	key := domain.IdentityKey(a)

	assert.NotEqual(t, fmt.Sprintf("%T@%x", a, reflect.ValueOf(a).Pointer()), key,
		"a bare address repeats across runs of the same binary")
	assert.Contains(t, key, fmt.Sprintf("/%x", reflect.ValueOf(a).Pointer()))
}

func TestIsNil(t *testing.T) {
	var typed *counterState
	var state domain.State[string, int] = typed

	assert.True(t, domain.IsNil(nil))
	assert.True(t, domain.IsNil(state))
	assert.False(t, domain.IsNil(&counterState{}))
	assert.False(t, domain.IsNil("idle"))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "counterState", domain.Describe(&counterState{}))
	assert.Equal(t, "walker", domain.Describe(&namedState{id: "walker"}))
	assert.Equal(t, "proxy(counterState)", domain.Describe(domain.NewProxy[string, int](&counterState{})))
	assert.Equal(t, "<nil>", domain.Describe(nil))
}

func TestDuplicatePathError(t *testing.T) {
	var err error = &domain.DuplicatePathError{Name: "Armature-Mover-Map"}

	assert.ErrorIs(t, err, domain.ErrDuplicatePath)
	assert.EqualError(t, err, "transition path `Armature-Mover-Map` is not unique")

	var dup *domain.DuplicatePathError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "Armature-Mover-Map", dup.Name)
}

func TestLifecycleHooks_Merge(t *testing.T) {
	var calls []string
	first := domain.LifecycleHooks{
		OnStateEnter: func(context.Context, *domain.StateEvent) { calls = append(calls, "first") },
	}
	second := domain.LifecycleHooks{
		OnStateEnter: func(context.Context, *domain.StateEvent) { calls = append(calls, "second") },
		OnStateLeave: func(context.Context, *domain.StateEvent) { calls = append(calls, "leave") },
	}

	merged := first.Merge(second)
	merged.OnStateEnter(context.Background(), &domain.StateEvent{})
	merged.OnStateLeave(context.Background(), &domain.StateEvent{})

	assert.Equal(t, []string{"first", "second", "leave"}, calls)
	assert.Nil(t, merged.OnDuplicatePath)
}

func TestListenerFunc(t *testing.T) {
	var got domain.State[string, int]
	state := &counterState{}
	l := domain.ListenerFunc[string, int](func(ctx context.Context, present domain.State[string, int]) error {
		got = present
		return nil
	})

	require.NoError(t, l.OnTransition(context.Background(), state))
	assert.Same(t, state, got)
}
