package engine_test

import (
	"context"
	"encoding/json"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/aretw0/automata/internal/testutils"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/adapters/redis"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/engine"
	"github.com/aretw0/automata/pkg/lock"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/transition"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministic_RejectsReplayedPath(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	idle, walking := newProbe("idle", rec), newProbe("walking", rec)
	d := engine.NewDeterministic[string, string]()

	first := transition.NewPath[string, string]("Armature-Mover-Map", idle, walking)
	require.NoError(t, d.TransitPath(ctx, first, nil))

	second := transition.NewPath[string, string]("Armature-Mover-Map", idle, walking)
	err := d.TransitPath(ctx, second, nil)
	require.ErrorIs(t, err, domain.ErrDuplicatePath)

	var dup *domain.DuplicatePathError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "Armature-Mover-Map", dup.Name)
	assert.Equal(t, []string{"idle.start", "idle.invoke(idle)", "idle.finish"}, rec.calls, "a rejected path runs nothing")

	t.Run("Renaming escapes the check", func(t *testing.T) {
		second.SetName("Armature-Mover-Map-2")
		require.NoError(t, d.TransitPath(ctx, second, nil))
	})

	t.Run("Same instance replays", func(t *testing.T) {
		err := d.TransitPath(ctx, first, nil)
		assert.ErrorIs(t, err, domain.ErrDuplicatePath)
	})

	t.Run("Different next input is a new path", func(t *testing.T) {
		third := transition.NewPath[string, string]("Armature-Mover-Map", idle, walking)
		walking.SetInput("running")
		require.NoError(t, d.TransitPath(ctx, third, nil))
	})

	t.Run("Forget allows a replay", func(t *testing.T) {
		require.NoError(t, d.Forget(ctx, "Armature-Mover-Map"))
		require.NoError(t, d.TransitPath(ctx, first, nil))
	})
}

func TestDeterministic_NilPath(t *testing.T) {
	d := engine.NewDeterministic[string, string]()
	assert.ErrorIs(t, d.TransitPath(context.Background(), nil, nil), domain.ErrInvalidArgument)
}

// The listener replays the path from inside its own transition.
func TestDeterministic_ReplayFromListener(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	idle, walking := newProbe("idle", rec), newProbe("walking", rec)
	path := transition.NewPath[string, string]("Armature-Mover-Map", idle, walking)

	var duplicates []string
	d := engine.NewDeterministic[string, string](engine.WithLifecycleHooks(domain.LifecycleHooks{
		OnDuplicatePath: func(_ context.Context, e *domain.PathEvent) { duplicates = append(duplicates, e.Path) },
	}))

	err := d.TransitPath(ctx, path, listenerFunc(func(ctx context.Context, _ domain.State[string, string]) error {
		if err := d.Transit(ctx, nil); err != nil {
			return err
		}
		return d.TransitPath(ctx, path, nil)
	}))

	assert.ErrorIs(t, err, domain.ErrDuplicatePath)
	assert.Equal(t, []string{"Armature-Mover-Map"}, duplicates)
	assert.Contains(t, rec.calls, "walking.invoke(walking)")
	assert.NotContains(t, rec.calls, "idle.finish", "the rejection aborts the outer transition")
}

func TestDeterministic_CascadingPath(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	d := engine.NewDeterministic[string, string](engine.WithRegistry(memory.NewRegistry()))

	path, err := transition.NewCascadingPath[string, string]("Cascade")
	require.NoError(t, err)
	for _, name := range []string{"A", "B", "C"} {
		require.NoError(t, path.AssignNextState(newProbe(name, rec)))
	}

	require.NoError(t, d.TransitPath(ctx, path, nil))
	assert.Equal(t, 1, path.Len(), "only the present and next states were consumed")

	names, err := d.Registry().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cascade"}, names)
}

// Paths reusing a name with fresh states are new paths, even when the garbage
// collector frees the previous ones between checks.
func TestDeterministic_FreshPathsAfterGC(t *testing.T) {
	_, client := testutils.SetupRedis(t)
	registries := map[string]ports.PathRegistry{
		"Memory": memory.NewRegistry(),
		"Redis":  redis.NewFromClient(client),
	}
	for name, registry := range registries {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			d := engine.NewDeterministic[string, string](engine.WithRegistry(registry))
			for i := 0; i < 200; i++ {
				rec := &recorder{}
				path := transition.NewPath[string, string]("walk", newProbe("idle", rec), newProbe("walking", rec))
				require.NoError(t, d.Accept(ctx, path), "iteration %d", i)
				runtime.GC()
			}
		})
	}
}

// A record written by another replica never matches local states by address,
// even when both processes allocated them at the same addresses.
func TestDeterministic_ForeignRecordByAddress(t *testing.T) {
	mr, client := testutils.SetupRedis(t)
	registry := redis.NewFromClient(client)
	ctx := context.Background()

	rec := &recorder{}
	path := transition.NewPath[string, string]("walk", newProbe("idle", rec), newProbe("walking", rec))
	local := path.Fingerprint()

	elsewhere := func(key string) string {
		at, slash := strings.Index(key, "@"), strings.LastIndex(key, "/")
		require.True(t, at >= 0 && slash > at, "address keys carry a process scope: %s", key)
		return key[:at+1] + uuid.NewString() + key[slash:]
	}
	require.NoError(t, registry.Record(ctx, "walk", transition.Fingerprint{
		Name:    "walk",
		Route:   "route:" + uuid.NewString(),
		Present: elsewhere(local.Present),
		Next:    elsewhere(local.Next),
		Input:   local.Input,
	}))

	d := engine.NewDeterministic[string, string](engine.WithRegistry(registry))
	require.NoError(t, d.Accept(ctx, path))

	raw, err := mr.Get(redis.DefaultPrefix + "walk")
	require.NoError(t, err)
	var stored transition.Fingerprint
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.True(t, strings.HasPrefix(stored.Route, "route:"))
	assert.NotContains(t, stored.Route, "@", "route identities are not addresses")

	assert.ErrorIs(t, d.Accept(ctx, path), domain.ErrDuplicatePath, "the same instance still replays")
}

// Engines in separate goroutines share a Redis registry and a keyed lock:
// exactly one of them may accept the same path content.
func TestDeterministic_SharedRegistryWithPathLock(t *testing.T) {
	_, client := testutils.SetupRedis(t)
	registry := redis.NewFromClient(client)
	keyed := lock.NewKeyed(lock.WithLocker(redis.NewLocker(client, "test:")))

	idle := &identified{probeState: newProbe("idle", &recorder{}), id: "idle"}
	walking := &identified{probeState: newProbe("walking", &recorder{}), id: "walking"}

	const workers = 6
	var (
		accepted atomic.Int32
		rejected atomic.Int32
		wg       sync.WaitGroup
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d := engine.NewDeterministic[string, string](engine.WithRegistry(registry), engine.WithPathLock(keyed))
			path := transition.NewPath[string, string]("shared", idle, walking)
			err := d.Accept(context.Background(), path)
			switch {
			case err == nil:
				accepted.Add(1)
			case assert.ErrorIs(t, err, domain.ErrDuplicatePath):
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), accepted.Load())
	assert.Equal(t, int32(workers-1), rejected.Load())
	assert.Equal(t, 0, keyed.Len(), "lock entries are released")
}

// identified gives probe states a process-independent identity.
type identified struct {
	*probeState
	id string
}

func (s *identified) Identity() string { return s.id }
