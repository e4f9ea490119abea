package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/automata/pkg/transition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunPathRegistryContract runs a suite of tests to verify that a PathRegistry implementation
// adheres to the defined interface contract.
func RunPathRegistryContract(t *testing.T, registry PathRegistry) {
	ctx := context.Background()
	name := "contract-test-path-" + time.Now().Format("20060102150405")

	fp := transition.Fingerprint{
		Name:    name,
		Route:   "route-1",
		Present: "present-1",
		Next:    "next-1",
		Input:   "string:walking",
	}

	t.Run("Lookup Missing", func(t *testing.T) {
		_, ok, err := registry.Lookup(ctx, "missing-"+name)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Record and Lookup", func(t *testing.T) {
		err := registry.Record(ctx, name, fp)
		require.NoError(t, err, "Record should not return error")

		got, ok, err := registry.Lookup(ctx, name)
		require.NoError(t, err, "Lookup should not return error")
		require.True(t, ok)
		assert.Equal(t, fp, got)
		assert.True(t, got.Matches(fp))
	})

	t.Run("Record Overwrites", func(t *testing.T) {
		replaced := fp
		replaced.Next = "next-2"
		require.NoError(t, registry.Record(ctx, name, replaced))

		got, ok, err := registry.Lookup(ctx, name)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "next-2", got.Next)
	})

	t.Run("List", func(t *testing.T) {
		other := name + "-other"
		require.NoError(t, registry.Record(ctx, other, fp))
		defer func() {
			_ = registry.Forget(ctx, other)
		}()

		names, err := registry.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, name)
		assert.Contains(t, names, other)
	})

	t.Run("Forget", func(t *testing.T) {
		require.NoError(t, registry.Forget(ctx, name))

		_, ok, err := registry.Lookup(ctx, name)
		require.NoError(t, err)
		assert.False(t, ok, "Lookup after Forget should find nothing")
	})
}
