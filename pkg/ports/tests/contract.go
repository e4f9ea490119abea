package tests

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/automata/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// LockerContractTest is a reusable test suite that verifies if an adapter complies with ports.DistributedLocker.
// newLocker must return lockers that contend for the same keys.
func LockerContractTest(t *testing.T, newLocker func() ports.DistributedLocker) {
	t.Helper()
	ctx := context.Background()

	t.Run("Lock_Unlock", func(t *testing.T) {
		locker := newLocker()
		unlock, err := locker.Lock(ctx, "contract-a", 5*time.Second)
		require.NoError(t, err)
		require.NotNil(t, unlock)
		assert.NoError(t, unlock(ctx))

		// Must be acquirable again after release
		unlock, err = locker.Lock(ctx, "contract-a", 5*time.Second)
		require.NoError(t, err)
		assert.NoError(t, unlock(ctx))
	})

	t.Run("Contention_Blocks_Until_Deadline", func(t *testing.T) {
		first, second := newLocker(), newLocker()
		unlock, err := first.Lock(ctx, "contract-b", 5*time.Second)
		require.NoError(t, err)
		defer unlock(ctx)

		ctxTimeout, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
		defer cancel()

		_, err = second.Lock(ctxTimeout, "contract-b", 5*time.Second)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("Independent_Keys", func(t *testing.T) {
		first, second := newLocker(), newLocker()
		unlock1, err := first.Lock(ctx, "contract-c", 5*time.Second)
		require.NoError(t, err)
		defer unlock1(ctx)

		ctxTimeout, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		unlock2, err := second.Lock(ctxTimeout, "contract-d", 5*time.Second)
		require.NoError(t, err)
		assert.NoError(t, unlock2(ctx))
	})
}
