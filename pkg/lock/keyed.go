package lock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/ports"
)

// DefaultTTL bounds how long a distributed lock survives a crashed holder.
const DefaultTTL = 30 * time.Second

// entry holds the mutex and the reference count.
type entry struct {
	mu   sync.Mutex
	refs int
}

// Keyed serializes work per key.
// It uses Reference Counting to garbage collect unused entries.
type Keyed struct {
	mu      sync.Mutex        // Global lock for the map
	entries map[string]*entry // Map of active entries

	locker ports.DistributedLocker // Optional distributed locker
	ttl    time.Duration
	logger *slog.Logger // Logger for internal events (like deferred errors)
}

// Option configures Keyed.
type Option func(*Keyed)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(k *Keyed) {
		k.locker = locker
	}
}

// WithTTL sets the distributed lock TTL (default DefaultTTL).
func WithTTL(ttl time.Duration) Option {
	return func(k *Keyed) {
		k.ttl = ttl
	}
}

// WithLogger configures a logger for Keyed.
func WithLogger(logger *slog.Logger) Option {
	return func(k *Keyed) {
		k.logger = logger
	}
}

// NewKeyed creates a keyed lock.
func NewKeyed(opts ...Option) *Keyed {
	k := &Keyed{
		entries: make(map[string]*entry),
		ttl:     DefaultTTL,
		logger:  logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// acquire gets or creates an entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(key) after unlocking.
func (k *Keyed) acquire(key string) *entry {
	k.mu.Lock()
	defer k.mu.Unlock()

	e, exists := k.entries[key]
	if !exists {
		e = &entry{}
		k.entries[key] = e
	}
	e.refs++
	return e
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (k *Keyed) release(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()

	e, exists := k.entries[key]
	if !exists {
		return
	}

	e.refs--
	if e.refs <= 0 {
		delete(k.entries, key)
	}
}

// Len returns the number of keys currently held or waited on.
func (k *Keyed) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}

// WithLock executes fn while holding the lock for key.
func (k *Keyed) WithLock(ctx context.Context, key string, fn func(context.Context) error) error {
	e := k.acquire(key)
	e.mu.Lock()
	defer func() {
		e.mu.Unlock()
		k.release(key)
	}()

	if k.locker != nil {
		unlock, err := k.locker.Lock(ctx, key, k.ttl)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				k.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"key", key,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
