package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/automata/pkg/transition"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the adapter.
const DefaultPrefix = "automata:path:"

// Registry implements ports.PathRegistry using Redis, so deterministic engines
// in several processes share one record of accepted paths.
//
// Route identities are unique per path, and address identities of states are
// scoped to the process that produced them, so across processes only
// domain.Identifiable states and value inputs can match. The fingerprints
// recorded by this process are also kept locally, which keeps the addresses
// they name from being reused while the record exists.
type Registry struct {
	client *backend.Client
	prefix string
	ttl    time.Duration

	mu     sync.Mutex
	pinned map[string]transition.Fingerprint
}

type Option func(*Registry)

// WithTTL sets the expiration of recorded paths.
func WithTTL(ttl time.Duration) Option {
	return func(r *Registry) {
		r.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(r *Registry) {
		r.prefix = prefix
	}
}

// New creates a new Redis registry with options.
func New(address, password string, db int, opts ...Option) *Registry {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis registry from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Registry {
	registry := &Registry{
		client: client,
		prefix: DefaultPrefix,
		ttl:    0, // No expiration by default
		pinned: make(map[string]transition.Fingerprint),
	}

	for _, opt := range opts {
		opt(registry)
	}

	return registry
}

func (r *Registry) key(name string) string {
	return r.prefix + name
}

func (r *Registry) indexKey() string {
	return r.prefix + "index"
}

// Record persists the fingerprint to Redis.
func (r *Registry) Record(ctx context.Context, name string, fp transition.Fingerprint) error {
	data, err := json.Marshal(fp)
	if err != nil {
		return fmt.Errorf("failed to marshal fingerprint: %w", err)
	}

	pipe := r.client.Pipeline()

	// 1. Save JSON with TTL (0 means no expiration)
	pipe.Set(ctx, r.key(name), data, r.ttl)

	// 2. Add to Index (ZSET) scored by expiry
	score := float64(time.Now().Add(r.ttl).Unix())
	if r.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, r.indexKey(), backend.Z{
		Score:  score,
		Member: name,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}

	r.mu.Lock()
	r.pinned[name] = fp
	r.mu.Unlock()
	return nil
}

// Lookup retrieves the fingerprint recorded under name.
func (r *Registry) Lookup(ctx context.Context, name string) (transition.Fingerprint, bool, error) {
	val, err := r.client.Get(ctx, r.key(name)).Result()
	if err != nil {
		if err == backend.Nil {
			return transition.Fingerprint{}, false, nil
		}
		return transition.Fingerprint{}, false, fmt.Errorf("failed to get from redis: %w", err)
	}

	var fp transition.Fingerprint
	if err := json.Unmarshal([]byte(val), &fp); err != nil {
		return transition.Fingerprint{}, false, fmt.Errorf("failed to unmarshal fingerprint: %w", err)
	}
	return fp, true, nil
}

// Forget removes the path.
func (r *Registry) Forget(ctx context.Context, name string) error {
	pipe := r.client.Pipeline()

	pipe.Del(ctx, r.key(name))
	pipe.ZRem(ctx, r.indexKey(), name)

	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.pinned, name)
	r.mu.Unlock()
	return nil
}

// List returns recorded path names, pruning expired ones from the index first.
func (r *Registry) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := r.client.ZRemRangeByScore(ctx, r.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired paths: %w", err)
	}

	names, err := r.client.ZRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list paths: %w", err)
	}
	return names, nil
}

// Client returns the underlying client, e.g. to build a Locker sharing its connections.
func (r *Registry) Client() *backend.Client {
	return r.client
}

// Close closes the redis client.
func (r *Registry) Close() error {
	return r.client.Close()
}
