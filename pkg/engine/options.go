package engine

import (
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/lock"
	"github.com/aretw0/automata/pkg/ports"
)

type settings struct {
	name     string
	hooks    domain.LifecycleHooks
	registry ports.PathRegistry
	pathLock *lock.Keyed
}

// Option defines a functional option for configuring an engine.
type Option func(*settings)

// WithName labels the engine in logs and lifecycle events.
func WithName(name string) Option {
	return func(s *settings) {
		s.name = name
	}
}

// WithLifecycleHooks registers observability hooks. Calling it twice merges the hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *settings) {
		s.hooks = s.hooks.Merge(hooks)
	}
}

// WithRegistry sets the path registry of a Deterministic engine (default: in-memory).
func WithRegistry(registry ports.PathRegistry) Option {
	return func(s *settings) {
		s.registry = registry
	}
}

// WithPathLock serializes a Deterministic engine's check-and-record per path name.
// Without it the registry is only safe under a single writer.
func WithPathLock(k *lock.Keyed) Option {
	return func(s *settings) {
		s.pathLock = k
	}
}

func newSettings(opts []Option) settings {
	s := settings{name: "automata"}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
