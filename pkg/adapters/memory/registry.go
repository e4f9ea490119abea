package memory

import (
	"context"

	"github.com/aretw0/automata/pkg/transition"
)

// Registry implements ports.PathRegistry in memory.
//
// Stored fingerprints keep the states they name reachable, so an address
// identity cannot be reused by another state while it is recorded.
//
// It is NOT safe for concurrent use: a deterministic engine backed by it
// assumes a single writer. Guard shared engines with lock.Keyed.
type Registry struct {
	paths map[string]transition.Fingerprint
}

// NewRegistry creates an empty in-memory registry.
func NewRegistry() *Registry {
	return &Registry{
		paths: make(map[string]transition.Fingerprint),
	}
}

// Lookup returns the fingerprint recorded under name.
func (r *Registry) Lookup(ctx context.Context, name string) (transition.Fingerprint, bool, error) {
	fp, ok := r.paths[name]
	return fp, ok, nil
}

// Record stores fp under name.
func (r *Registry) Record(ctx context.Context, name string, fp transition.Fingerprint) error {
	r.paths[name] = fp
	return nil
}

// Forget removes name.
func (r *Registry) Forget(ctx context.Context, name string) error {
	delete(r.paths, name)
	return nil
}

// List returns recorded names.
func (r *Registry) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(r.paths))
	for name := range r.paths {
		names = append(names, name)
	}
	return names, nil
}
