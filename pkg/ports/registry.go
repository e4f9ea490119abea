package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/transition"
)

// PathRegistry defines the bookkeeping of a deterministic engine.
// It maps a path name to the fingerprint of the last accepted path with that name.
type PathRegistry interface {
	// Lookup returns the fingerprint recorded under name.
	// The boolean is false when nothing is recorded.
	Lookup(ctx context.Context, name string) (transition.Fingerprint, bool, error)

	// Record stores fp under name, replacing any previous entry.
	Record(ctx context.Context, name string, fp transition.Fingerprint) error

	// Forget removes the entry recorded under name.
	Forget(ctx context.Context, name string) error

	// List returns the recorded names.
	List(ctx context.Context) ([]string, error)
}
