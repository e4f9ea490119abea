package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/lock"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/transition"
)

// Deterministic is a Manager whose TransitPath accepts a given transition path at most once.
//
// Paths are keyed by name. A path is a replay when the registry holds a
// fingerprint under the same name that matches it: the same path instance, or
// the same present state, next state and next-state input identities.
// Renaming a path before reuse escapes the check by design, the name is caller-owned.
//
// The default in-memory registry is not synchronized. Engines shared between
// goroutines need WithPathLock.
type Deterministic[I, O any] struct {
	*Manager[I, O]
	registry ports.PathRegistry
	pathLock *lock.Keyed
}

var _ ports.Transiter[any, any] = (*Deterministic[any, any])(nil)

// NewDeterministic creates a deterministic engine.
func NewDeterministic[I, O any](opts ...Option) *Deterministic[I, O] {
	s := newSettings(opts)
	if s.registry == nil {
		s.registry = memory.NewRegistry()
	}
	return &Deterministic[I, O]{
		Manager: &Manager[I, O]{
			name:  s.name,
			hooks: s.hooks,
		},
		registry: s.registry,
		pathLock: s.pathLock,
	}
}

// Registry returns the registry recording accepted paths.
func (d *Deterministic[I, O]) Registry() ports.PathRegistry {
	return d.registry
}

// TransitPath fails with a *domain.DuplicatePathError if path replays an accepted
// path. Otherwise it records the path and delegates to Manager.TransitPath.
func (d *Deterministic[I, O]) TransitPath(ctx context.Context, path transition.Route[I, O], listener domain.Listener[I, O]) error {
	if err := d.Accept(ctx, path); err != nil {
		return err
	}
	return d.Manager.TransitPath(ctx, path, listener)
}

// Accept runs the uniqueness check on path and records it, without transiting.
func (d *Deterministic[I, O]) Accept(ctx context.Context, path transition.Route[I, O]) error {
	if domain.IsNil(path) {
		return fmt.Errorf("%w: cannot accept nil transition paths", domain.ErrInvalidArgument)
	}
	fp := path.Fingerprint()

	check := func(ctx context.Context) error {
		prev, ok, err := d.registry.Lookup(ctx, fp.Name)
		if err != nil {
			return fmt.Errorf("failed to look up path %q: %w", fp.Name, err)
		}
		if ok && prev.Matches(fp) {
			d.emitDuplicate(ctx, fp.Name)
			return &domain.DuplicatePathError{Name: fp.Name}
		}
		if err := d.registry.Record(ctx, fp.Name, fp); err != nil {
			return fmt.Errorf("failed to record path %q: %w", fp.Name, err)
		}
		return nil
	}

	if d.pathLock == nil {
		return check(ctx)
	}
	return d.pathLock.WithLock(ctx, "path:"+fp.Name, check)
}

// Forget drops the record of the path named name, allowing it to run again.
func (d *Deterministic[I, O]) Forget(ctx context.Context, name string) error {
	return d.registry.Forget(ctx, name)
}

func (d *Deterministic[I, O]) emitDuplicate(ctx context.Context, name string) {
	logging.Log(slog.LevelWarn, "Rejected a replayed transition path", nil,
		"engine", d.name,
		"path", name,
	)
	if d.hooks.OnDuplicatePath == nil {
		return
	}
	d.hooks.OnDuplicatePath(ctx, &domain.PathEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventDuplicatePath,
			Engine:    d.name,
		},
		Path: name,
	})
}
