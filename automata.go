package automata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/adapters/redis"
	"github.com/aretw0/automata/pkg/config"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/engine"
	"github.com/aretw0/automata/pkg/lock"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/runner"
	"github.com/aretw0/automata/pkg/transition"
	"github.com/prometheus/client_golang/prometheus"
)

// Version is the library version reported by the CLI.
const Version = "0.4.0"

// LogConfig configures the process-wide engine log sink.
type LogConfig = logging.Config

// EnableLogging turns engine logging on or off for every engine in the process.
// Logging is off until enabled.
func EnableLogging(on bool) {
	logging.Enable(on)
}

// InitLogging replaces the engine log sink.
func InitLogging(cfg LogConfig) {
	logging.Init(cfg)
}

// LoggingEnabled reports whether engine logging is on.
func LoggingEnabled() bool {
	return logging.Enabled()
}

// Engine is the high-level entry point of the library.
// It bundles a transition engine with a Walker and the resources behind them.
type Engine[I, O any] struct {
	ports.Transiter[I, O]

	name          string
	deterministic bool
	registry      ports.PathRegistry
	walker        *runner.Walker[I, O]
	backing       transition.Backing
	capacity      int
	closers       []io.Closer
}

type options struct {
	name          string
	deterministic bool
	registry      ports.PathRegistry
	pathLock      *lock.Keyed
	hooks         domain.LifecycleHooks
	metrics       prometheus.Registerer
	backing       transition.Backing
	capacity      int
	walkerOpts    []runner.Option
	cfg           *config.Config
}

// Option defines a functional option for configuring the Engine.
type Option func(*options)

// WithName labels the engine in logs, events and metrics.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithDeterministic makes TransitPath reject replayed paths.
func WithDeterministic(on bool) Option {
	return func(o *options) {
		o.deterministic = on
	}
}

// WithRegistry sets the registry of a deterministic engine. It implies WithDeterministic(true).
func WithRegistry(registry ports.PathRegistry) Option {
	return func(o *options) {
		o.registry = registry
		o.deterministic = true
	}
}

// WithPathLock serializes the deterministic check per path name.
func WithPathLock(k *lock.Keyed) Option {
	return func(o *options) {
		o.pathLock = k
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(o *options) {
		o.hooks = o.hooks.Merge(hooks)
	}
}

// WithMetrics registers Prometheus collectors for the engine with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.metrics = reg
	}
}

// WithCascade sets the backing and capacity of paths made by NewCascadingPath.
func WithCascade(b transition.Backing, capacity int) Option {
	return func(o *options) {
		o.backing = b
		o.capacity = capacity
	}
}

// WithDelay waits before every walk step after the first.
func WithDelay(d time.Duration) Option {
	return func(o *options) {
		o.walkerOpts = append(o.walkerOpts, runner.WithDelay(d))
	}
}

// WithMaxSteps bounds walks.
func WithMaxSteps(n int) Option {
	return func(o *options) {
		o.walkerOpts = append(o.walkerOpts, runner.WithMaxSteps(n))
	}
}

// WithLogger sets the walk logger. Engine logging goes through the process-wide sink.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.walkerOpts = append(o.walkerOpts, runner.WithLogger(logger))
	}
}

// WithStepHook calls fn after every walk step.
func WithStepHook(fn func(runner.Step)) Option {
	return func(o *options) {
		o.walkerOpts = append(o.walkerOpts, runner.WithStepHook(fn))
	}
}

// WithConfig applies a loaded configuration. Options listed after it override it.
//
// It also initializes the process-wide log sink from cfg.Logging.
func WithConfig(cfg config.Config) Option {
	return func(o *options) {
		o.cfg = &cfg
		o.name = cfg.Engine.Name
		o.deterministic = cfg.Engine.Deterministic
		o.backing = transition.Backing(cfg.Cascade.Backing)
		o.capacity = cfg.Cascade.Capacity
		o.walkerOpts = append(o.walkerOpts,
			runner.WithDelay(cfg.Engine.Delay),
			runner.WithMaxSteps(cfg.Engine.MaxSteps),
		)
	}
}

// New creates an Engine. It is a plain engine unless WithDeterministic,
// WithRegistry or a deterministic configuration says otherwise.
func New[I, O any](opts ...Option) (*Engine[I, O], error) {
	o := &options{
		name:    "automata",
		backing: transition.BackingRing,
	}
	for _, opt := range opts {
		opt(o)
	}

	e := &Engine[I, O]{
		name:          o.name,
		deterministic: o.deterministic,
		backing:       o.backing,
		capacity:      o.capacity,
		walker:        runner.NewWalker[I, O](o.walkerOpts...),
	}

	if o.cfg != nil {
		if err := o.cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
		}
		logging.Init(o.cfg.LogConfig())
		if o.registry == nil && o.deterministic {
			if err := e.openRegistry(o, o.cfg.Registry); err != nil {
				return nil, err
			}
		}
	}

	if o.metrics != nil {
		m := observability.NewMetrics(o.metrics)
		o.hooks = o.hooks.Merge(m.Hooks())
	}

	engineOpts := []engine.Option{
		engine.WithName(o.name),
		engine.WithLifecycleHooks(o.hooks),
	}
	if !e.deterministic {
		e.Transiter = engine.NewManager[I, O](engineOpts...)
		return e, nil
	}

	if o.registry == nil {
		o.registry = memory.NewRegistry()
	}
	e.registry = o.registry
	engineOpts = append(engineOpts, engine.WithRegistry(o.registry))
	if o.pathLock != nil {
		engineOpts = append(engineOpts, engine.WithPathLock(o.pathLock))
	}
	e.Transiter = engine.NewDeterministic[I, O](engineOpts...)
	return e, nil
}

func (e *Engine[I, O]) openRegistry(o *options, rc config.Registry) error {
	switch rc.Backend {
	case "", config.BackendMemory:
		o.registry = memory.NewRegistry()
	case config.BackendRedis:
		r := redis.New(rc.Addr, rc.Password, rc.DB,
			redis.WithPrefix(rc.Prefix),
			redis.WithTTL(rc.TTL),
		)
		o.registry = r
		e.closers = append(e.closers, r)
		if o.pathLock == nil {
			o.pathLock = lock.NewKeyed(lock.WithLocker(redis.NewLocker(r.Client(), rc.Prefix)))
		}
	default:
		return fmt.Errorf("%w: unknown registry backend %q", config.ErrInvalidConfig, rc.Backend)
	}
	return nil
}

// Name returns the engine label.
func (e *Engine[I, O]) Name() string {
	return e.name
}

// Deterministic reports whether TransitPath rejects replayed paths.
func (e *Engine[I, O]) Deterministic() bool {
	return e.deterministic
}

// Registry returns the path registry of a deterministic engine, or nil.
func (e *Engine[I, O]) Registry() ports.PathRegistry {
	return e.registry
}

// NewCascadingPath creates an empty cascading path with the engine's backing and capacity.
func (e *Engine[I, O]) NewCascadingPath(name string) (*transition.CascadingPath[I, O], error) {
	return transition.NewCascadingPath[I, O](name,
		transition.WithBacking(e.backing),
		transition.WithCapacity(e.capacity),
	)
}

// Walk runs path to completion, see runner.Walker.
func (e *Engine[I, O]) Walk(ctx context.Context, path transition.Route[I, O], listener domain.Listener[I, O]) (runner.Result, error) {
	return e.walker.Walk(ctx, e.Transiter, path, listener)
}

// Close releases the registry connection, if any.
func (e *Engine[I, O]) Close() error {
	var errs []error
	for _, c := range e.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
