package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/transition"
)

// Registry backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config is the root configuration.
type Config struct {
	Logging  Logging  `yaml:"logging" mapstructure:"logging" envPrefix:"LOG_"`
	Engine   Engine   `yaml:"engine" mapstructure:"engine" envPrefix:"ENGINE_"`
	Cascade  Cascade  `yaml:"cascade" mapstructure:"cascade" envPrefix:"CASCADE_"`
	Registry Registry `yaml:"registry" mapstructure:"registry" envPrefix:"REGISTRY_"`
	Metrics  Metrics  `yaml:"metrics" mapstructure:"metrics" envPrefix:"METRICS_"`
}

// Logging configures the process-wide engine log sink.
type Logging struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled" env:"ENABLED"`
	Level   string `yaml:"level" mapstructure:"level" env:"LEVEL"`
	// Format is "text" or "json".
	Format string `yaml:"format" mapstructure:"format" env:"FORMAT"`
}

// Engine configures the transition engine.
type Engine struct {
	Name          string        `yaml:"name" mapstructure:"name" env:"NAME"`
	Deterministic bool          `yaml:"deterministic" mapstructure:"deterministic" env:"DETERMINISTIC"`
	Delay         time.Duration `yaml:"delay" mapstructure:"delay" env:"DELAY"`
	MaxSteps      int           `yaml:"max_steps" mapstructure:"max_steps" env:"MAX_STEPS"`
}

// Cascade configures cascading paths.
type Cascade struct {
	Backing  string `yaml:"backing" mapstructure:"backing" env:"BACKING"`
	Capacity int    `yaml:"capacity" mapstructure:"capacity" env:"CAPACITY"`
}

// Registry configures where a deterministic engine records accepted paths.
type Registry struct {
	Backend  string        `yaml:"backend" mapstructure:"backend" env:"BACKEND"`
	Addr     string        `yaml:"addr" mapstructure:"addr" env:"ADDR"`
	Password string        `yaml:"password" mapstructure:"password" env:"PASSWORD"`
	DB       int           `yaml:"db" mapstructure:"db" env:"DB"`
	Prefix   string        `yaml:"prefix" mapstructure:"prefix" env:"PREFIX"`
	TTL      time.Duration `yaml:"ttl" mapstructure:"ttl" env:"TTL"`
}

// Metrics configures the operational HTTP endpoint.
type Metrics struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled" env:"ENABLED"`
	Addr    string `yaml:"addr" mapstructure:"addr" env:"ADDR"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
		Engine: Engine{
			Name:     "automata",
			MaxSteps: 10000,
		},
		Cascade: Cascade{
			Backing: string(transition.BackingRing),
		},
		Registry: Registry{
			Backend: BackendMemory,
			Prefix:  "automata:path:",
		},
		Metrics: Metrics{
			Addr: ":2112",
		},
	}
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format: unknown format %q", c.Logging.Format))
	}

	if c.Engine.Delay < 0 {
		errs = append(errs, errors.New("engine.delay: must not be negative"))
	}
	if c.Engine.MaxSteps < 0 {
		errs = append(errs, errors.New("engine.max_steps: must not be negative"))
	}

	if _, err := transition.ParseBacking(c.Cascade.Backing); err != nil {
		errs = append(errs, fmt.Errorf("cascade.backing: %w", err))
	}
	if c.Cascade.Capacity < 0 {
		errs = append(errs, errors.New("cascade.capacity: must not be negative"))
	}

	switch c.Registry.Backend {
	case "", BackendMemory:
	case BackendRedis:
		if c.Registry.Addr == "" {
			errs = append(errs, errors.New("registry.addr: required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("registry.backend: unknown backend %q", c.Registry.Backend))
	}
	if c.Registry.TTL < 0 {
		errs = append(errs, errors.New("registry.ttl: must not be negative"))
	}

	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		errs = append(errs, errors.New("metrics.addr: required when metrics are enabled"))
	}

	return errors.Join(errs...)
}

// LogConfig converts the logging section into a sink configuration.
func (c Config) LogConfig() logging.Config {
	level, _ := logging.ParseLevel(c.Logging.Level)
	return logging.Config{
		Enabled: c.Logging.Enabled,
		Level:   level,
		JSON:    c.Logging.Format == "json",
	}
}
