package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "AUTOMATA_"

// ErrInvalidConfig wraps every load and validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

type loadOptions struct {
	dotenv      []string
	environment map[string]string
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

// WithDotEnv loads the given .env files before reading the environment.
// Missing files are ignored. Variables already set are not overwritten.
func WithDotEnv(files ...string) LoadOption {
	return func(o *loadOptions) {
		if len(files) == 0 {
			files = []string{".env"}
		}
		o.dotenv = append(o.dotenv, files...)
	}
}

// WithEnvironment reads overrides from env instead of the process environment.
func WithEnvironment(env map[string]string) LoadOption {
	return func(o *loadOptions) {
		o.environment = env
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when path
// is empty) and the environment, then validates it.
func Load(path string, opts ...LoadOption) (Config, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	cfg := Default()
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	for _, file := range o.dotenv {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: failed to load %s: %w", ErrInvalidConfig, file, err)
		}
	}

	envOpts := env.Options{Prefix: EnvPrefix}
	if o.environment != nil {
		envOpts.Environment = o.environment
	}
	if err := env.ParseWithOptions(&cfg, envOpts); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: failed to parse %s: %w", ErrInvalidConfig, path, err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	return nil
}
