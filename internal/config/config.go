// Package config loads regula's settings from defaults, an optional YAML file and
// REGULA_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Backend names accepted by store.backend.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendFile   = "file"
)

// Config is the full application configuration.
type Config struct {
	LogLevel string `mapstructure:"log_level"`
	Workers  int    `mapstructure:"workers"`
	HTTP     HTTP   `mapstructure:"http"`
	Store    Store  `mapstructure:"store"`
}

// HTTP configures the API server.
type HTTP struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Store selects and configures the pattern store.
type Store struct {
	Backend string `mapstructure:"backend"`
	Redis   Redis  `mapstructure:"redis"`
	File    File   `mapstructure:"file"`
}

// Redis configures the Redis pattern store.
type Redis struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// File configures the YAML pattern store.
type File struct {
	Path string `mapstructure:"path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		HTTP: HTTP{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Store: Store{
			Backend: BackendMemory,
			Redis: Redis{
				Addr:   "localhost:6379",
				Prefix: "regula:pattern:",
			},
			File: File{Path: "patterns.yaml"},
		},
	}
}

// Load builds the configuration. An empty path skips the file; a named file that
// does not exist is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := decodeYAML(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func decodeYAML(raw []byte, cfg *Config) error {
	var generic map[string]any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return err
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(generic)
}

// envBindings maps environment variables to configuration fields.
var envBindings = map[string]func(*Config) any{
	"REGULA_LOG_LEVEL":      func(c *Config) any { return &c.LogLevel },
	"REGULA_WORKERS":        func(c *Config) any { return &c.Workers },
	"REGULA_HTTP_ADDR":      func(c *Config) any { return &c.HTTP.Addr },
	"REGULA_STORE_BACKEND":  func(c *Config) any { return &c.Store.Backend },
	"REGULA_REDIS_ADDR":     func(c *Config) any { return &c.Store.Redis.Addr },
	"REGULA_REDIS_PASSWORD": func(c *Config) any { return &c.Store.Redis.Password },
	"REGULA_REDIS_DB":       func(c *Config) any { return &c.Store.Redis.DB },
	"REGULA_REDIS_TTL":      func(c *Config) any { return &c.Store.Redis.TTL },
	"REGULA_FILE_PATH":      func(c *Config) any { return &c.Store.File.Path },
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	for name, field := range envBindings {
		val, ok := lookup(name)
		if !ok {
			continue
		}
		switch ptr := field(cfg).(type) {
		case *string:
			*ptr = val
		case *int:
			n, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			*ptr = n
		case *time.Duration:
			d, err := time.ParseDuration(val)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			*ptr = d
		default:
			return fmt.Errorf("%s: unsupported field type %s", name, reflect.TypeOf(ptr))
		}
	}
	return nil
}

// Validate rejects settings no component can run with.
func (c Config) Validate() error {
	var errs []error
	switch c.Store.Backend {
	case BackendMemory, BackendRedis, BackendFile:
	default:
		errs = append(errs, fmt.Errorf("store.backend: unknown backend %q", c.Store.Backend))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers: must not be negative, got %d", c.Workers))
	}
	if c.Store.Backend == BackendFile && c.Store.File.Path == "" {
		errs = append(errs, errors.New("store.file.path: required for the file backend"))
	}
	return errors.Join(errs...)
}
