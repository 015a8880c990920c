package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/regula/internal/config"
	"github.com/aretw0/regula/pkg/adapters/file"
	"github.com/aretw0/regula/pkg/adapters/memory"
	"github.com/aretw0/regula/pkg/adapters/redis"
	"github.com/aretw0/regula/pkg/observability"
	"github.com/aretw0/regula/pkg/ports"
	"github.com/aretw0/regula/pkg/registry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// App bundles the components shared by every command.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Metrics  *observability.Metrics
	Gatherer prometheus.Gatherer
	Store    ports.PatternStore
	Registry *registry.Registry

	closers []func() error
}

// NewApp wires the store selected by cfg into an instrumented registry.
func NewApp(cfg config.Config, logger *slog.Logger) (*App, error) {
	store, closer, err := newStore(cfg.Store)
	if err != nil {
		return nil, err
	}

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(promReg)

	app := &App{
		Config:   cfg,
		Logger:   logger,
		Metrics:  metrics,
		Gatherer: promReg,
		Store:    store,
		Registry: registry.New(store,
			registry.WithLogger(logger),
			registry.WithMetrics(metrics),
			registry.WithWorkers(cfg.Workers),
		),
	}
	if closer != nil {
		app.closers = append(app.closers, closer)
	}
	logger.Debug("Pattern store ready", "backend", cfg.Store.Backend)
	return app, nil
}

// Close releases the store connections.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

func newStore(cfg config.Store) (ports.PatternStore, func() error, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return memory.NewStore(), nil, nil
	case config.BackendFile:
		s, err := file.Open(cfg.File.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("error opening pattern file: %w", err)
		}
		return s, nil, nil
	case config.BackendRedis:
		var opts []redis.Option
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		if cfg.Redis.TTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.Redis.TTL))
		}
		s := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}
