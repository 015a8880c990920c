// Package registry compiles stored patterns into automata and evaluates inputs
// against them.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/aretw0/regula/pkg/domain"
	"github.com/aretw0/regula/pkg/nfa"
	"github.com/aretw0/regula/pkg/observability"
	"github.com/aretw0/regula/pkg/pattern"
	"github.com/aretw0/regula/pkg/ports"
	"github.com/aretw0/regula/pkg/stream"
	"golang.org/x/sync/errgroup"
)

type entry struct {
	expr      string
	automaton *nfa.Automaton
}

// Registry caches compiled automata for the patterns of a store.
// Automata are immutable, so cached values are shared between goroutines as-is.
type Registry struct {
	store   ports.PatternStore
	logger  *slog.Logger
	metrics *observability.Metrics
	workers int

	mu    sync.RWMutex
	cache map[string]entry
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithMetrics enables instrumentation.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// WithWorkers bounds how many patterns MatchAll evaluates at once.
// Values below one fall back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(r *Registry) {
		r.workers = n
	}
}

// New creates a registry over store.
func New(store ports.PatternStore, opts ...Option) *Registry {
	r := &Registry{
		store:  store,
		logger: slog.Default(),
		cache:  make(map[string]entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.workers < 1 {
		r.workers = runtime.GOMAXPROCS(0)
	}
	return r
}

// Compile compiles an ad-hoc expression without caching it.
func (r *Registry) Compile(expr string) (*nfa.Automaton, error) {
	a, err := pattern.Compile(expr)
	if err != nil {
		r.metrics.ObserveCompile(0, err)
		return nil, err
	}
	r.metrics.ObserveCompile(a.States(), nil)
	return a, nil
}

// Automaton loads a stored pattern and returns its compiled automaton.
// The compiled form is cached until the stored expression changes.
func (r *Registry) Automaton(ctx context.Context, name string) (domain.Pattern, *nfa.Automaton, error) {
	p, err := r.store.Load(ctx, name)
	if err != nil {
		return domain.Pattern{}, nil, err
	}

	r.mu.RLock()
	cached, ok := r.cache[name]
	r.mu.RUnlock()
	if ok && cached.expr == p.Expr {
		return p, cached.automaton, nil
	}

	a, err := r.Compile(p.Expr)
	if err != nil {
		r.logger.Warn("Stored pattern does not compile", "pattern", name, "error", err)
		return p, nil, fmt.Errorf("%w: %s: %w", domain.ErrInvalidPattern, name, err)
	}

	r.mu.Lock()
	r.cache[name] = entry{expr: p.Expr, automaton: a}
	r.mu.Unlock()
	r.logger.Debug("Compiled pattern", "pattern", name, "states", a.States())
	return p, a, nil
}

// Put validates and stores a pattern.
func (r *Registry) Put(ctx context.Context, p domain.Pattern) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := r.store.Save(ctx, p); err != nil {
		return fmt.Errorf("failed to save pattern %s: %w", p.Name, err)
	}
	r.forget(p.Name)
	r.logger.Info("Pattern saved", "pattern", p.Name)
	return nil
}

// Remove deletes a pattern from the store and the cache.
func (r *Registry) Remove(ctx context.Context, name string) error {
	if err := r.store.Delete(ctx, name); err != nil {
		return fmt.Errorf("failed to delete pattern %s: %w", name, err)
	}
	r.forget(name)
	r.logger.Info("Pattern removed", "pattern", name)
	return nil
}

func (r *Registry) forget(name string) {
	r.mu.Lock()
	delete(r.cache, name)
	r.mu.Unlock()
}

// List returns every stored pattern, sorted by name. Patterns that disappear
// between listing and loading are skipped.
func (r *Registry) List(ctx context.Context) ([]domain.Pattern, error) {
	names, err := r.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Pattern, 0, len(names))
	for _, name := range names {
		p, err := r.store.Load(ctx, name)
		if errors.Is(err, domain.ErrPatternNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Match evaluates input against the stored pattern name.
func (r *Registry) Match(ctx context.Context, name, input string) (domain.MatchResult, error) {
	_, a, err := r.Automaton(ctx, name)
	if err != nil {
		return domain.MatchResult{}, err
	}
	return r.run(name, a, input), nil
}

// MatchExpr compiles expr and evaluates input against it.
func (r *Registry) MatchExpr(expr, input string) (domain.MatchResult, error) {
	a, err := r.Compile(expr)
	if err != nil {
		return domain.MatchResult{}, err
	}
	res := r.run("", a, input)
	res.Pattern = expr
	return res, nil
}

// MatchAll evaluates input against every stored pattern.
//
// Each pattern is simulated by one goroutine at most, with no state shared between
// simulations. Results are sorted by pattern name. Cancellation is checked before
// each pattern starts; a simulation in progress always runs to completion.
func (r *Registry) MatchAll(ctx context.Context, input string) ([]domain.MatchResult, error) {
	names, err := r.store.List(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]domain.MatchResult, len(names))
	found := make([]bool, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, a, err := r.Automaton(gctx, name)
			if errors.Is(err, domain.ErrPatternNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			results[i] = r.run(name, a, input)
			found[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := results[:0]
	for i, res := range results {
		if found[i] {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *Registry) run(name string, a *nfa.Automaton, input string) domain.MatchResult {
	start := time.Now()
	matched := a.Match(stream.String(input))
	r.metrics.ObserveMatch(name, matched, time.Since(start))
	return domain.MatchResult{
		Pattern: name,
		Input:   input,
		Matched: matched,
		States:  a.States(),
	}
}
