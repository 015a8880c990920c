package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/regula/pkg/domain"
)

// Store implements ports.PatternStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Pattern
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store, optionally seeded with patterns.
func NewStore(seed ...domain.Pattern) *Store {
	s := &Store{
		data: make(map[string]domain.Pattern, len(seed)),
	}
	for _, p := range seed {
		s.data[p.Name] = p.Clone()
	}
	return s
}

// Save persists the pattern in memory.
func (s *Store) Save(ctx context.Context, p domain.Pattern) error {
	// Copy so the caller can't mutate stored tags through its slice.
	copied := p.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[p.Name] = copied
	return nil
}

// Load retrieves the pattern from memory.
func (s *Store) Load(ctx context.Context, name string) (domain.Pattern, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.data[name]
	if !ok {
		return domain.Pattern{}, domain.ErrPatternNotFound
	}
	return p.Clone(), nil
}

// Delete removes the pattern.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}
