package ports

import (
	"context"

	"github.com/aretw0/regula/pkg/domain"
)

// PatternStore persists named patterns.
type PatternStore interface {
	// Save creates or replaces the pattern stored under p.Name.
	Save(ctx context.Context, p domain.Pattern) error

	// Load retrieves a pattern by name.
	// Returns domain.ErrPatternNotFound if the pattern does not exist.
	Load(ctx context.Context, name string) (domain.Pattern, error)

	// Delete removes a pattern. Deleting a missing pattern is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored patterns, sorted.
	List(ctx context.Context) ([]string, error)
}
