package domain

import (
	"fmt"
	"slices"

	"github.com/aretw0/regula/pkg/pattern"
)

// namePattern restricts names to characters that are safe in URLs, Redis keys and
// Mermaid identifiers.
var namePattern = pattern.MustCompile("[a-zA-Z0-9_][a-zA-Z0-9_.-]{0,63}")

// Pattern is a named expression.
type Pattern struct {
	Name        string   `json:"name" yaml:"name" mapstructure:"name"`
	Expr        string   `json:"expr" yaml:"expr" mapstructure:"expr"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty" mapstructure:"tags"`
}

// Validate checks the name and that the expression parses.
func (p Pattern) Validate() error {
	if !namePattern.MatchString(p.Name) {
		return fmt.Errorf("%w: name %q must be 1-64 characters of [a-zA-Z0-9_.-] not starting with '.' or '-'", ErrInvalidPattern, p.Name)
	}
	if _, err := pattern.Compile(p.Expr); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	return nil
}

// Clone returns a deep copy of p.
func (p Pattern) Clone() Pattern {
	p.Tags = slices.Clone(p.Tags)
	return p
}

// HasTag reports whether p carries tag.
func (p Pattern) HasTag(tag string) bool {
	return slices.Contains(p.Tags, tag)
}
