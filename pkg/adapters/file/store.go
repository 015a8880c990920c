// Package file stores patterns in a YAML document on disk.
//
// The document has a single top-level list:
//
//	patterns:
//	  - name: greeting
//	    expr: hel+o
//	    tags: [demo]
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/aretw0/regula/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

type document struct {
	Patterns []domain.Pattern `yaml:"patterns" mapstructure:"patterns"`
}

// Store implements ports.PatternStore on a YAML file.
// The whole file is read on open and rewritten on every change.
type Store struct {
	path string
	mu   sync.RWMutex
	data map[string]domain.Pattern
}

// Open loads path. A missing file is treated as an empty document and is
// created on the first Save.
func Open(path string) (*Store, error) {
	s := &Store{path: path, data: make(map[string]domain.Pattern)}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern file: %w", err)
	}

	doc, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	for i, p := range doc.Patterns {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%s: pattern #%d: %w", path, i+1, err)
		}
		s.data[p.Name] = p
	}
	return s, nil
}

// decode goes through a generic map so YAML keys are matched by mapstructure tags,
// the same way configuration is decoded.
func decode(raw []byte) (document, error) {
	var generic map[string]any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return document{}, err
	}

	var doc document
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return document{}, err
	}
	if err := decoder.Decode(generic); err != nil {
		return document{}, err
	}
	return doc, nil
}

// Save persists the pattern and rewrites the file.
func (s *Store) Save(ctx context.Context, p domain.Pattern) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.data[p.Name]
	s.data[p.Name] = p.Clone()
	if err := s.flush(); err != nil {
		if existed {
			s.data[p.Name] = prev
		} else {
			delete(s.data, p.Name)
		}
		return err
	}
	return nil
}

// Load retrieves a pattern by name.
func (s *Store) Load(ctx context.Context, name string) (domain.Pattern, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.data[name]
	if !ok {
		return domain.Pattern{}, domain.ErrPatternNotFound
	}
	return p.Clone(), nil
}

// Delete removes a pattern and rewrites the file.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.data[name]
	if !ok {
		return nil
	}
	delete(s.data, name)
	if err := s.flush(); err != nil {
		s.data[name] = prev
		return err
	}
	return nil
}

// List returns the stored names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedNames(), nil
}

func (s *Store) sortedNames() []string {
	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// flush writes the document atomically via a temp file and rename.
// Callers hold the write lock.
func (s *Store) flush() error {
	doc := document{Patterns: make([]domain.Pattern, 0, len(s.data))}
	for _, name := range s.sortedNames() {
		doc.Patterns = append(doc.Patterns, s.data[name])
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode patterns: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".regula-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write patterns: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write patterns: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace pattern file: %w", err)
	}
	return nil
}
