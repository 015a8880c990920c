package domain

import "errors"

// ErrPatternNotFound is returned when a pattern name cannot be found in the store.
var ErrPatternNotFound = errors.New("pattern not found")

// ErrInvalidPattern is returned when a pattern record fails validation.
var ErrInvalidPattern = errors.New("invalid pattern")
