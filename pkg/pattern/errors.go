package pattern

import (
	"errors"
	"fmt"
)

var (
	// ErrUnbalanced is returned when parentheses or brackets do not pair up.
	ErrUnbalanced = errors.New("unbalanced group")
	// ErrMissingOperand is returned when a repetition operator has nothing to repeat.
	ErrMissingOperand = errors.New("missing operand for repetition")
	// ErrBadRepeat is returned for malformed or out of range {m,n} bounds.
	ErrBadRepeat = errors.New("invalid repetition bounds")
	// ErrBadClass is returned for empty, negated, reversed or oversized classes.
	ErrBadClass = errors.New("invalid character class")
	// ErrTrailingEscape is returned when the expression ends in a lone backslash.
	ErrTrailingEscape = errors.New("trailing backslash")
	// ErrTooLarge is returned when building the automaton would exceed MaxStates or MaxWork.
	ErrTooLarge = errors.New("pattern too large")
)

// SyntaxError locates a parse failure inside an expression.
type SyntaxError struct {
	Expr   string // The expression being parsed
	Pos    int    // Rune offset of the failure
	Err    error  // One of the Err* sentinels
	Detail string // Optional extra context
}

func (e *SyntaxError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("pattern %q: %v at offset %d", e.Expr, e.Err, e.Pos)
	}
	return fmt.Sprintf("pattern %q: %v at offset %d: %s", e.Expr, e.Err, e.Pos, e.Detail)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
