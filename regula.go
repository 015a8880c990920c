package regula

import (
	_ "embed"

	"github.com/aretw0/regula/pkg/nfa"
	"github.com/aretw0/regula/pkg/pattern"
	"github.com/aretw0/regula/pkg/stream"
)

// Version is the release version, read from the VERSION file at build time.
//
//go:embed VERSION
var Version string

// Compile parses expr and builds its automaton.
func Compile(expr string) (*nfa.Automaton, error) {
	return pattern.Compile(expr)
}

// MustCompile is like Compile but panics if expr does not parse.
func MustCompile(expr string) *nfa.Automaton {
	return pattern.MustCompile(expr)
}

// Match reports whether input belongs to the language of expr.
func Match(expr, input string) (bool, error) {
	a, err := pattern.Compile(expr)
	if err != nil {
		return false, err
	}
	return a.Match(stream.String(input)), nil
}
