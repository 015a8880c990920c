/*
Package regula is a small regular-language engine built on nondeterministic finite automata without silent transitions.

Automata are assembled from two primitives and three combinators, and a subset simulation decides whether a sequence of runes belongs to the language. No backtracking happens, so matching time is linear in the input for a fixed automaton.

# Concept

Every automaton is an immutable value with a dense state numbering. Combining two automata renumbers the second operand past the first and splices edges instead of adding silent moves. Because nothing is ever mutated after construction, a compiled automaton can be shared freely between goroutines.

# Key Features

  - Construction algebra: Empty, Literal, Concat, Union and Star, plus derived Plus, Optional and Repeat (package nfa).
  - Wildcard symbols: one transition table holds both literal runes and "any rune" edges.
  - Pattern syntax: a compact regular syntax compiled into the algebra (package pattern).
  - Named patterns: stored in memory, Redis or a YAML file and evaluated in parallel (package registry).
  - Surfaces: a CLI, a JSON API and an MCP server for agents.

# Usage

Build automata directly:

	a := nfa.Concat(nfa.Star(nfa.Literal(nfa.Lit('a'))), nfa.Literal(nfa.Lit('b')))
	a.MatchString("aab") // true

Or compile a pattern:

	ok, err := regula.Match("(ab)*c", "ababc")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(ok) // true

# Command line

	regula match '(ab)*c' ababc
	regula graph '[0-9]+(.[0-9]+)?'
	regula serve --config regula.yaml
*/
package regula
