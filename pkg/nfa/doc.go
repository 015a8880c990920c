/*
Package nfa implements nondeterministic finite automata built compositionally from
primitive patterns and combinators, and a subset-simulation matcher.

There are no silent (epsilon) transitions. Each combinator splices reachability directly
into the transition table of a freshly allocated automaton, so the matcher only ever
follows symbol edges.

# Construction

	ab := nfa.Concat(nfa.Literal(nfa.Lit('a')), nfa.Literal(nfa.Lit('b')))
	abStar := nfa.Star(ab)
	abStar.MatchString("abab") // true

Automata are immutable once a constructor returns. Operands are read, never modified or
aliased, so one automaton may be combined any number of times and matched from any number
of goroutines.

# Invariants

Every automaton produced here satisfies, and is checked for on construction:

  - every state in the starting set, finished set and transition table is below States();
  - states are numbered densely from zero;
  - the transition table maps each (state, symbol) key to one fixed set.

A violation is a defect in a combinator and panics with *InvariantError.
*/
package nfa
