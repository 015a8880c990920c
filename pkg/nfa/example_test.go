package nfa_test

import (
	"fmt"

	"github.com/aretw0/regula/pkg/nfa"
)

func Example() {
	ab := nfa.Concat(nfa.Literal(nfa.Lit('a')), nfa.Literal(nfa.Lit('b')))
	c := nfa.Literal(nfa.Lit('c'))
	a := nfa.Concat(nfa.Star(ab), nfa.Star(c))

	for _, s := range []string{"ababab", "ababccc", "abb"} {
		fmt.Println(s, a.MatchString(s))
	}
	// Output:
	// ababab true
	// ababccc true
	// abb false
}

func ExampleLiteral_wildcard() {
	any2 := nfa.Concat(nfa.Literal(nfa.Wildcard), nfa.Literal(nfa.Wildcard))
	fmt.Println(any2.MatchString("a"), any2.MatchString("ab"))
	fmt.Println(any2)
	// Output:
	// false true
	// NFA{states: 4, starting: {0}, finished: {3}, delta: {(0, .) -> {1, 2}, (2, .) -> {3}}}
}
