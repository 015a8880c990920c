/*
Package pattern parses textual regular expressions and compiles them into automata.

The syntax is deliberately small:

	x        literal rune
	.        any single rune
	xy       concatenation
	x|y      alternation (either side may be empty)
	x* x+ x? zero or more, one or more, zero or one
	x{m} x{m,} x{m,n}
	(x)      grouping (no capture)
	[abc] [a-z]  set of literal runes
	\x       escaped metacharacter

Every expression matches the whole input; there are no anchors, captures or
back-references.
*/
package pattern
