package nfa

import "strconv"

// Symbol labels a transition. It is either a literal rune or the wildcard, which
// matches any single input rune.
type Symbol struct {
	r        rune
	wildcard bool
}

// Wildcard matches any one input rune.
var Wildcard = Symbol{wildcard: true}

// Lit returns the symbol matching exactly r.
func Lit(r rune) Symbol {
	return Symbol{r: r}
}

// IsWildcard reports whether s is the wildcard.
func (s Symbol) IsWildcard() bool { return s.wildcard }

// Rune returns the literal rune of s. It is zero for the wildcard.
func (s Symbol) Rune() rune { return s.r }

// String renders literals quoted and the wildcard as a bare dot.
func (s Symbol) String() string {
	if s.wildcard {
		return "."
	}
	return strconv.QuoteRune(s.r)
}

// less orders literals by rune and places the wildcard last.
func (s Symbol) less(o Symbol) bool {
	if s.wildcard != o.wildcard {
		return o.wildcard
	}
	return s.r < o.r
}
