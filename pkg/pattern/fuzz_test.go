package pattern_test

import (
	"testing"

	"github.com/aretw0/regula/pkg/pattern"
)

func FuzzParse(f *testing.F) {
	f.Add("a(b|c)*d", "abcbd")
	f.Add("[a-z]{2,3}", "ok")
	f.Add(`\(\)`, "()")
	f.Add("", "")
	f.Add("((|a)*)*", "aaa")

	f.Fuzz(func(t *testing.T, expr, input string) {
		if len(expr) > 64 {
			return
		}
		node, err := pattern.Parse(expr)
		if err != nil {
			return
		}
		if cost := pattern.Estimate(node); cost.States > pattern.MaxStates || cost.Work > pattern.MaxWork {
			return
		}

		canonical := node.String()
		again, err := pattern.Parse(canonical)
		if err != nil {
			t.Fatalf("canonical form %q of %q does not parse: %v", canonical, expr, err)
		}
		if again.String() != canonical {
			t.Fatalf("canonical form is not stable: %q then %q", canonical, again.String())
		}

		a := pattern.Build(node)
		if err := a.Validate(); err != nil {
			t.Fatal(err)
		}
		if a.MatchString(input) != pattern.Build(again).MatchString(input) {
			t.Errorf("%q and its canonical form %q disagree on %q", expr, canonical, input)
		}
	})
}
