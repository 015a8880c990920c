package pattern_test

import (
	"testing"

	"github.com/aretw0/regula/pkg/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Structure(t *testing.T) {
	node, err := pattern.Parse("a(b|c)*d{2,3}")
	require.NoError(t, err)

	concat, ok := node.(*pattern.Concat)
	require.True(t, ok, "got %T", node)
	require.Len(t, concat.Nodes, 3)

	assert.Equal(t, &pattern.Literal{Rune: 'a'}, concat.Nodes[0])

	star, ok := concat.Nodes[1].(*pattern.Repeat)
	require.True(t, ok)
	assert.Equal(t, 0, star.Min)
	assert.Equal(t, -1, star.Max)
	assert.Equal(t, pattern.NodeAlternate, star.Body.Type())

	assert.Equal(t, &pattern.Repeat{Body: &pattern.Literal{Rune: 'd'}, Min: 2, Max: 3}, concat.Nodes[2])
}

func TestParse_Flattening(t *testing.T) {
	node, err := pattern.Parse("(ab)c")
	require.NoError(t, err)
	assert.Len(t, node.(*pattern.Concat).Nodes, 3)

	node, err = pattern.Parse("(a|b)|c")
	require.NoError(t, err)
	assert.Len(t, node.(*pattern.Alternate).Nodes, 3)

	node, err = pattern.Parse("()")
	require.NoError(t, err)
	assert.Equal(t, pattern.NodeEmpty, node.Type())
}

func TestParse_RoundTrip(t *testing.T) {
	tests := []struct {
		in, canonical string
	}{
		{"", ""},
		{"abc", "abc"},
		{"a|b|", "a|b|"},
		{"(a|b)c", "(a|b)c"},
		{"(ab)*", "(ab)*"},
		{"a+b?", "a+b?"},
		{"a{0,}", "a*"},
		{"a{1,}", "a+"},
		{"a{0,1}", "a?"},
		{"a{3}", "a{3}"},
		{"a{2,}", "a{2,}"},
		{"a{2,5}", "a{2,5}"},
		{"a**", "(a*)*"},
		{"()*", "()*"},
		{`\.\*\\`, `\.\*\\`},
		{"}]", `\}\]`},
		{"[a-c_]", "[a-c_]"},
		{`[\]\-]`, `[\]\-]`},
		{"[a-]", `[a\-]`},
		{".", "."},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			node, err := pattern.Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.canonical, node.String())

			again, err := pattern.Parse(node.String())
			require.NoError(t, err)
			assert.Equal(t, node.String(), again.String())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		in  string
		err error
		pos int
	}{
		{"(a", pattern.ErrUnbalanced, 0},
		{"a)", pattern.ErrUnbalanced, 1},
		{"ab(c(d)", pattern.ErrUnbalanced, 2},
		{"*a", pattern.ErrMissingOperand, 0},
		{"a|+", pattern.ErrMissingOperand, 2},
		{"(?)", pattern.ErrMissingOperand, 1},
		{"a{", pattern.ErrBadRepeat, 2},
		{"a{,2}", pattern.ErrBadRepeat, 2},
		{"a{3,1}", pattern.ErrBadRepeat, 1},
		{"a{2001}", pattern.ErrBadRepeat, 1},
		{"a{1", pattern.ErrBadRepeat, 3},
		{"[]", pattern.ErrBadClass, 0},
		{"[^a]", pattern.ErrBadClass, 1},
		{"[z-a]", pattern.ErrBadClass, 4},
		{"[a-￿]", pattern.ErrBadClass, 4},
		{"[ab", pattern.ErrUnbalanced, 0},
		{`ab\`, pattern.ErrTrailingEscape, 3},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := pattern.Parse(tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)

			var syn *pattern.SyntaxError
			require.ErrorAs(t, err, &syn)
			assert.Equal(t, tt.in, syn.Expr)
			assert.Equal(t, tt.pos, syn.Pos)
		})
	}
}

func TestSyntaxError_Message(t *testing.T) {
	_, err := pattern.Parse("a{3,1}")
	assert.EqualError(t, err, `pattern "a{3,1}": invalid repetition bounds at offset 1: {3,1} has max below min`)

	_, err = pattern.Parse(`\`)
	assert.EqualError(t, err, `pattern "\\": trailing backslash at offset 1`)
}
