package regula_test

import (
	"strings"
	"testing"

	"github.com/aretw0/regula"
	"github.com/aretw0/regula/pkg/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, strings.TrimSpace(regula.Version))
}

func TestMatch_Error(t *testing.T) {
	_, err := regula.Match("(a", "a")
	require.Error(t, err)
	assert.ErrorIs(t, err, pattern.ErrUnbalanced)
}

func TestMustCompile_Panics(t *testing.T) {
	assert.Panics(t, func() { regula.MustCompile("*") })
	assert.NotPanics(t, func() { regula.MustCompile("a*") })
}
