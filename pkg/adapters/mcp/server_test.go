package mcp

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/aretw0/regula/internal/logging"
	"github.com/aretw0/regula/pkg/adapters/memory"
	"github.com/aretw0/regula/pkg/domain"
	"github.com/aretw0/regula/pkg/registry"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *Server {
	t.Helper()
	store := memory.NewStore(
		domain.Pattern{Name: "digits", Expr: "[0-9]+"},
		domain.Pattern{Name: "word", Expr: "[a-z]+"},
	)
	reg := registry.New(store, registry.WithLogger(logging.NewNop()))
	return NewServer(reg, logging.NewNop())
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestHandleMatchPattern(t *testing.T) {
	s := newServer(t)

	res, err := s.handleMatchPattern(t.Context(), mcp.CallToolRequest{}, map[string]interface{}{
		"pattern": "(a|b)*c", "input": "abac",
	})
	require.NoError(t, err)
	assert.True(t, res.Matched)

	_, err = s.handleMatchPattern(t.Context(), mcp.CallToolRequest{}, map[string]interface{}{
		"pattern": "(", "input": "",
	})
	assert.Error(t, err)
}

func TestHandleMatchNamed(t *testing.T) {
	s := newServer(t)

	res, err := s.handleMatchNamed(t.Context(), mcp.CallToolRequest{}, map[string]interface{}{
		"name": "digits", "input": "12",
	})
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.Equal(t, "digits", res.Pattern)

	_, err = s.handleMatchNamed(t.Context(), mcp.CallToolRequest{}, map[string]interface{}{
		"name": "missing", "input": "12",
	})
	assert.ErrorIs(t, err, domain.ErrPatternNotFound)
}

func TestHandleMatchAll(t *testing.T) {
	s := newServer(t)

	res, err := s.handleMatchAll(t.Context(), mcp.CallToolRequest{}, map[string]interface{}{"input": "abc"})
	require.NoError(t, err)
	require.Len(t, res.Results, 2)
	assert.False(t, res.Results[0].Matched)
	assert.True(t, res.Results[1].Matched)
}

func TestHandleListPatterns(t *testing.T) {
	s := newServer(t)

	res, err := s.handleListPatterns(t.Context(), callRequest(nil))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var patterns []domain.Pattern
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &patterns))
	require.Len(t, patterns, 2)
	assert.Equal(t, "digits", patterns[0].Name)
}

func TestHandleGraphPattern(t *testing.T) {
	s := newServer(t)

	res, err := s.handleGraphPattern(t.Context(), callRequest(map[string]any{"name": "digits"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "graph LR")

	res, err = s.handleGraphPattern(t.Context(), callRequest(map[string]any{"name": "nope"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = s.handleGraphPattern(t.Context(), callRequest(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestReadPatterns(t *testing.T) {
	s := newServer(t)

	contents, err := s.readPatterns(t.Context(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, PatternsURI, text.URI)
	assert.Contains(t, text.Text, `"name":"word"`)
}

func TestPatternListing_EncodeFailure(t *testing.T) {
	s := newServer(t)
	marshalJSON = func(any) ([]byte, error) { return nil, errors.New("boom") }
	t.Cleanup(func() { marshalJSON = json.Marshal })

	res, err := s.handleListPatterns(t.Context(), callRequest(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "encode failed: boom")

	contents, err := s.readPatterns(t.Context(), mcp.ReadResourceRequest{})
	assert.Nil(t, contents)
	assert.ErrorContains(t, err, "failed to encode patterns: boom")
}
