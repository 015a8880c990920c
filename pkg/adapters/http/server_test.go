package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/regula/internal/logging"
	httpAdapter "github.com/aretw0/regula/pkg/adapters/http"
	"github.com/aretw0/regula/pkg/adapters/memory"
	"github.com/aretw0/regula/pkg/domain"
	"github.com/aretw0/regula/pkg/observability"
	"github.com/aretw0/regula/pkg/registry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T, seed ...domain.Pattern) (http.Handler, *memory.Store) {
	t.Helper()
	store := memory.NewStore(seed...)
	promReg := prometheus.NewRegistry()
	reg := registry.New(store,
		registry.WithLogger(logging.NewNop()),
		registry.WithMetrics(observability.NewMetrics(promReg)),
	)
	h := httpAdapter.NewHandler(reg,
		httpAdapter.WithLogger(logging.NewNop()),
		httpAdapter.WithMetricsHandler(promhttp.HandlerFor(promReg, promhttp.HandlerOpts{})),
	)
	return h, store
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestMatch_Inline(t *testing.T) {
	h, _ := newHandler(t)

	w := do(t, h, "POST", "/match", httpAdapter.MatchRequest{Pattern: "(ab)*", Input: "abab"})
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[domain.MatchResult](t, w)
	assert.True(t, res.Matched)
	assert.Equal(t, "(ab)*", res.Pattern)

	w = do(t, h, "POST", "/match", httpAdapter.MatchRequest{Pattern: "..", Input: "a"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[domain.MatchResult](t, w).Matched)
}

func TestMatch_Named(t *testing.T) {
	h, _ := newHandler(t, domain.Pattern{Name: "digits", Expr: "[0-9]+"})

	w := do(t, h, "POST", "/match", httpAdapter.MatchRequest{Name: "digits", Input: "2024"})
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[domain.MatchResult](t, w)
	assert.True(t, res.Matched)
	assert.Equal(t, "digits", res.Pattern)

	w = do(t, h, "POST", "/match", httpAdapter.MatchRequest{Name: "missing", Input: "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMatch_BadRequests(t *testing.T) {
	h, _ := newHandler(t)

	tests := []struct {
		name string
		body any
		want int
	}{
		{"neither pattern nor name", httpAdapter.MatchRequest{Input: "a"}, http.StatusBadRequest},
		{"both pattern and name", httpAdapter.MatchRequest{Pattern: "a", Name: "a", Input: "a"}, http.StatusBadRequest},
		{"syntax error", httpAdapter.MatchRequest{Pattern: "(a", Input: "a"}, http.StatusBadRequest},
		{"unknown field", map[string]string{"regex": "a"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, "POST", "/match", tt.body)
			assert.Equal(t, tt.want, w.Code)
			assert.NotEmpty(t, decode[httpAdapter.ErrorResponse](t, w).Error)
		})
	}
}

func TestMatch_BodyTooLarge(t *testing.T) {
	h, _ := newHandler(t)

	body := `{"pattern":"a*","input":"` + strings.Repeat("a", httpAdapter.MaxBodyBytes) + `"}`
	req := httptest.NewRequest("POST", "/match", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestMatchAll(t *testing.T) {
	h, _ := newHandler(t,
		domain.Pattern{Name: "b-any", Expr: ".*"},
		domain.Pattern{Name: "a-digits", Expr: "[0-9]+"},
		domain.Pattern{Name: "c-letters", Expr: "[a-z]+"},
	)

	w := do(t, h, "POST", "/match/all", httpAdapter.MatchRequest{Input: "42"})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[httpAdapter.MatchAllResponse](t, w)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, "a-digits", resp.Results[0].Pattern)
	assert.True(t, resp.Results[0].Matched)
	assert.True(t, resp.Results[1].Matched)
	assert.False(t, resp.Results[2].Matched)
}

func TestPatterns_CRUD(t *testing.T) {
	h, store := newHandler(t)

	w := do(t, h, "PUT", "/patterns/hex", domain.Pattern{Name: "ignored", Expr: "[0-9a-f]+", Tags: []string{"num"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "hex", decode[domain.Pattern](t, w).Name)

	stored, err := store.Load(t.Context(), "hex")
	require.NoError(t, err)
	assert.Equal(t, "[0-9a-f]+", stored.Expr)

	w = do(t, h, "GET", "/patterns/hex", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"num"}, decode[domain.Pattern](t, w).Tags)

	w = do(t, h, "GET", "/patterns", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Pattern](t, w), 1)

	w = do(t, h, "DELETE", "/patterns/hex", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, "GET", "/patterns/hex", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPatterns_PutInvalid(t *testing.T) {
	h, _ := newHandler(t)

	w := do(t, h, "PUT", "/patterns/bad", domain.Pattern{Expr: "a{2,1}"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "PUT", "/patterns/-bad", domain.Pattern{Expr: "a"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPatterns_Graph(t *testing.T) {
	h, _ := newHandler(t, domain.Pattern{Name: "ab", Expr: "ab"})

	w := do(t, h, "GET", "/patterns/ab/graph", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "graph LR\n"))
	assert.NotContains(t, w.Body.String(), "classDef")

	w = do(t, h, "GET", "/patterns/ab/graph?input=ab", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "class s3 accepted;")

	w = do(t, h, "GET", "/patterns/ab/graph?input=a", nil)
	assert.Contains(t, w.Body.String(), "class s1 active;")
	assert.Contains(t, w.Body.String(), "class s2 active;")

	w = do(t, h, "GET", "/patterns/nope/graph", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetrics(t *testing.T) {
	h, _ := newHandler(t)

	do(t, h, "POST", "/match", httpAdapter.MatchRequest{Pattern: "a", Input: "a"})

	w := do(t, h, "GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `regula_matches_total{pattern="adhoc",result="matched"} 1`)
}

func TestCORS(t *testing.T) {
	h, _ := newHandler(t)

	w := do(t, h, "OPTIONS", "/match", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
