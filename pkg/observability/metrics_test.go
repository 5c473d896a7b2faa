package observability_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/ecoguia/pkg/domain"
	"github.com/aretw0/ecoguia/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *observability.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics()
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.EmitTransition(ctx, &domain.TransitionEvent{FromNodeID: "a", ToNodeID: "b", ToType: "end"})
	hooks.EmitTransition(ctx, &domain.TransitionEvent{FromNodeID: "a", ToNodeID: "b", ToType: "end"})
	hooks.EmitTransition(ctx, &domain.TransitionEvent{FromNodeID: "a", Err: &domain.InputError{NodeID: "a", Field: "option_id"}})
	hooks.EmitSearch(ctx, &domain.SearchEvent{Query: "otamendi", Tier: "exact", Results: 1})

	body := scrape(t, m)
	assert.Contains(t, body, `ecoguia_node_visits_total{node_id="b",type="end"} 2`)
	assert.Contains(t, body, `ecoguia_step_errors_total{kind="input"} 1`)
	assert.Contains(t, body, `ecoguia_searches_total{cached="false",tier="exact"} 1`)
	assert.Contains(t, body, `ecoguia_search_results_count 1`)
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	a := observability.NewMetrics()
	b := observability.NewMetrics()
	a.Hooks().EmitTransition(context.Background(), &domain.TransitionEvent{ToNodeID: "x", ToType: "menu"})

	assert.Contains(t, scrape(t, a), `node_id="x"`)
	assert.NotContains(t, scrape(t, b), `node_id="x"`)
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "input", observability.ErrorKind(&domain.InputError{}))
	assert.Equal(t, "not_found", observability.ErrorKind(&domain.NotFoundError{}))
	assert.Equal(t, "configuration", observability.ErrorKind(&domain.ConfigurationError{}))
	assert.Equal(t, "configuration", observability.ErrorKind(&domain.GraphError{}))
	assert.Equal(t, "internal", observability.ErrorKind(io.EOF))
}

func TestCombineAndLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	count := 0
	counter := domain.Hooks{OnSearch: func(ctx context.Context, e *domain.SearchEvent) { count++ }}

	hooks := observability.Combine(observability.LoggingHooks(logger), counter, domain.Hooks{})
	hooks.EmitSearch(context.Background(), &domain.SearchEvent{Query: "delta", Tier: "fuzzy", Results: 3})
	hooks.EmitTransition(context.Background(), &domain.TransitionEvent{FromNodeID: "a", Err: &domain.NotFoundError{Ref: "9", What: "option"}})

	assert.Equal(t, 1, count)
	assert.Contains(t, buf.String(), "tier=fuzzy")
	assert.Contains(t, buf.String(), "kind=not_found")
	assert.Contains(t, buf.String(), "level=WARN")
}
