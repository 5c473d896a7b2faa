package observability

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/aretw0/ecoguia/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors fed by engine hooks.
// Each instance owns its registry, so several engines can live in one process.
type Metrics struct {
	registry      *prometheus.Registry
	nodeVisits    *prometheus.CounterVec
	stepErrors    *prometheus.CounterVec
	searches      *prometheus.CounterVec
	searchResults prometheus.Histogram
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		nodeVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecoguia_node_visits_total",
				Help: "Total number of node visits",
			},
			[]string{"node_id", "type"},
		),
		stepErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecoguia_step_errors_total",
				Help: "Rejected transitions by error kind",
			},
			[]string{"kind"},
		),
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecoguia_searches_total",
				Help: "Reservation searches by matching tier",
			},
			[]string{"tier", "cached"},
		),
		searchResults: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ecoguia_search_results",
				Help:    "Number of records returned per search",
				Buckets: []float64{0, 1, 2, 3, 4, 5},
			},
		),
	}
	m.registry.MustRegister(
		m.nodeVisits,
		m.stepErrors,
		m.searches,
		m.searchResults,
		collectors.NewGoCollector(),
	)
	return m
}

// Hooks returns the hooks that record into m.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			if e.Err != nil {
				m.stepErrors.WithLabelValues(ErrorKind(e.Err)).Inc()
				return
			}
			m.nodeVisits.WithLabelValues(e.ToNodeID, e.ToType).Inc()
		},
		OnSearch: func(ctx context.Context, e *domain.SearchEvent) {
			m.searches.WithLabelValues(e.Tier, strconv.FormatBool(e.Cached)).Inc()
			m.searchResults.Observe(float64(e.Results))
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ErrorKind maps an engine error to a short label.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrInput):
		return "input"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrConfiguration):
		return "configuration"
	default:
		return "internal"
	}
}
