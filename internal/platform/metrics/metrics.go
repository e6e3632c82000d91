// Package metrics exposes Prometheus collectors for the odds pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "oddsboard"

// Metrics owns a private registry. A nil *Metrics is valid and records
// nothing, which is how metrics are switched off.
type Metrics struct {
	registry *prometheus.Registry

	// Provider metrics
	ProviderRequests *prometheus.CounterVec
	ProviderLatency  *prometheus.HistogramVec
	ProviderQuota    *prometheus.GaugeVec
	CircuitState     *prometheus.GaugeVec

	// Normalization metrics
	BoardsNormalized  *prometheus.CounterVec
	NormalizeFailures *prometheus.CounterVec
	MarketsPerBoard   *prometheus.HistogramVec

	// Cache metrics
	CacheLookups *prometheus.CounterVec

	// Refresh metrics
	RefreshRuns     *prometheus.CounterVec
	RefreshDuration prometheus.Histogram

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		ProviderRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_requests_total",
				Help:      "Odds provider requests by endpoint and outcome",
			},
			[]string{"endpoint", "status"},
		),
		ProviderLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "provider_request_duration_seconds",
				Help:      "Odds provider request latency",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
			},
			[]string{"endpoint"},
		),
		ProviderQuota: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "provider_quota_requests",
				Help:      "Provider request quota as reported in response headers",
			},
			[]string{"kind"},
		),
		CircuitState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "circuit_state",
				Help:      "Circuit breaker state: 0 closed, 0.5 half open, 1 open",
			},
			[]string{"dependency"},
		),

		BoardsNormalized: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "boards_normalized_total",
				Help:      "Match boards produced by normalization",
			},
			[]string{"sport_key"},
		),
		NormalizeFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "normalize_failures_total",
				Help:      "Matches skipped because normalization failed",
			},
			[]string{"sport_key"},
		),
		MarketsPerBoard: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "markets_per_board",
				Help:      "Canonical markets per normalized match",
				Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34, 55},
			},
			[]string{"sport_key"},
		),

		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Board cache lookups by backend and result",
			},
			[]string{"backend", "result"},
		),

		RefreshRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "refresh_runs_total",
				Help:      "Feed refresh runs by outcome",
			},
			[]string{"status"},
		),
		RefreshDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "refresh_duration_seconds",
				Help:      "Duration of a full feed refresh",
				Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
			},
		),

		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route, method and status code",
			},
			[]string{"route", "method", "code"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ProviderRequests,
		m.ProviderLatency,
		m.ProviderQuota,
		m.CircuitState,
		m.BoardsNormalized,
		m.NormalizeFailures,
		m.MarketsPerBoard,
		m.CacheLookups,
		m.RefreshRuns,
		m.RefreshDuration,
		m.HTTPRequests,
		m.HTTPDuration,
	)

	return m
}

// Registry returns the prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) RecordProviderRequest(endpoint, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ProviderRequests.WithLabelValues(endpoint, status).Inc()
	m.ProviderLatency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// SetProviderQuota records the x-requests-remaining / x-requests-used headers.
// Unparsable values are ignored.
func (m *Metrics) SetProviderQuota(remaining, used string) {
	if m == nil {
		return
	}
	if v, err := strconv.ParseFloat(remaining, 64); err == nil {
		m.ProviderQuota.WithLabelValues("remaining").Set(v)
	}
	if v, err := strconv.ParseFloat(used, 64); err == nil {
		m.ProviderQuota.WithLabelValues("used").Set(v)
	}
}

func (m *Metrics) SetCircuitState(dependency string, value float64) {
	if m == nil {
		return
	}
	m.CircuitState.WithLabelValues(dependency).Set(value)
}

func (m *Metrics) RecordBoard(sportKey string, markets int) {
	if m == nil {
		return
	}
	m.BoardsNormalized.WithLabelValues(sportKey).Inc()
	m.MarketsPerBoard.WithLabelValues(sportKey).Observe(float64(markets))
}

func (m *Metrics) RecordNormalizeFailure(sportKey string) {
	if m == nil {
		return
	}
	m.NormalizeFailures.WithLabelValues(sportKey).Inc()
}

func (m *Metrics) RecordCacheLookup(backend string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(backend, result).Inc()
}

func (m *Metrics) RecordRefresh(status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RefreshRuns.WithLabelValues(status).Inc()
	m.RefreshDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) RecordHTTPRequest(route, method string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.HTTPDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}
