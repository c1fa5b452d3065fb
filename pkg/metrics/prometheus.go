// Package metrics provides Prometheus metrics for the redzone analytics service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	// Provider metrics - upstream dataset fetches.
	providerFetches       *prometheus.CounterVec
	providerFetchDuration *prometheus.HistogramVec

	// Cache metrics - season snapshot store.
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	cacheRefreshes prometheus.Counter
	cachedSeasons  prometheus.Gauge

	// Aggregation metrics - the three core computations.
	aggregationDuration *prometheus.HistogramVec
	aggregationErrors   *prometheus.CounterVec
	recordsInScope      prometheus.Gauge

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the metric namespace.
func WithNamespace(ns string) Option {
	return func(m *Manager) {
		if ns != "" {
			m.namespace = ns
		}
	}
}

// WithHistogramBuckets overrides the default latency buckets (milliseconds).
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// NewManager creates a metrics manager with its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "redzone",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.providerFetches = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "provider_fetches_total",
		Help:      "Upstream dataset fetches by dataset and outcome.",
	}, []string{"dataset", "outcome"})

	m.providerFetchDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "provider_fetch_duration_ms",
		Help:      "Upstream fetch duration in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"dataset"})

	m.cacheHits = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "cache_hits_total",
		Help:      "Season snapshot cache hits.",
	})

	m.cacheMisses = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "cache_misses_total",
		Help:      "Season snapshot cache misses.",
	})

	m.cacheRefreshes = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "cache_refreshes_total",
		Help:      "Explicit season cache invalidations.",
	})

	m.cachedSeasons = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "cached_seasons",
		Help:      "Number of seasons currently held in the cache.",
	})

	m.aggregationDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "aggregation_duration_ms",
		Help:      "Aggregation computation duration in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"kind"})

	m.aggregationErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "aggregation_errors_total",
		Help:      "Aggregation failures by kind.",
	}, []string{"kind"})

	m.recordsInScope = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "records_in_scope",
		Help:      "Stat records loaded for the most recent query scope.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status code.",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request duration in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})
}

// Registry exposes the manager's registry for serving.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

var defaultManager = NewManager()

// RecordProviderFetch records an upstream fetch attempt and its outcome.
func RecordProviderFetch(dataset, outcome string) {
	defaultManager.providerFetches.WithLabelValues(dataset, outcome).Inc()
}

// RecordProviderFetchDuration records how long an upstream fetch took.
func RecordProviderFetchDuration(dataset string, ms float64) {
	defaultManager.providerFetchDuration.WithLabelValues(dataset).Observe(ms)
}

// RecordCacheHit increments the cache hit counter.
func RecordCacheHit() {
	defaultManager.cacheHits.Inc()
}

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss() {
	defaultManager.cacheMisses.Inc()
}

// RecordCacheRefresh increments the explicit invalidation counter.
func RecordCacheRefresh() {
	defaultManager.cacheRefreshes.Inc()
}

// UpdateCachedSeasons sets the number of cached seasons.
func UpdateCachedSeasons(n int) {
	defaultManager.cachedSeasons.Set(float64(n))
}

// RecordAggregationDuration records a computation's latency by kind.
func RecordAggregationDuration(kind string, ms float64) {
	defaultManager.aggregationDuration.WithLabelValues(kind).Observe(ms)
}

// RecordAggregationError records a failed computation by kind.
func RecordAggregationError(kind string) {
	defaultManager.aggregationErrors.WithLabelValues(kind).Inc()
}

// UpdateRecordsInScope sets the record count of the last loaded scope.
func UpdateRecordsInScope(n int) {
	defaultManager.recordsInScope.Set(float64(n))
}

// RecordHTTPRequest records one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	defaultManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records one HTTP request's latency.
func RecordHTTPRequestDuration(endpoint, method string, ms float64) {
	defaultManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(ms)
}

// GetRegistry returns the default manager's registry for the /healthz handler.
func GetRegistry() *prometheus.Registry {
	return defaultManager.Registry()
}
