package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// stageBuckets covers fast local stages up to slow LLM and TTS calls.
var stageBuckets = []float64{0.005, 0.025, 0.1, 0.5, 1, 2.5, 5, 10, 20, 40, 60}

// Manager owns the service's collectors. All methods are safe on a nil
// Manager so components can run without metrics.
type Manager struct {
	namespace         string
	buckets           []float64
	registry          *prometheus.Registry
	processCollectors bool

	runs          *prometheus.CounterVec
	runDuration   prometheus.Histogram
	stageDuration *prometheus.HistogramVec
	stageFailures *prometheus.CounterVec

	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	cacheLookups *prometheus.CounterVec
}

// NewManager creates a Manager on its own registry unless one is given.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "fantasy_recap",
		buckets:   stageBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	if m.processCollectors {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.runs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "recap_runs_total",
		Help:      "Recap runs by outcome",
	}, []string{"outcome"})

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "recap_run_duration_seconds",
		Help:      "End-to-end recap run duration",
		Buckets:   m.buckets,
	})

	m.stageDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "pipeline_stage_duration_seconds",
		Help:      "Duration of each pipeline stage",
		Buckets:   m.buckets,
	}, []string{"stage"})

	m.stageFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "pipeline_stage_failures_total",
		Help:      "Pipeline stage failures",
	}, []string{"stage"})

	m.upstreamRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "upstream_requests_total",
		Help:      "Requests to external services by outcome",
	}, []string{"service", "outcome"})

	m.upstreamDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "External service request duration",
		Buckets:   m.buckets,
	}, []string{"service"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status",
	}, []string{"route", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	m.cacheLookups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "cache_lookups_total",
		Help:      "Response cache lookups by result",
	}, []string{"result"})
}

// Registry returns the registry the Manager's collectors live on.
func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveStage records one pipeline stage.
func (m *Manager) ObserveStage(stage string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if err != nil {
		m.stageFailures.WithLabelValues(stage).Inc()
	}
}

// ObserveRun records a finished recap run.
func (m *Manager) ObserveRun(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(outcome).Inc()
	m.runDuration.Observe(d.Seconds())
}

// ObserveUpstream records one call to an external service.
func (m *Manager) ObserveUpstream(service, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(service, outcome).Inc()
	m.upstreamDuration.WithLabelValues(service).Observe(d.Seconds())
}

// ObserveHTTP records one served HTTP request.
func (m *Manager) ObserveHTTP(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// CacheHit records a cache hit.
func (m *Manager) CacheHit() {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues("hit").Inc()
}

// CacheMiss records a cache miss.
func (m *Manager) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues("miss").Inc()
}
