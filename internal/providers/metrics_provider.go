package providers

import (
	"blueghost/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// StoryCounter reports the size of the session store for gauges.
type StoryCounter interface {
	Count() int
	Users() int
}

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	ObserveCompletionDuration(duration time.Duration)
	IncGenerations(style string, outcome string)
	IncLoginAttempts(outcome string)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	completionDuration  prometheus.Histogram
	generationsTotal    *prometheus.CounterVec
	loginAttemptsTotal  *prometheus.CounterVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) ObserveCompletionDuration(duration time.Duration) {
	m.completionDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncGenerations(style string, outcome string) {
	m.generationsTotal.WithLabelValues(style, outcome).Inc()
}

func (m *MetricsProvider) IncLoginAttempts(outcome string) {
	m.loginAttemptsTotal.WithLabelValues(outcome).Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, counter StoryCounter) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "blueghost_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "blueghost_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "blueghost_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "blueghost_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "blueghost_persistence_duration_seconds",
			Help:    "Duration of full store rewrites in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		completionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "blueghost_completion_duration_seconds",
			Help:    "Duration of completion service calls in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
		}),

		generationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "blueghost_generations_total",
			Help: "Story generation attempts by style and outcome",
		}, []string{"style", "outcome"}),

		loginAttemptsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "blueghost_login_attempts_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "blueghost_stories_total",
		Help: "Number of stories held by the session store",
	}, func() float64 {
		return float64(counter.Count())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "blueghost_users_total",
		Help: "Number of users with at least one story",
	}, func() float64 {
		return float64(counter.Users())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) ObserveCompletionDuration(_ time.Duration)        {}
func (n *noopMetrics) IncGenerations(_ string, _ string)                {}
func (n *noopMetrics) IncLoginAttempts(_ string)                        {}
