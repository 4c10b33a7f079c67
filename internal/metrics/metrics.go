package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	RemainingRequests prometheus.Gauge

	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	RateLimitHitsTotal prometheus.Counter
}

// New регистрирует коллекторы в собственном registry, чтобы в одном процессе
// (в тестах) могло жить несколько экземпляров.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zenserp_requests_total",
				Help: "Total number of Zenserp API requests by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "zenserp_request_duration_seconds",
				Help:    "Zenserp API request duration in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"endpoint"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "zenserp_requests_in_flight",
				Help: "Number of Zenserp API requests currently in flight",
			},
		),

		RemainingRequests: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "zenserp_remaining_requests",
				Help: "Remaining quota reported by the last /status call",
			},
		),

		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zenserp_cache_hits_total",
				Help: "Total number of listing cache hits",
			},
			[]string{"listing"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zenserp_cache_misses_total",
				Help: "Total number of listing cache misses",
			},
			[]string{"listing"},
		),

		RateLimitHitsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "zenserp_local_rate_limit_hits_total",
				Help: "Total number of searches rejected by the local rate limiter",
			},
		),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile пишет все метрики в формате textfile для node_exporter.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Metrics) RecordRequest(endpoint, outcome string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	m.RequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *Metrics) SetRemainingRequests(n int) {
	m.RemainingRequests.Set(float64(n))
}

func (m *Metrics) RecordCacheHit(listing string) {
	m.CacheHitsTotal.WithLabelValues(listing).Inc()
}

func (m *Metrics) RecordCacheMiss(listing string) {
	m.CacheMissesTotal.WithLabelValues(listing).Inc()
}

func (m *Metrics) RecordRateLimitHit() {
	m.RateLimitHitsTotal.Inc()
}

func (m *Metrics) IncRequestsInFlight() {
	m.RequestsInFlight.Inc()
}

func (m *Metrics) DecRequestsInFlight() {
	m.RequestsInFlight.Dec()
}
