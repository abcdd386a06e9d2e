package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts facade traffic per backend so a redis outage shows up as a
// swing from the redis label to the store label, not as request errors.
type Metrics struct {
	hits             *prometheus.CounterVec
	misses           *prometheus.CounterVec
	readErrors       *prometheus.CounterVec
	populateFailures *prometheus.CounterVec
	invalidations    *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		hits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "omvadmin_cache_hits_total",
			Help: "Cache reads answered without touching the loader.",
		}, []string{"backend"}),
		misses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "omvadmin_cache_misses_total",
			Help: "Cache reads that fell through to the loader.",
		}, []string{"backend"}),
		readErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "omvadmin_cache_read_errors_total",
			Help: "Backend failures treated as misses on the read path.",
		}, []string{"backend"}),
		populateFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "omvadmin_cache_populate_failures_total",
			Help: "Best-effort cache population failures after a store read.",
		}, []string{"backend"}),
		invalidations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "omvadmin_cache_invalidations_total",
			Help: "Keys deleted after entity writes.",
		}, []string{"backend"}),
	}
}

func (m *Metrics) hit(backend string) {
	if m != nil {
		m.hits.WithLabelValues(backend).Inc()
	}
}

func (m *Metrics) miss(backend string) {
	if m != nil {
		m.misses.WithLabelValues(backend).Inc()
	}
}

func (m *Metrics) readError(backend string) {
	if m != nil {
		m.readErrors.WithLabelValues(backend).Inc()
	}
}

func (m *Metrics) populateFailure(backend string) {
	if m != nil {
		m.populateFailures.WithLabelValues(backend).Inc()
	}
}

func (m *Metrics) invalidated(backend string, n int) {
	if m != nil {
		m.invalidations.WithLabelValues(backend).Add(float64(n))
	}
}
