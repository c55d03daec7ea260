package avro

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the Prometheus instrumentation points PlanCache can
// report. Registration only happens when a caller builds one with
// NewMetrics — PlanCache works with a nil *Metrics, so pulling in this
// package never forces Prometheus registration on a caller that doesn't
// want it.
type Metrics struct {
	planCacheHits     prometheus.Counter
	planCacheMisses   prometheus.Counter
	planBuildDuration prometheus.Histogram
}

// NewMetrics registers PlanCache's counters and histogram against reg and
// returns a Metrics ready to pass to NewPlanCache.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		planCacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "avro_plan_cache_hits_total",
			Help: "Read-plan cache lookups satisfied by a cached plan.",
		}),
		planCacheMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "avro_plan_cache_misses_total",
			Help: "Read-plan cache lookups that built a new plan.",
		}),
		planBuildDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "avro_plan_build_duration_seconds",
			Help:    "Time spent resolving a writer schema against an expected schema into a read plan.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) hit() {
	if m != nil {
		m.planCacheHits.Inc()
	}
}

func (m *Metrics) miss() {
	if m != nil {
		m.planCacheMisses.Inc()
	}
}

func (m *Metrics) observeBuild(seconds float64) {
	if m != nil {
		m.planBuildDuration.Observe(seconds)
	}
}
