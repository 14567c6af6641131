// Package metrics exposes Prometheus instruments for the advisor.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// AdvisorMetrics counts evaluations and times batch work.
type AdvisorMetrics struct {
	evaluationsTotal *prometheus.CounterVec
	coldLeadsTotal   prometheus.Counter
	batchDuration    *prometheus.HistogramVec
}

// NewAdvisorMetrics registers the advisor instruments on reg. A nil reg
// returns nil, which every Observe method treats as disabled; binaries that
// serve no /metrics endpoint pass nil.
func NewAdvisorMetrics(reg prometheus.Registerer) *AdvisorMetrics {
	if reg == nil {
		return nil
	}
	m := &AdvisorMetrics{
		evaluationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem: "advisor",
			Name:      "evaluations_total",
			Help:      "Lead evaluations by resulting priority tier and status suggestion",
		}, []string{"priority", "status"}),
		coldLeadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Subsystem: "advisor",
			Name:      "cold_leads_total",
			Help:      "Evaluations that flagged a cold lead",
		}),
		batchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Subsystem: "advisor",
			Name:      "batch_duration_seconds",
			Help:      "Duration of batch evaluations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	reg.MustRegister(m.evaluationsTotal, m.coldLeadsTotal, m.batchDuration)
	return m
}

func (m *AdvisorMetrics) ObserveEvaluation(priority, status string, cold bool) {
	if m == nil {
		return
	}
	m.evaluationsTotal.WithLabelValues(priority, status).Inc()
	if cold {
		m.coldLeadsTotal.Inc()
	}
}

// ObserveBatch records the time elapsed since start for operation.
func (m *AdvisorMetrics) ObserveBatch(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.batchDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
