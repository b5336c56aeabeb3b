package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RevenueMetrics records revenue computations served by the API.
type RevenueMetrics struct {
	duration *prometheus.HistogramVec
	applied  *prometheus.CounterVec
	rejected *prometheus.CounterVec
}

// NewRevenueMetrics registers the revenue metrics on the provided registerer.
func NewRevenueMetrics(reg prometheus.Registerer) *RevenueMetrics {
	if reg == nil {
		return &RevenueMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "revenue_computation_duration_seconds",
		Help:    "Duration of revenue computations including snapshot loading.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	applied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "revenue_discounts_applied_total",
		Help: "Line items that had a bulk discount applied.",
	}, []string{"operation"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bulk_discount_validation_failures_total",
		Help: "Bulk discount writes rejected by validation.",
	}, []string{"operation"})
	reg.MustRegister(duration, applied, rejected)
	return &RevenueMetrics{
		duration: duration,
		applied:  applied,
		rejected: rejected,
	}
}

// ObserveDuration records the duration for the named operation.
func (m *RevenueMetrics) ObserveDuration(operation string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// AddDiscountsApplied adds n applied discounts for the named operation.
func (m *RevenueMetrics) AddDiscountsApplied(operation string, n int) {
	if m == nil || m.applied == nil || n <= 0 {
		return
	}
	m.applied.WithLabelValues(normalizeLabel(operation)).Add(float64(n))
}

// IncValidationFailure counts a rejected bulk discount write.
func (m *RevenueMetrics) IncValidationFailure(operation string) {
	if m == nil || m.rejected == nil {
		return
	}
	m.rejected.WithLabelValues(normalizeLabel(operation)).Inc()
}

// Since is a helper for deferred duration observation.
func (m *RevenueMetrics) Since(operation string, start time.Time) {
	m.ObserveDuration(operation, time.Since(start))
}

func normalizeLabel(operation string) string {
	if operation == "" {
		return "unknown"
	}
	return operation
}
