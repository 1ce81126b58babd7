// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// RequestTransitionsTotal counts status transitions by target status and
	// outcome (applied, noop, conflict, not_found, invalid).
	RequestTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blood_request_transitions_total",
			Help: "Blood request status transitions by target status and outcome.",
		},
		[]string{"to", "outcome"},
	)

	BloodRequestsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "blood_requests_created_total",
			Help: "Blood requests created.",
		},
	)

	FundingsRecordedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fundings_recorded_total",
			Help: "Fundings recorded after gateway confirmation.",
		},
	)

	FundingAmountTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "funding_amount_total",
			Help: "Sum of recorded funding amounts in the smallest currency unit.",
		},
	)
)

var registerOnce sync.Once

// MustRegister registers every collector with the default registry. Safe to
// call more than once.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDurationSeconds,
			RequestTransitionsTotal,
			BloodRequestsCreatedTotal,
			FundingsRecordedTotal,
			FundingAmountTotal,
		)
	})
}
