// Package metrics declares the Prometheus collectors of the jobs service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	JobOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobs_operations_total",
		Help: "Total number of job store operations, by operation and outcome",
	}, []string{"op", "outcome"})

	JobOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "jobs_operation_duration_seconds",
		Help:    "Duration of job store operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})

	EventsPublishFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobs_events_publish_failed_total",
		Help: "Total number of events that could not be published, by type",
	}, []string{"type"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobs_http_requests_total",
		Help: "Total number of HTTP requests, by method and status code",
	}, []string{"method", "code"})
)
