// Package metrics holds the prometheus collectors shared by the server and the worker.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pocket_ledger"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	LedgerOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_operations_total",
			Help:      "Asset ledger and bill mutations by outcome",
		},
		[]string{"operation", "result"},
	)
	AggregateTasks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aggregate_tasks_total",
			Help:      "Monthly aggregate tasks by outcome (applied, failed, dropped, published)",
		},
		[]string{"result"},
	)
	AggregateQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "aggregate_queue_depth",
			Help:      "Aggregate tasks waiting in the in-process queue",
		},
	)
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveLedger counts one ledger mutation.
func ObserveLedger(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	LedgerOperations.WithLabelValues(operation, result).Inc()
}
