package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "rentreceipt"

// Metrics holds the Prometheus collectors of the HTTP service.
type Metrics struct {
	RequestsTotal     *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	ReceiptsTotal     *prometheus.CounterVec
	ReceiptBytes      prometheus.Histogram
	DocumentsDeleted  prometheus.Counter
	AuthFailuresTotal *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method and status code.",
		}, []string{"method", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		ReceiptsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "receipts",
			Name:      "generated_total",
			Help:      "Rent receipt requests by outcome.",
		}, []string{"outcome"}), // outcome: stored, invalid, not_found, incomplete, render_error, storage_error
		ReceiptBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "receipts",
			Name:      "pdf_bytes",
			Help:      "Size of rendered receipts.",
			Buckets:   prometheus.ExponentialBuckets(1024, 2, 10),
		}),
		DocumentsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "documents",
			Name:      "deleted_total",
			Help:      "Total number of documents deleted.",
		}),
		AuthFailuresTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "auth",
			Name:      "failures_total",
			Help:      "Rejected credentials by reason.",
		}, []string{"reason"}),
	}
}
