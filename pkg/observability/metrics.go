// Package observability exposes the service's Prometheus metrics.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// DocumentsProcessed counts statement uploads by source format and outcome.
	DocumentsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statement_documents_processed_total",
			Help: "Total number of statement documents processed",
		},
		[]string{"source", "status"},
	)

	// RowsExtracted counts transaction records produced across all documents.
	RowsExtracted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "statement_rows_extracted_total",
			Help: "Total number of transaction rows extracted",
		},
	)

	// RowsSkipped counts rows and fragments that failed qualification.
	RowsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "statement_rows_skipped_total",
			Help: "Total number of table rows skipped during extraction",
		},
	)

	// ExtractionDuration tracks end-to-end processing time per document.
	ExtractionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "statement_extraction_duration_seconds",
			Help:    "Statement extraction duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// HTTPRequestsTotal counts HTTP requests by route and status class.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statement_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "status"},
	)

	// HTTPRequestDuration tracks HTTP request latency by route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "statement_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)

// Handler serves the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
