// Package telemetry provides application-level observability for the church
// website backend.
//
// # Prometheus Metrics Endpoint
//
// All metrics are registered against the default Prometheus registry and are
// automatically available on the side-channel HTTP server started by main.go:
//
//	GET http://<host>:<CHURCH_TELEMETRY_METRICS_PROMETHEUS_PORT>/metrics
//
// Default port: 9090.  The endpoint returns data in the Prometheus text
// exposition format and is intended to be scraped by a Prometheus server every
// 15–60 seconds.  It is NOT served by the Gin router.
//
// # Label Cardinality
//
// HTTP metrics use c.FullPath() (route template such as /api/sermons/:id)
// rather than the raw request URL to prevent unbounded label cardinality from
// user-supplied path segments.
package telemetry

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics — labelled by method, route template, and status code.
//
// Example PromQL queries:
//   - Request rate (req/s, 5 m window):  rate(http_requests_total[5m])
//   - Error rate (%):                    sum(rate(http_requests_total{status=~"5.."}[5m])) / sum(rate(http_requests_total[5m])) * 100
//   - p99 latency per route:             histogram_quantile(0.99, sum by (path, le) (rate(http_request_duration_seconds_bucket[5m])))
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed, by method, route template, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies, by method and route template.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)
)

// Audit metrics.
//
// AuditEventsTotal is a CounterVec with labels {action, entity_type}
// incremented once per audit event successfully persisted.
//
// AuditRecordFailuresTotal counts audit inserts that failed. Audit recording
// never fails the originating write, so this counter is the only place those
// errors surface besides the log. An alert on
// increase(audit_record_failures_total[15m]) > 0 is recommended.
var (
	AuditEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_events_total",
			Help: "Total number of audit events recorded, by action and entity type.",
		},
		[]string{"action", "entity_type"},
	)

	AuditRecordFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_record_failures_total",
			Help: "Total number of audit events that could not be persisted.",
		},
	)
)

// Image provenance metrics.
//
// ImageLogsCreatedTotal is labelled by the owning entity kind (e.g. "Sermon").
// ImageLogsReconciledTotal counts orphaned image log rows removed by the
// reconciliation sweep.
var (
	ImageLogsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_logs_created_total",
			Help: "Total number of image provenance records created, by owner kind.",
		},
		[]string{"kind"},
	)

	ImageLogsReconciledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "image_logs_reconciled_total",
			Help: "Total number of orphaned image log records deleted by the reconciliation sweep.",
		},
	)
)

// Exchange-rate refresh metrics — recorded by the rate refresh background job.
//
// Example PromQL queries:
//   - p95 refresh duration:  histogram_quantile(0.95, rate(rate_refresh_duration_seconds_bucket[24h]))
//   - Alert expression:      increase(rate_refresh_errors_total[48h]) > 1
var (
	RateRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rate_refresh_duration_seconds",
			Help:    "Duration of a single exchange-rate refresh cycle.",
			Buckets: prometheus.DefBuckets,
		},
	)

	RateRefreshErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_refresh_errors_total",
			Help: "Total number of failed exchange-rate refresh attempts.",
		},
	)

	RatesUpdatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rates_updated_total",
			Help: "Total number of exchange-rate rows written by refresh cycles.",
		},
	)
)

// DBOpenConnections is a Gauge that tracks the number of open connections
// currently held by the sql.DB connection pool.  It is sampled every 30
// seconds by StartDBStatsCollector rather than per-request to avoid the
// overhead of sql.DB.Stats().
var DBOpenConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "db_open_connections",
		Help: "Current number of open database connections in the pool.",
	},
)

// StartDBStatsCollector launches a background goroutine that samples sql.DB
// connection pool statistics every 30 seconds and updates the
// DBOpenConnections gauge. The goroutine exits cleanly when the database
// becomes unreachable (db.Ping fails), which happens automatically when the
// application shuts down and defers db.Close().
//
// Call this once, immediately after db.Connect() succeeds in main.go:
//
//	telemetry.StartDBStatsCollector(database)
func StartDBStatsCollector(db *sql.DB) {
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			if err := db.Ping(); err != nil {
				slog.Warn("db stats collector: database unreachable, stopping collector", "error", err)
				return
			}
			DBOpenConnections.Set(float64(db.Stats().OpenConnections))
		}
	}()
}
