package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	webhookEventsReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "webhook_events_received_total",
			Help: "Total number of webhook events received in accepted batches",
		},
	)

	webhookEventsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "webhook_events_processed_total",
			Help: "Total number of webhook events fully processed",
		},
	)

	signatureRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "webhook_signature_rejections_total",
			Help: "Total number of batches rejected by signature verification",
		},
	)

	syncFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_failures_total",
			Help: "Total number of terminally failed sync events",
		},
		[]string{"entity_type"},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordWebhookBatch(received, processed int) {
	webhookEventsReceived.Add(float64(received))
	webhookEventsProcessed.Add(float64(processed))
}

func RecordSignatureRejection() {
	signatureRejections.Inc()
}

func RecordSyncFailure(entityType string) {
	syncFailures.WithLabelValues(entityType).Inc()
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}
