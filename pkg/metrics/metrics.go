package metrics

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the private registry served at /api/metrics.
var Registry = newRegistry()

var factory = promauto.With(Registry)

func newRegistry() *prometheus.Registry {
	r := prometheus.NewRegistry()
	r.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

var (
	// Buckets cover fast DB reads up to slow mail provider calls.
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13}

	// HTTP Metrics
	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method", "http_route"},
	)

	// Database Client Metrics
	DBRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_client_operation_duration_seconds",
			Help:    "Database client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	DBRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_client_operation_total",
			Help: "Total number of database client operations",
		},
		[]string{"operation", "status"},
	)

	// Cache Metrics
	CacheHits = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	// Storage Client Metrics
	StorageRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_client_operation_duration_seconds",
			Help:    "Storage client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	StorageRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_client_operation_total",
			Help: "Total number of storage client operations",
		},
		[]string{"operation", "status"},
	)

	// Mail Client Metrics
	MailSendDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mail_client_send_duration_seconds",
			Help:    "Outbound email send duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"template", "status"},
	)

	MailSendTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_client_send_total",
			Help: "Total number of outbound emails",
		},
		[]string{"template", "status"},
	)

	// Business Metrics
	Registrations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "urocareerz_registrations_total",
			Help: "Total registration attempts",
		},
		[]string{"role", "status"},
	)

	OTPVerifications = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "urocareerz_otp_verifications_total",
			Help: "Total OTP verification attempts",
		},
		[]string{"status"},
	)

	OpportunitySubmissions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "urocareerz_opportunity_submissions_total",
			Help: "Total opportunities created",
		},
		[]string{"creator_role"},
	)

	ModerationActions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "urocareerz_moderation_actions_total",
			Help: "Total admin moderation actions",
		},
		[]string{"entity", "action"},
	)

	ApplicationTransitions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "urocareerz_application_transitions_total",
			Help: "Total application status changes",
		},
		[]string{"status"},
	)

	DiscussionActivity = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "urocareerz_discussion_activity_total",
			Help: "Total discussion threads, comments and views",
		},
		[]string{"kind"},
	)

	// Infrastructure Metrics
	GoRoutines = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

// RecordInfrastructureMetrics samples runtime gauges until ctx is cancelled.
func RecordInfrastructureMetrics(ctx context.Context) {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				var m runtime.MemStats
				runtime.ReadMemStats(&m)

				GoRoutines.Set(float64(runtime.NumGoroutine()))
				HeapAlloc.Set(float64(m.HeapAlloc))
			}
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}

// StatusLabel turns an error into the "success"/"error" label used across metrics.
func StatusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
