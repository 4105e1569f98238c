package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestCounter counts HTTP requests by status code, method, and route
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "escaperoom_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"status", "method", "path"},
	)

	// RequestDuration measures HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "escaperoom_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status", "method", "path"},
	)

	// RequestInProgress counts HTTP requests currently being processed
	RequestInProgress = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "escaperoom_http_requests_in_progress",
			Help: "Number of HTTP requests currently being processed",
		},
		[]string{"method", "path"},
	)

	// RateLimiterRejections counts answer submissions rejected by the limiter
	RateLimiterRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "escaperoom_rate_limiter_rejections_total",
			Help: "Total number of requests rejected by rate limiter",
		},
	)

	Enrollments = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "escaperoom_enrollments_total",
			Help: "Total number of session registrations",
		},
	)

	// PuzzleAttempts counts logged attempts, labelled by outcome
	PuzzleAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "escaperoom_puzzle_attempts_total",
			Help: "Total number of logged puzzle attempts",
		},
		[]string{"solved"},
	)

	SessionsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "escaperoom_sessions_completed_total",
			Help: "Total number of sessions that reached completed",
		},
	)

	// AttemptTxDuration measures the attempt insert and completion check transaction
	AttemptTxDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "escaperoom_attempt_tx_duration_seconds",
			Help:    "Duration of the answer submission transaction in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "escaperoom_progress_cache_hits_total",
			Help: "Total number of solved-set cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "escaperoom_progress_cache_misses_total",
			Help: "Total number of solved-set cache misses",
		},
	)
)

func ObserveAttemptTx(start time.Time) {
	AttemptTxDuration.Observe(time.Since(start).Seconds())
}
