// Package metrics exposes the Prometheus collectors of the football hub.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	upstreamRequestsTotal      *prometheus.CounterVec
	upstreamRequestSeconds     *prometheus.HistogramVec
	jobRunsTotal               *prometheus.CounterVec
	jobDurationSeconds         *prometheus.HistogramVec
	jobSkipsTotal              *prometheus.CounterVec
	reconcileRecordsTotal      *prometheus.CounterVec
	httpRequestsTotal          *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec
	chatRepliesTotal           *prometheus.CounterVec

	once sync.Once
)

// Init registers the collectors. It is safe to call more than once.
func Init() {
	once.Do(func() {
		upstreamRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "footballhub_upstream_requests_total",
				Help: "Upstream provider requests, labeled by provider, endpoint and outcome.",
			},
			[]string{"provider", "endpoint", "outcome"},
		)

		upstreamRequestSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "footballhub_upstream_request_duration_seconds",
				Help:    "Upstream provider request latency, labeled by provider and endpoint.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"provider", "endpoint"},
		)

		jobRunsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "footballhub_job_runs_total",
				Help: "Scheduled job runs, labeled by job and outcome.",
			},
			[]string{"job", "outcome"},
		)

		jobDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "footballhub_job_duration_seconds",
				Help:    "Scheduled job run duration, labeled by job.",
				Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 180, 600},
			},
			[]string{"job"},
		)

		jobSkipsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "footballhub_job_skips_total",
				Help: "Job ticks skipped, labeled by job and reason.",
			},
			[]string{"job", "reason"},
		)

		reconcileRecordsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "footballhub_reconcile_records_total",
				Help: "Reconciled records, labeled by entity, competition and outcome.",
			},
			[]string{"entity", "competition", "outcome"},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "footballhub_http_requests_total",
				Help: "Read API requests, labeled by method, route and code.",
			},
			[]string{"method", "route", "code"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "footballhub_http_request_duration_seconds",
				Help:    "Read API request latency, labeled by method and route.",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2},
			},
			[]string{"method", "route"},
		)

		chatRepliesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "footballhub_chat_replies_total",
				Help: "Chat replies, labeled by source.",
			},
			[]string{"source"},
		)
	})
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func ObserveUpstream(provider, endpoint, outcome string, duration time.Duration) {
	Init()
	upstreamRequestsTotal.WithLabelValues(provider, endpoint, outcome).Inc()
	upstreamRequestSeconds.WithLabelValues(provider, endpoint).Observe(duration.Seconds())
}

func ObserveJobRun(job, outcome string, duration time.Duration) {
	Init()
	jobRunsTotal.WithLabelValues(job, outcome).Inc()
	jobDurationSeconds.WithLabelValues(job).Observe(duration.Seconds())
}

func ObserveJobSkip(job, reason string) {
	Init()
	jobSkipsTotal.WithLabelValues(job, reason).Inc()
}

// ObserveReconcile adds the per-outcome counts of one batch.
func ObserveReconcile(entity, competition string, inserted, updated, unchanged, skipped int) {
	Init()
	add := func(outcome string, n int) {
		if n > 0 {
			reconcileRecordsTotal.WithLabelValues(entity, competition, outcome).Add(float64(n))
		}
	}
	add("inserted", inserted)
	add("updated", updated)
	add("unchanged", unchanged)
	add("skipped", skipped)
}

func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	Init()
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}

func ObserveChatReply(source string) {
	Init()
	chatRepliesTotal.WithLabelValues(source).Inc()
}
