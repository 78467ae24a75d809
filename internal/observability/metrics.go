package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Report build outcomes.
const (
	OutcomeOK             = "ok"
	OutcomeCacheHit       = "cache_hit"
	OutcomeLoadError      = "load_error"
	OutcomeSummarizeError = "summarize_error"
)

var (
	reportBuilds = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activitylog",
		Subsystem: "report",
		Name:      "builds_total",
		Help:      "Dashboard report requests by outcome.",
	}, []string{"outcome"})
	reportDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "activitylog",
		Subsystem: "report",
		Name:      "build_duration_seconds",
		Help:      "Time spent loading and aggregating the activity log.",
		Buckets:   prometheus.DefBuckets,
	})
	recordsLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "activitylog",
		Subsystem: "report",
		Name:      "records_loaded",
		Help:      "Number of activity records in the most recent build.",
	})
	httpRequests = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "activitylog",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by path and status code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"path", "status"})
	rateLimited = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activitylog",
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the per-client rate limiter.",
	}, []string{"path"})
)

func init() {
	prometheus.MustRegister(reportBuilds, reportDuration, recordsLoaded, httpRequests, rateLimited)
}

// RecordReportBuild counts a report request and, for real builds, its latency.
func RecordReportBuild(outcome string, elapsed time.Duration) {
	reportBuilds.WithLabelValues(outcome).Inc()
	if outcome != OutcomeCacheHit {
		reportDuration.Observe(elapsed.Seconds())
	}
}

// RecordRecordsLoaded updates the record count gauge.
func RecordRecordsLoaded(n int) {
	recordsLoaded.Set(float64(n))
}

// RecordHTTPRequest observes one served request.
func RecordHTTPRequest(path string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(path, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// RecordRateLimited counts a rejected request.
func RecordRateLimited(path string) {
	rateLimited.WithLabelValues(path).Inc()
}
