package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Explanations
	ExplainRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codeintr_explain_requests_total",
			Help: "Total number of explanation requests by mode and language",
		},
		[]string{"mode", "language"},
	)
	ExplainDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codeintr_explain_duration_seconds",
			Help:    "Histogram of explanation durations in seconds",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8), // 0.25s..32s
		},
		[]string{"mode"},
	)
	FallbackRuns = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "codeintr_fallback_runs_total",
			Help: "Number of multi-line requests that fell back to per-line calls",
		},
	)
	FallbackLineErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "codeintr_fallback_line_errors_total",
			Help: "Number of individual fallback calls that failed",
		},
	)

	// LLM
	LLMRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codeintr_llm_requests_total",
			Help: "Number of LLM requests by model",
		},
		[]string{"model"},
	)

	// History store ops
	HistoryOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codeintr_history_ops_total",
			Help: "History store operations performed",
		},
		[]string{"op"}, // op: save|get|list|delete
	)

	// Errors
	Errors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codeintr_errors_total",
			Help: "Errors encountered in components",
		},
		[]string{"component", "type"},
	)
)

func init() {
	prometheus.MustRegister(
		// Explanations
		ExplainRequests,
		ExplainDurationSeconds,
		FallbackRuns,
		FallbackLineErrors,
		// LLM
		LLMRequests,
		// History
		HistoryOps,
		// Errors
		Errors,
	)
}

func StartMetricsServer() {
	http.Handle("/metrics", promhttp.Handler())
	_ = http.ListenAndServe(":2112", nil)
}

// Explanations
func IncExplainRequest(mode, language string) {
	ExplainRequests.WithLabelValues(mode, language).Inc()
}

func ObserveExplainDuration(mode string, d time.Duration) {
	ExplainDurationSeconds.WithLabelValues(mode).Observe(d.Seconds())
}

func IncFallbackRun() {
	FallbackRuns.Inc()
}

func IncFallbackLineError() {
	FallbackLineErrors.Inc()
}

// LLM
func IncLLMRequest(model string) {
	LLMRequests.WithLabelValues(model).Inc()
}

// History
func IncHistoryOp(op string) {
	HistoryOps.WithLabelValues(op).Inc()
}

// Errors
func IncError(component, typ string) {
	Errors.WithLabelValues(component, typ).Inc()
}
