package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Flows label the endpoint an attempt came through.
const (
	FlowPassword     = "password"
	FlowSecondFactor = "second_factor"
)

// Outcomes of an authentication attempt.
const (
	OutcomeSuccess            = "success"
	OutcomeSecondFactor       = "second_factor_required"
	OutcomeMethodNotSupported = "method_not_supported"
	OutcomeMissingCredentials = "missing_credentials"
	OutcomeBadCredentials     = "bad_credentials"
	OutcomeRateLimited        = "rate_limited"
	OutcomeServerError        = "server_error"
)

// AuthAttempts counts authentication attempts by flow and outcome.
// Use RegisterMetrics to register this with a Prometheus registry.
var AuthAttempts = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "arcade_auth_attempts_total",
		Help: "Total number of authentication attempts",
	},
	[]string{"flow", "outcome"},
)

// AuthDuration is the histogram for how long an attempt took, rate limited
// requests excluded.
var AuthDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "arcade_auth_attempt_duration_seconds",
		Help:    "Authentication attempt duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"flow"},
)

// TokensIssued counts minted tokens by class.
var TokensIssued = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "arcade_auth_tokens_issued_total",
		Help: "Total number of tokens issued",
	},
	[]string{"class"},
)

// RegisterMetrics registers the auth metrics with the given Prometheus registry.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(AuthAttempts)
	reg.MustRegister(AuthDuration)
	reg.MustRegister(TokensIssued)
}

// RecordAttempt counts a finished attempt and its duration.
func RecordAttempt(flow, outcome string, duration time.Duration) {
	AuthAttempts.WithLabelValues(flow, outcome).Inc()
	AuthDuration.WithLabelValues(flow).Observe(duration.Seconds())
}

// RecordRateLimited counts an attempt refused before it reached a handler.
func RecordRateLimited(flow string) {
	AuthAttempts.WithLabelValues(flow, OutcomeRateLimited).Inc()
}

// RecordTokenIssued counts one minted token of the given class.
func RecordTokenIssued(class string) {
	TokensIssued.WithLabelValues(class).Inc()
}
