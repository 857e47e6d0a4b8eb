package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Metrics names.
	MetricNameBuildInfo             = "echo_cli_build_info"
	MetricNameErrors                = "echo_cli_errors_total"
	MetricNameLedgerRequests        = "echo_cli_ledger_requests_total"
	MetricNameLedgerRequestDuration = "echo_cli_ledger_request_duration_seconds"

	// Labels.
	LabelVersion   = "version"
	LabelCommit    = "commit"
	LabelDate      = "date"
	LabelErrorType = "error_type"
	LabelMethod    = "method"
	LabelStatus    = "status"

	// Ledger methods.
	MethodGetAccount = "get_account"
	MethodSubmit     = "submit"
	MethodConfirm    = "confirm"

	// Request statuses.
	StatusOK       = "ok"
	StatusNotFound = "not_found"
	StatusError    = "error"

	// Error types.
	ErrorTypeGetAccount = "get_account"
	ErrorTypeSubmit     = "submit"
	ErrorTypeConfirm    = "confirm"
)

var (
	BuildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameBuildInfo,
			Help: "Build information of the echo cli",
		},
		[]string{LabelVersion, LabelCommit, LabelDate},
	)

	Errors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameErrors,
			Help: "Number of errors encountered",
		},
		[]string{LabelErrorType},
	)

	LedgerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLedgerRequests,
			Help: "Number of ledger requests by method and status",
		},
		[]string{LabelMethod, LabelStatus},
	)

	LedgerRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameLedgerRequestDuration,
			Help:    "Duration of ledger requests",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
		[]string{LabelMethod},
	)
)
