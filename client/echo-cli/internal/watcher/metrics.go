package watcher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Metric names.
	MetricNameBufferExists  = "echo_watcher_buffer_exists"
	MetricNameBufferBytes   = "echo_watcher_buffer_bytes"
	MetricNameBufferChanges = "echo_watcher_buffer_changes_total"
	MetricNameErrors        = "echo_watcher_errors_total"

	// Labels.
	MetricLabelBuffer    = "buffer"
	MetricLabelErrorType = "error_type"

	// Error types.
	MetricErrorTypeReadBuffer = "read_buffer"
)

var (
	MetricBufferExists = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameBufferExists,
			Help: "Whether the watched buffer account exists (1) or not (0)",
		},
		[]string{MetricLabelBuffer},
	)

	MetricBufferBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameBufferBytes,
			Help: "Size of the watched buffer payload in bytes",
		},
		[]string{MetricLabelBuffer},
	)

	MetricBufferChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBufferChanges,
			Help: "Number of observed changes to the buffer content",
		},
		[]string{MetricLabelBuffer},
	)

	MetricErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameErrors,
			Help: "Number of errors encountered",
		},
		[]string{MetricLabelBuffer, MetricLabelErrorType},
	)
)
