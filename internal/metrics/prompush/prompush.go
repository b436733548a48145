// Package prompush implements a Prometheus Pushgateway backend for the
// metrics package.
//
// This package adapts the generic metrics.Backend interface to Prometheus
// by using client_golang collectors and pushing to a Pushgateway instance
// instead of exposing a scrape endpoint; batch runs are too short-lived to
// be scraped. All Prometheus-specific dependencies live here so the rest of
// the project can swap backends without changes to the core pipeline.
package prompush

import (
	"fmt"

	"datarefinery/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Backend is a Prometheus Pushgateway metrics backend.
type Backend struct {
	gatewayURL string // e.g. http://pushgateway:9091
	jobName    string // Pushgateway "job" group
	reg        *prometheus.Registry

	stepCounter  *prometheus.CounterVec // clean_step_total
	stepDuration *prometheus.SummaryVec // clean_step_duration_seconds

	fileCounter  *prometheus.CounterVec // clean_files_total
	valueCounter *prometheus.CounterVec // clean_values_total
}

// NewBackend constructs a Pushgateway backend. jobName is the Pushgateway
// "job" grouping key; gatewayURL is the base URL of the Pushgateway server.
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "datarefinery"
	}

	reg := prometheus.NewRegistry()

	stepCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clean_step_total",
			Help: "Total pipeline step executions, partitioned by step and status.",
		},
		[]string{"step", "status"},
	)
	stepDuration := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "clean_step_duration_seconds",
			Help:       "Duration of pipeline steps in seconds, partitioned by step and status.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"step", "status"},
	)
	fileCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clean_files_total",
			Help: "Files handled by the batch, partitioned by status.",
		},
		[]string{"status"},
	)
	valueCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clean_values_total",
			Help: "Value-level counts per kind (cleaned, unparsable, rows_dropped, ...).",
		},
		[]string{"kind"},
	)

	reg.MustRegister(stepCounter, stepDuration, fileCounter, valueCounter)

	return &Backend{
		gatewayURL:   gatewayURL,
		jobName:      jobName,
		reg:          reg,
		stepCounter:  stepCounter,
		stepDuration: stepDuration,
		fileCounter:  fileCounter,
		valueCounter: valueCounter,
	}, nil
}

// IncCounter implements metrics.Backend.
func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case "clean_step_total":
		b.stepCounter.WithLabelValues(labels["step"], labels["status"]).Add(delta)
	case "clean_files_total":
		b.fileCounter.WithLabelValues(labels["status"]).Add(delta)
	case "clean_values_total":
		b.valueCounter.WithLabelValues(labels["kind"]).Add(delta)
	}
}

// ObserveHistogram implements metrics.Backend.
func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	switch name {
	case "clean_step_duration_seconds":
		b.stepDuration.WithLabelValues(labels["step"], labels["status"]).Observe(value)
	}
}

// Flush pushes all collected metrics to the Pushgateway.
func (b *Backend) Flush() error {
	if err := push.New(b.gatewayURL, b.jobName).Gatherer(b.reg).Push(); err != nil {
		return fmt.Errorf("prompush: push to %s: %w", b.gatewayURL, err)
	}
	return nil
}
