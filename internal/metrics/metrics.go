// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the cleaning pipeline.
//
// The package is intentionally minimal and opinionated:
//
//   - It exposes a narrow interface (Backend) focused on counters and
//     duration observations.
//   - It provides a global, pluggable backend that defaults to a no-op
//     implementation, so metrics are always safe to call even when no real
//     backend is configured.
//   - Concrete metric systems stay isolated in subpackages; the rest of the
//     codebase depends only on this interface.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g.
	// Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing one.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStep measures latency plus success/failure per pipeline step.
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{"job": job, "step": step, "status": status}
	backend.IncCounter("clean_step_total", 1, lbls)
	backend.ObserveHistogram("clean_step_duration_seconds", d.Seconds(), lbls)
}

// RecordFile increments the per-file counter for the given status
// ("processed" or "failed").
func RecordFile(job, status string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("clean_files_total", float64(delta), Labels{
		"job":    job,
		"status": status,
	})
}

// RecordValues increments a value-level counter for the given kind.
//
// Typical kinds mirror the per-file report fields:
//   - "cleaned"
//   - "unparsable"
//   - "rows_dropped"
//   - "rows_skipped"
func RecordValues(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("clean_values_total", float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}
