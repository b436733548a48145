// Package pipeline sequences the named steps of a run. Steps execute in
// declaration order; a required step that fails aborts the run, an optional
// step that fails is logged and skipped.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"datarefinery/internal/metrics"
)

// Step is one unit of work in a run.
type Step struct {
	// ID is the stable machine name of the step ("date_clean", "sink_load").
	ID string
	// Label is the human-readable description used in logs.
	Label string
	// Required aborts the whole run when the step fails.
	Required bool
	// Run does the work. It must honor ctx cancellation.
	Run func(ctx context.Context) error
}

// Sequencer executes steps in order.
type Sequencer struct {
	job   string
	steps []Step
}

// NewSequencer builds a Sequencer. job labels the emitted metrics.
func NewSequencer(job string, steps []Step) *Sequencer {
	return &Sequencer{job: job, steps: steps}
}

// Run executes all steps in order. It returns the first required-step error,
// wrapped with the step ID. Optional-step failures are logged and counted
// but never returned.
func (s *Sequencer) Run(ctx context.Context) error {
	n := len(s.steps)
	for i, step := range s.steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Printf("[%d/%d] %s", i+1, n, step.Label)

		start := time.Now()
		err := step.Run(ctx)
		metrics.RecordStep(s.job, step.ID, err, time.Since(start))
		if err == nil {
			continue
		}
		if step.Required {
			return fmt.Errorf("step %s: %w", step.ID, err)
		}
		log.Printf("optional step %s failed: %v", step.ID, err)
	}
	return nil
}
