package pipeline

import (
	"context"
	"errors"
	"testing"
)

// TestRunExecutesInOrder checks declaration order and that all steps run on
// the happy path.
func TestRunExecutesInOrder(t *testing.T) {
	t.Parallel()

	var ran []string
	step := func(id string) Step {
		return Step{ID: id, Label: id, Required: true, Run: func(context.Context) error {
			ran = append(ran, id)
			return nil
		}}
	}

	seq := NewSequencer("test", []Step{step("one"), step("two"), step("three")})
	if err := seq.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(ran) != 3 || ran[0] != "one" || ran[1] != "two" || ran[2] != "three" {
		t.Fatalf("ran = %v", ran)
	}
}

// TestRunRequiredFailureAborts stops the run and wraps the error with the
// step ID.
func TestRunRequiredFailureAborts(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var laterRan bool
	seq := NewSequencer("test", []Step{
		{ID: "first", Label: "first", Required: true, Run: func(context.Context) error { return boom }},
		{ID: "second", Label: "second", Required: true, Run: func(context.Context) error {
			laterRan = true
			return nil
		}},
	})

	err := seq.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Run error = %v, want wrapped boom", err)
	}
	if laterRan {
		t.Fatal("steps after a required failure must not run")
	}
}

// TestRunOptionalFailureContinues logs and proceeds.
func TestRunOptionalFailureContinues(t *testing.T) {
	t.Parallel()

	var laterRan bool
	seq := NewSequencer("test", []Step{
		{ID: "flaky", Label: "flaky", Required: false, Run: func(context.Context) error {
			return errors.New("optional failure")
		}},
		{ID: "after", Label: "after", Required: true, Run: func(context.Context) error {
			laterRan = true
			return nil
		}},
	})

	if err := seq.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !laterRan {
		t.Fatal("steps after an optional failure must still run")
	}
}

// TestRunHonorsCancellation stops between steps once the context is done.
func TestRunHonorsCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	var ran int
	seq := NewSequencer("test", []Step{
		{ID: "first", Label: "first", Required: true, Run: func(context.Context) error {
			ran++
			cancel()
			return nil
		}},
		{ID: "second", Label: "second", Required: true, Run: func(context.Context) error {
			ran++
			return nil
		}},
	})

	err := seq.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if ran != 1 {
		t.Fatalf("steps run = %d, want 1", ran)
	}
}
