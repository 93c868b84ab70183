package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/natal-chart-service/internal/platform/logging"
)

// Chart computations run as Validate → Perform → Verify.
//
//   1. VALIDATE - check inputs and readiness; no provider call may happen before this passes
//   2. PERFORM  - query the provider and assemble the result
//   3. VERIFY   - check the assembled result against its invariants
//
// Nothing is persisted, so there is no archive step.

// Step names a pipeline stage.
type Step string

const (
	StepValidate Step = "validate"
	StepPerform  Step = "perform"
	StepVerify   Step = "verify"
)

// StepError wraps an error with the pipeline step and operation that produced it.
type StepError struct {
	Step      Step
	Operation string
	Cause     error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Operation, e.Step, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *StepError) Unwrap() error {
	return e.Cause
}

// Pipeline holds the functions for each step. Any nil step is skipped,
// except Perform.
type Pipeline[I, O any] struct {
	// Name identifies the operation in logs and errors.
	Name string

	Validate func(ctx context.Context, input I) error
	Perform  func(ctx context.Context, input I) (O, error)
	Verify   func(ctx context.Context, input I, performed O) error

	// Observe, if set, is called once per executed step.
	Observe func(step Step, elapsed time.Duration, err error)
}

// Run executes the pipeline. The logger from ctx is preferred over fallback.
func (p Pipeline[I, O]) Run(ctx context.Context, fallback *slog.Logger, input I) (O, error) {
	var zero O

	logger := logging.FromContextOr(ctx, fallback).With(slog.String("operation", p.Name))
	start := time.Now()

	if p.Validate != nil {
		if err := p.step(ctx, logger, StepValidate, func() error { return p.Validate(ctx, input) }); err != nil {
			return zero, err
		}
	}

	var out O

	err := p.step(ctx, logger, StepPerform, func() error {
		var perr error

		out, perr = p.Perform(ctx, input)

		return perr
	})
	if err != nil {
		return zero, err
	}

	if p.Verify != nil {
		if err := p.step(ctx, logger, StepVerify, func() error { return p.Verify(ctx, input, out) }); err != nil {
			return zero, err
		}
	}

	logger.DebugContext(ctx, "operation completed", slog.Duration("duration", time.Since(start)))

	return out, nil
}

func (p Pipeline[I, O]) step(ctx context.Context, logger *slog.Logger, step Step, fn func() error) error {
	start := time.Now()
	err := fn()

	if p.Observe != nil {
		p.Observe(step, time.Since(start), err)
	}

	if err == nil {
		return nil
	}

	level := slog.LevelError
	if step == StepValidate {
		level = slog.LevelWarn
	}

	logger.Log(ctx, level, "step failed", slog.String("step", string(step)), slog.Any("error", err))

	return &StepError{Step: step, Operation: p.Name, Cause: err}
}

// FailedStep extracts the step from a pipeline error.
func FailedStep(err error) (Step, bool) {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Step, true
	}

	return "", false
}
