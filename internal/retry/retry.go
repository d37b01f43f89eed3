// Package retry drives bounded, backoff-paced re-invocation of operations
// that fail with classified errors. Only the timeout kind is retryable;
// every other kind (and any untagged error) short-circuits on the attempt
// it first occurs. The orchestrator never classifies or wraps failures: the
// final failure is returned to the caller unchanged.
package retry

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/dotcommander/osapilot/internal/models"
	"github.com/dotcommander/osapilot/internal/telemetry"
)

// Kinded is satisfied by failures that carry a taxonomy kind, typically
// *models.ScriptError produced upstream by classify.Classify. The
// orchestrator trusts the operation to return already-classified failures.
type Kinded interface {
	ErrorKind() models.ErrorKind
}

// Delay computes the pause before re-running a failed attempt. Pure.
// Exponential doubles from 200ms (100ms * 2^attempt: 200, 400, 800, 1600,
// 3200 for attempts 1..5); linear is a constant second regardless of attempt.
func Delay(attempt int, strategy models.Backoff) time.Duration {
	if strategy == models.BackoffLinear {
		return time.Second
	}
	return 100 * time.Millisecond << uint(attempt)
}

// Do invokes op until it succeeds, fails with a non-retryable kind, or
// exhausts policy.MaxAttempts. Telemetry is emitted synchronously on this
// call stack: retry.start once, retry.attempt per invocation, retry.sleep
// strictly between two attempts, then exactly one of retry.stop or
// retry.error. The attempt counter never resets, even when the failure kind
// changes between attempts.
//
// ctx is checked before each attempt and before each sleep; cancellation
// returns ctx.Err() rather than a classified failure.
func Do[T any](ctx context.Context, policy models.RetryPolicy, em telemetry.Emitter, op func() (T, error)) (T, error) {
	return run(ctx, policy, em, op, time.Sleep)
}

// run is Do with an injectable sleep so tests don't wait out real backoff.
func run[T any](ctx context.Context, policy models.RetryPolicy, em telemetry.Emitter, op func() (T, error), sleep func(time.Duration)) (T, error) {
	var zero T
	policy = policy.WithDefaults()
	if em == nil {
		em = telemetry.Nop()
	}

	em.Emit(telemetry.Event{
		Name:         telemetry.RetryStart,
		Measurements: map[string]float64{"max_attempts": float64(policy.MaxAttempts)},
		Metadata:     map[string]string{"backoff": string(policy.Backoff)},
	})

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		em.Emit(telemetry.Event{
			Name:         telemetry.RetryAttempt,
			Measurements: map[string]float64{"attempt": float64(attempt)},
		})

		val, err := op()
		if err == nil {
			em.Emit(telemetry.Event{
				Name:         telemetry.RetryStop,
				Measurements: map[string]float64{"attempts": float64(attempt)},
			})
			return val, nil
		}

		if !retryable(err) || attempt == policy.MaxAttempts {
			em.Emit(telemetry.Event{
				Name:         telemetry.RetryError,
				Measurements: map[string]float64{"attempts": float64(attempt)},
				Metadata: map[string]string{
					"error":        err.Error(),
					"max_attempts": strconv.Itoa(policy.MaxAttempts),
					"backoff":      string(policy.Backoff),
				},
			})
			return zero, err
		}

		// Cancellation check precedes the sleep event so a canceled loop
		// never emits a sleep with no following attempt.
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		delay := Delay(attempt, policy.Backoff)
		em.Emit(telemetry.Event{
			Name:         telemetry.RetrySleep,
			Measurements: map[string]float64{"sleep_time": float64(delay.Milliseconds())},
			Metadata: map[string]string{
				"attempt":    strconv.Itoa(attempt),
				"sleep_time": delay.String(),
				"error":      err.Error(),
			},
		})
		sleep(delay)
	}
}

// retryable reports whether the failure participates in the retry budget.
// Untagged errors are treated as final.
func retryable(err error) bool {
	var kinded Kinded
	if errors.As(err, &kinded) {
		return kinded.ErrorKind() == models.KindTimeout
	}
	return false
}
