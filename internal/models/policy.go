package models

import "fmt"

// Backoff selects the pacing strategy between retried attempts.
type Backoff string

// Backoff strategies.
const (
	BackoffExponential Backoff = "exponential"
	BackoffLinear      Backoff = "linear"
)

// DefaultMaxAttempts bounds the retry loop when callers pass a zero policy.
const DefaultMaxAttempts = 3

// ParseBackoff validates a user-supplied strategy name (CLI flag, config).
// Empty input selects the default.
func ParseBackoff(s string) (Backoff, error) {
	switch Backoff(s) {
	case "":
		return BackoffExponential, nil
	case BackoffExponential, BackoffLinear:
		return Backoff(s), nil
	default:
		return "", fmt.Errorf("unknown backoff strategy %q (supported: exponential, linear)", s)
	}
}

// RetryPolicy bounds one retry loop. Immutable by convention: constructed
// once per call and passed by value.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     Backoff
}

// DefaultRetryPolicy is three exponential attempts.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: DefaultMaxAttempts, Backoff: BackoffExponential}
}

// WithDefaults fills zero fields so a zero-value policy behaves like
// DefaultRetryPolicy.
func (p RetryPolicy) WithDefaults() RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.Backoff == "" {
		p.Backoff = BackoffExponential
	}
	return p
}
