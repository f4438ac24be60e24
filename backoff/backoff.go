// Package backoff provides retry delay strategies for batch submission.
// All strategies are stateless and safe for concurrent use.
package backoff

import (
	"math"
	"math/rand/v2"
	"time"
)

// Strategy computes the delay before a retry attempt.
type Strategy interface {
	// Delay returns how long to wait before retry attempt n (1-indexed).
	// Attempt 1 is the first retry after the initial failure.
	Delay(attempt int) time.Duration
}

// Constant always returns the same delay regardless of attempt number.
type Constant struct {
	Interval time.Duration
}

// NewConstant creates a constant backoff strategy.
func NewConstant(interval time.Duration) *Constant {
	return &Constant{Interval: interval}
}

// Delay returns the fixed interval.
func (c *Constant) Delay(_ int) time.Duration {
	return c.Interval
}

// Exponential doubles the delay each attempt, capped at Max. With Jitter
// enabled each delay is drawn uniformly from [0, capped) to spread out
// simultaneous retries.
type Exponential struct {
	Initial time.Duration
	Max     time.Duration
	Jitter  bool
}

// NewExponential creates an exponential backoff strategy without jitter.
func NewExponential(initial, maxDelay time.Duration) *Exponential {
	return &Exponential{Initial: initial, Max: maxDelay}
}

// Delay returns min(Initial * 2^(attempt-1), Max), randomized when
// Jitter is set.
func (e *Exponential) Delay(attempt int) time.Duration {
	d := float64(e.Initial) * math.Pow(2, float64(attempt-1))
	if e.Max > 0 && d > float64(e.Max) {
		d = float64(e.Max)
	}
	if e.Jitter {
		d *= rand.Float64()
	}
	return time.Duration(d)
}

// Default returns the strategy used by middleware.Retry when none is
// given: exponential with full jitter, 500ms initial, 30s max.
func Default() Strategy {
	return &Exponential{Initial: 500 * time.Millisecond, Max: 30 * time.Second, Jitter: true}
}
