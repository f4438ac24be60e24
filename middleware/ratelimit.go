package middleware

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	focengine "github.com/foc-fun/foc-engine-go"
)

// RateLimit returns middleware that throttles submission throughput with
// a token-bucket limiter. One token is consumed per queued action, so a
// limit of 10/s sustains ten actions per second no matter how they are
// batched. The wait respects ctx; a cancelled wait fails the submission
// and the batch is re-queued.
//
// Batches larger than the limiter's burst are waved through after a
// burst-sized wait rather than rejected, since splitting the batch is
// the queue's job, not the limiter's.
func RateLimit(limiter *rate.Limiter) Middleware {
	return func(next focengine.Executor) focengine.Executor {
		return func(ctx context.Context, batch []focengine.Action) error {
			n := len(batch)
			if burst := limiter.Burst(); n > burst {
				n = burst
			}
			if err := limiter.WaitN(ctx, n); err != nil {
				return fmt.Errorf("rate limit wait: %w", err)
			}
			return next(ctx, batch)
		}
	}
}
