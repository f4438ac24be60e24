package middleware

import (
	"context"
	"time"

	focengine "github.com/foc-fun/foc-engine-go"
)

// Timeout returns middleware that enforces a per-submission deadline.
// When the deadline is exceeded the context is cancelled and the
// executor should return context.DeadlineExceeded, which re-queues the
// batch like any other failure. A non-positive d is a pass-through.
func Timeout(d time.Duration) Middleware {
	return func(next focengine.Executor) focengine.Executor {
		return func(ctx context.Context, batch []focengine.Action) error {
			if d <= 0 {
				return next(ctx, batch)
			}
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next(ctx, batch)
		}
	}
}
