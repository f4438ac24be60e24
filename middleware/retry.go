package middleware

import (
	"context"
	"fmt"
	"time"

	focengine "github.com/foc-fun/foc-engine-go"
	"github.com/foc-fun/foc-engine-go/backoff"
)

// Retry returns middleware that retries a rejected submission in place,
// sleeping per the strategy between attempts. maxRetries counts retries
// after the initial attempt; a nil strategy uses backoff.Default().
//
// The queue itself never retries; a batch that exhausts its retries
// here is re-queued by the queue and tried again on the next natural
// trigger, so Retry only tightens the loop for transient rejections.
func Retry(strategy backoff.Strategy, maxRetries int) Middleware {
	if strategy == nil {
		strategy = backoff.Default()
	}
	return func(next focengine.Executor) focengine.Executor {
		return func(ctx context.Context, batch []focengine.Action) error {
			var err error
			for attempt := 0; ; attempt++ {
				err = next(ctx, batch)
				if err == nil || attempt >= maxRetries {
					break
				}

				timer := time.NewTimer(strategy.Delay(attempt + 1))
				select {
				case <-ctx.Done():
					timer.Stop()
					return fmt.Errorf("retry %d/%d interrupted: %w", attempt+1, maxRetries, ctx.Err())
				case <-timer.C:
				}
			}
			return err
		}
	}
}
