package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	focengine "github.com/foc-fun/foc-engine-go"
)

// Recover returns middleware that recovers from panics in the executor.
// Panics are converted to errors and logged with a stack trace, so a
// panicking executor behaves like a rejected submission and the batch is
// re-queued instead of crashing the process.
func Recover(logger *slog.Logger) Middleware {
	return func(next focengine.Executor) focengine.Executor {
		return func(ctx context.Context, batch []focengine.Action) (retErr error) {
			defer func() {
				if r := recover(); r != nil {
					stack := string(debug.Stack())
					logger.Error("executor panicked",
						slog.Int("size", len(batch)),
						slog.Any("panic", r),
						slog.String("stack", stack),
					)
					retErr = fmt.Errorf("panic in executor: %v", r)
				}
			}()
			return next(ctx, batch)
		}
	}
}
