package middleware

import (
	"context"
	"log/slog"
	"time"

	focengine "github.com/foc-fun/foc-engine-go"
)

// Logging returns middleware that logs submission start and outcome.
func Logging(logger *slog.Logger) Middleware {
	return func(next focengine.Executor) focengine.Executor {
		return func(ctx context.Context, batch []focengine.Action) error {
			logger.Info("batch submission started",
				slog.Int("size", len(batch)),
			)

			start := time.Now()
			err := next(ctx, batch)
			elapsed := time.Since(start)

			if err != nil {
				logger.Error("batch submission failed",
					slog.Int("size", len(batch)),
					slog.Duration("elapsed", elapsed),
					slog.String("error", err.Error()),
				)
			} else {
				logger.Info("batch submission completed",
					slog.Int("size", len(batch)),
					slog.Duration("elapsed", elapsed),
				)
			}

			return err
		}
	}
}
