package behavior

import (
	"context"
	"log/slog"
	"time"

	"github.com/xraph/mediate/handler"
)

// Logging returns a behavior that logs dispatch start and completion.
func Logging(logger *slog.Logger) Behavior {
	return func(ctx context.Context, env *handler.Envelope, next Handler) (any, error) {
		logger.Info("dispatch started",
			slog.String("name", env.Name),
			slog.String("dispatch_id", env.ID.String()),
			slog.String("kind", string(env.Kind)),
		)

		start := time.Now()
		res, err := next(ctx)
		elapsed := time.Since(start)

		if err != nil {
			logger.Error("dispatch failed",
				slog.String("name", env.Name),
				slog.String("dispatch_id", env.ID.String()),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		} else {
			logger.Info("dispatch completed",
				slog.String("name", env.Name),
				slog.String("dispatch_id", env.ID.String()),
				slog.Duration("elapsed", elapsed),
			)
		}

		return res, err
	}
}
