package behavior

import (
	"context"
	"log/slog"

	"github.com/xraph/mediate/handler"
)

// Timeout returns a behavior that enforces a per-dispatch execution
// deadline. If the envelope has a non-zero Timeout, a context.WithTimeout
// wraps the handler call. When the deadline is exceeded the context is
// cancelled and the handler should return context.DeadlineExceeded.
func Timeout(logger *slog.Logger) Behavior {
	return func(ctx context.Context, env *handler.Envelope, next Handler) (any, error) {
		if env.Timeout > 0 {
			logger.Debug("dispatch timeout set",
				slog.String("dispatch_id", env.ID.String()),
				slog.Duration("timeout", env.Timeout),
			)
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, env.Timeout)
			defer cancel()
		}
		return next(ctx)
	}
}
