package behavior

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/xraph/mediate/handler"
)

// Recover returns a behavior that recovers from panics in the handler
// chain. Panics are converted to errors and logged with a stack trace.
func Recover(logger *slog.Logger) Behavior {
	return func(ctx context.Context, env *handler.Envelope, next Handler) (res any, retErr error) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				logger.Error("handler panicked",
					slog.String("name", env.Name),
					slog.String("dispatch_id", env.ID.String()),
					slog.Any("panic", r),
					slog.String("stack", stack),
				)
				res = nil
				retErr = fmt.Errorf("panic handling %s: %v", env.Name, r)
			}
		}()
		return next(ctx)
	}
}
