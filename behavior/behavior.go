// Package behavior provides composable pipeline behaviors for mediator
// dispatch. Behaviors wrap handler calls synchronously and can modify
// execution (recover from panics, validate requests, inject scope, log,
// add tracing, etc.).
package behavior

import (
	"context"

	"github.com/xraph/mediate/handler"
)

// Handler is the terminal function that executes the resolved handler.
type Handler func(ctx context.Context) (any, error)

// Behavior wraps a Handler with cross-cutting logic. It receives the
// current context, the envelope being dispatched, and the next handler
// to call. Behaviors MUST call next to continue the chain (unless
// short-circuiting on error).
type Behavior func(ctx context.Context, env *handler.Envelope, next Handler) (any, error)

// Chain composes multiple behaviors into a single Behavior.
// Behaviors are applied right-to-left: the first behavior in the list
// is the outermost wrapper.
//
// Example: Chain(logging, recover, validation) executes as:
//
//	logging → recover → validation → handler
func Chain(behaviors ...Behavior) Behavior {
	return func(ctx context.Context, env *handler.Envelope, next Handler) (any, error) {
		// Build the chain from the end backwards.
		h := next
		for i := len(behaviors) - 1; i >= 0; i-- {
			b := behaviors[i]
			prev := h
			h = func(ctx context.Context) (any, error) {
				return b(ctx, env, prev)
			}
		}
		return h(ctx)
	}
}
