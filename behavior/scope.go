package behavior

import (
	"context"

	"github.com/xraph/mediate/handler"
	"github.com/xraph/mediate/scope"
)

// Scope returns a behavior that restores multi-tenant scope from the
// envelope's ScopeAppID/ScopeOrgID fields into the context. This ensures
// handlers see the same forge.Scope as the original caller even when the
// dispatch crosses goroutine or pipeline boundaries.
func Scope() Behavior {
	return func(ctx context.Context, env *handler.Envelope, next Handler) (any, error) {
		ctx = scope.Restore(ctx, env.ScopeAppID, env.ScopeOrgID)
		return next(ctx)
	}
}
