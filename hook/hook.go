// Package hook defines the lifecycle hook system for Mediate.
//
// Hooks are notified of dispatch lifecycle events and can react to
// them — recording metrics, emitting audit logs, etc. Each lifecycle
// event is a separate interface so hooks opt in only to the events
// they care about.
//
// # Implementing a Hook
//
//	type MyHook struct{}
//
//	func (h *MyHook) Name() string { return "my-hook" }
//
//	// Opt in to specific events by implementing their interfaces.
//	func (h *MyHook) OnRequestCompleted(ctx context.Context, env *handler.Envelope, elapsed time.Duration) error {
//	    log.Printf("request %s completed in %s", env.ID, elapsed)
//	    return nil
//	}
package hook

import (
	"context"
	"reflect"
	"time"

	"github.com/xraph/mediate/handler"
)

// Hook is the base interface all lifecycle hooks must implement.
type Hook interface {
	// Name returns a unique human-readable name for the hook.
	Name() string
}

// RequestStarted is called when the mediator begins dispatching a request.
type RequestStarted interface {
	OnRequestStarted(ctx context.Context, env *handler.Envelope) error
}

// RequestCompleted is called after a request handler finishes successfully.
type RequestCompleted interface {
	OnRequestCompleted(ctx context.Context, env *handler.Envelope, elapsed time.Duration) error
}

// RequestFailed is called when a request handler (or a behavior in its
// chain) returns an error.
type RequestFailed interface {
	OnRequestFailed(ctx context.Context, env *handler.Envelope, err error) error
}

// NotificationPublished is called after a notification has been
// delivered, with the number of handlers that observed it.
type NotificationPublished interface {
	OnNotificationPublished(ctx context.Context, env *handler.Envelope, handlers int) error
}

// HandlerRegistered is called when a handler is registered with the
// mediator, with the registration key the handler was stored under.
type HandlerRegistered interface {
	OnHandlerRegistered(ctx context.Context, key reflect.Type) error
}

// Shutdown is called during graceful shutdown.
type Shutdown interface {
	OnShutdown(ctx context.Context) error
}
