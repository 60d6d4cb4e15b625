package hook

import (
	"context"
	"log/slog"
	"reflect"
	"time"

	"github.com/xraph/mediate/handler"
)

// Named entry types pair a hook implementation with the hook name
// captured at registration time. This avoids type-asserting back to
// Hook inside the emit methods.
type requestStartedEntry struct {
	name string
	hook RequestStarted
}

type requestCompletedEntry struct {
	name string
	hook RequestCompleted
}

type requestFailedEntry struct {
	name string
	hook RequestFailed
}

type notificationPublishedEntry struct {
	name string
	hook NotificationPublished
}

type handlerRegisteredEntry struct {
	name string
	hook HandlerRegistered
}

type shutdownEntry struct {
	name string
	hook Shutdown
}

// Registry holds registered hooks and dispatches lifecycle events to
// them. It type-caches hooks at registration time so emit calls iterate
// only over hooks that implement the relevant event interface.
type Registry struct {
	hooks  []Hook
	logger *slog.Logger

	// Type-cached slices for each lifecycle event.
	requestStarted        []requestStartedEntry
	requestCompleted      []requestCompletedEntry
	requestFailed         []requestFailedEntry
	notificationPublished []notificationPublishedEntry
	handlerRegistered     []handlerRegisteredEntry
	shutdown              []shutdownEntry
}

// NewRegistry creates a hook registry with the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{logger: logger}
}

// Register adds a hook and type-asserts it into all applicable event
// caches. Hooks are notified in registration order.
func (r *Registry) Register(h Hook) {
	r.hooks = append(r.hooks, h)
	name := h.Name()

	if e, ok := h.(RequestStarted); ok {
		r.requestStarted = append(r.requestStarted, requestStartedEntry{name, e})
	}
	if e, ok := h.(RequestCompleted); ok {
		r.requestCompleted = append(r.requestCompleted, requestCompletedEntry{name, e})
	}
	if e, ok := h.(RequestFailed); ok {
		r.requestFailed = append(r.requestFailed, requestFailedEntry{name, e})
	}
	if e, ok := h.(NotificationPublished); ok {
		r.notificationPublished = append(r.notificationPublished, notificationPublishedEntry{name, e})
	}
	if e, ok := h.(HandlerRegistered); ok {
		r.handlerRegistered = append(r.handlerRegistered, handlerRegisteredEntry{name, e})
	}
	if e, ok := h.(Shutdown); ok {
		r.shutdown = append(r.shutdown, shutdownEntry{name, e})
	}
}

// Hooks returns all registered hooks.
func (r *Registry) Hooks() []Hook { return r.hooks }

// EmitRequestStarted notifies all hooks that implement RequestStarted.
func (r *Registry) EmitRequestStarted(ctx context.Context, env *handler.Envelope) {
	for _, e := range r.requestStarted {
		if err := e.hook.OnRequestStarted(ctx, env); err != nil {
			r.logHookError("OnRequestStarted", e.name, err)
		}
	}
}

// EmitRequestCompleted notifies all hooks that implement RequestCompleted.
func (r *Registry) EmitRequestCompleted(ctx context.Context, env *handler.Envelope, elapsed time.Duration) {
	for _, e := range r.requestCompleted {
		if err := e.hook.OnRequestCompleted(ctx, env, elapsed); err != nil {
			r.logHookError("OnRequestCompleted", e.name, err)
		}
	}
}

// EmitRequestFailed notifies all hooks that implement RequestFailed.
func (r *Registry) EmitRequestFailed(ctx context.Context, env *handler.Envelope, reqErr error) {
	for _, e := range r.requestFailed {
		if err := e.hook.OnRequestFailed(ctx, env, reqErr); err != nil {
			r.logHookError("OnRequestFailed", e.name, err)
		}
	}
}

// EmitNotificationPublished notifies all hooks that implement
// NotificationPublished.
func (r *Registry) EmitNotificationPublished(ctx context.Context, env *handler.Envelope, handlers int) {
	for _, e := range r.notificationPublished {
		if err := e.hook.OnNotificationPublished(ctx, env, handlers); err != nil {
			r.logHookError("OnNotificationPublished", e.name, err)
		}
	}
}

// EmitHandlerRegistered notifies all hooks that implement HandlerRegistered.
func (r *Registry) EmitHandlerRegistered(ctx context.Context, key reflect.Type) {
	for _, e := range r.handlerRegistered {
		if err := e.hook.OnHandlerRegistered(ctx, key); err != nil {
			r.logHookError("OnHandlerRegistered", e.name, err)
		}
	}
}

// EmitShutdown notifies all hooks that implement Shutdown.
func (r *Registry) EmitShutdown(ctx context.Context) {
	for _, e := range r.shutdown {
		if err := e.hook.OnShutdown(ctx); err != nil {
			r.logHookError("OnShutdown", e.name, err)
		}
	}
}

// logHookError logs a warning when a lifecycle hook returns an error.
// Errors from hooks are never propagated — they must not block dispatch.
func (r *Registry) logHookError(event, hookName string, err error) {
	r.logger.Warn("lifecycle hook error",
		slog.String("event", event),
		slog.String("hook", hookName),
		slog.String("error", err.Error()),
	)
}
