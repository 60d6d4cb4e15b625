package mediate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/mediate/behavior"
	"github.com/xraph/mediate/container"
	"github.com/xraph/mediate/handler"
	"github.com/xraph/mediate/id"
	"github.com/xraph/mediate/scope"
)

// Open registration groups shared by every closed instantiation of the
// two handler interfaces. The type arguments only anchor the generics;
// Group strips them.
var (
	requestGroup      = container.Group(container.Key[handler.RequestHandler[struct{}, struct{}]]())
	notificationGroup = container.Group(container.Key[handler.NotificationHandler[struct{}]]())
)

// RequestGroup returns the open registration group name for request
// handlers, for callers wiring the container directly.
func RequestGroup() string { return requestGroup }

// NotificationGroup returns the open registration group name for
// notification handlers, for callers wiring the container directly.
func NotificationGroup() string { return notificationGroup }

// RegisterHandler registers a typed request handler. Exactly one
// handler serves a request type; re-registration replaces the previous
// handler.
func RegisterHandler[TReq any, TRes any](m *Mediator, h handler.RequestHandler[TReq, TRes]) {
	handler.Register(m.registry, h)
	m.hooks.EmitHandlerRegistered(context.Background(), handler.TypeOf[TReq]())
}

// RegisterHandlerFunc registers a plain function as a request handler.
func RegisterHandlerFunc[TReq any, TRes any](m *Mediator, fn func(ctx context.Context, req TReq) (TRes, error)) {
	handler.RegisterFunc(m.registry, fn)
	m.hooks.EmitHandlerRegistered(context.Background(), handler.TypeOf[TReq]())
}

// RegisterNotificationHandler subscribes a handler to a notification
// type. Multiple handlers per type are kept in registration order.
func RegisterNotificationHandler[TNote any](m *Mediator, h handler.NotificationHandler[TNote]) {
	key := container.Key[handler.NotificationHandler[TNote]]()
	m.container.RegisterInstance(key, h)
	m.hooks.EmitHandlerRegistered(context.Background(), key)
}

// RegisterOpenNotificationHandler subscribes a handler under the open
// notification group. It is offered to the fan-out of every
// notification type whose closed handler interface it satisfies, and
// deduplicated against closed registrations of the same concrete type.
func RegisterOpenNotificationHandler(m *Mediator, h any) {
	m.container.RegisterOpenInstance(notificationGroup, h)
}

// RegisterOpenRequestHandler registers a request handler under the open
// request group. Send resolves it for whichever closed RequestHandler
// instantiation it satisfies. Useful when the handler's type parameters
// are not known at the registration site, e.g. scanner-driven wiring.
func RegisterOpenRequestHandler(m *Mediator, h any) {
	m.container.RegisterOpenInstance(requestGroup, h)
}

// Send dispatches a request to its single registered handler and
// returns the typed response.
//
// Handlers are resolved from the registry first, then from the service
// container: the closed RequestHandler key, falling back to the open
// request group. Absence everywhere is ErrHandlerNotFound. The dispatch runs through the full behavior
// pipeline; lifecycle hooks observe start, completion, and failure.
func Send[TReq any, TRes any](ctx context.Context, m *Mediator, req TReq) (TRes, error) {
	var zero TRes

	reqType := handler.TypeOf[TReq]()
	env := &handler.Envelope{
		ID:      id.NewRequestID(),
		Name:    reqType.String(),
		Kind:    handler.KindRequest,
		Request: req,
		Timeout: m.config.DefaultTimeout,
	}
	env.ScopeAppID, env.ScopeOrgID = scope.Capture(ctx)

	var terminal behavior.Handler
	if fn, ok := m.registry.Request(reqType); ok {
		terminal = func(ctx context.Context) (any, error) {
			return fn(ctx, req)
		}
	} else if v, ok := m.container.ResolveOpen(container.Key[handler.RequestHandler[TReq, TRes]]()); ok {
		h, ok := v.(handler.RequestHandler[TReq, TRes])
		if !ok {
			return zero, fmt.Errorf("%w: %s resolved to %T", ErrInvalidHandler, env.Name, v)
		}
		terminal = func(ctx context.Context) (any, error) {
			return h.Handle(ctx, req)
		}
	} else {
		return zero, fmt.Errorf("%w: %s", ErrHandlerNotFound, env.Name)
	}

	m.hooks.EmitRequestStarted(ctx, env)
	start := time.Now()

	res, err := m.chain(ctx, env, terminal)
	if err != nil {
		m.hooks.EmitRequestFailed(ctx, env, err)
		return zero, err
	}
	m.hooks.EmitRequestCompleted(ctx, env, time.Since(start))

	if res == nil {
		return zero, nil
	}
	typed, ok := res.(TRes)
	if !ok {
		return zero, fmt.Errorf("%w: %s produced %T", ErrInvalidResponse, env.Name, res)
	}
	return typed, nil
}

// Publish dispatches a notification to every subscribed handler, in
// registration order, closed registrations before open ones, with
// duplicate implementations collapsed by concrete type. Zero handlers
// is a valid no-op.
//
// By default the fan-out stops at the first handler error; with
// ContinueOnError every handler runs and the errors are joined. The
// whole fan-out runs through the behavior pipeline as one dispatch.
func Publish[TNote any](ctx context.Context, m *Mediator, note TNote) error {
	key := container.Key[handler.NotificationHandler[TNote]]()

	instances := m.container.ResolveAll(key)
	handlers := make([]handler.NotificationHandler[TNote], 0, len(instances))
	for _, v := range instances {
		if h, ok := v.(handler.NotificationHandler[TNote]); ok {
			handlers = append(handlers, h)
		}
	}

	env := &handler.Envelope{
		ID:      id.NewNotificationID(),
		Name:    handler.TypeOf[TNote]().String(),
		Kind:    handler.KindNotification,
		Request: note,
		Timeout: m.config.DefaultTimeout,
	}
	env.ScopeAppID, env.ScopeOrgID = scope.Capture(ctx)

	terminal := func(ctx context.Context) (any, error) {
		if m.config.ContinueOnError {
			var errs []error
			for _, h := range handlers {
				if err := h.Handle(ctx, note); err != nil {
					errs = append(errs, err)
				}
			}
			return nil, errors.Join(errs...)
		}
		for _, h := range handlers {
			if err := h.Handle(ctx, note); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}

	_, err := m.chain(ctx, env, terminal)
	m.hooks.EmitNotificationPublished(ctx, env, len(handlers))
	return err
}
