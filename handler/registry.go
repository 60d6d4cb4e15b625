package handler

import (
	"context"
	"fmt"
	"reflect"
	"sync"
)

// Func is a type-erased request handler. The typed RequestHandler is
// converted to a Func at registration time by closing over the type
// assertion and the typed Handle call.
type Func func(ctx context.Context, req any) (any, error)

// Registry maps request types to type-erased handler functions.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	requests map[reflect.Type]Func
}

// NewRegistry creates an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{
		requests: make(map[reflect.Type]Func),
	}
}

// Register registers a typed request handler under the reflect.Type of
// TReq. The generic handler is wrapped in a closure that asserts the
// incoming value back to TReq before calling the typed Handle.
//
// Re-registering a request type replaces the previous handler: request
// dispatch is one-to-one, last registration wins.
//
// This is a package-level generic function because Go does not allow
// generic methods on non-generic receiver types.
func Register[TReq any, TRes any](r *Registry, h RequestHandler[TReq, TRes]) {
	fn := func(ctx context.Context, req any) (any, error) {
		typed, ok := req.(TReq)
		if !ok {
			return nil, fmt.Errorf("handler: request type %T does not match registration %s", req, TypeOf[TReq]())
		}
		return h.Handle(ctx, typed)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[TypeOf[TReq]()] = fn
}

// RegisterFunc registers a plain function as a request handler.
func RegisterFunc[TReq any, TRes any](r *Registry, fn func(ctx context.Context, req TReq) (TRes, error)) {
	Register[TReq, TRes](r, funcHandler[TReq, TRes](fn))
}

// funcHandler adapts a function to RequestHandler.
type funcHandler[TReq any, TRes any] func(ctx context.Context, req TReq) (TRes, error)

func (f funcHandler[TReq, TRes]) Handle(ctx context.Context, req TReq) (TRes, error) {
	return f(ctx, req)
}

// Request returns the handler for the given request type.
// Returns false if no handler is registered.
func (r *Registry) Request(t reflect.Type) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.requests[t]
	return fn, ok
}

// Len returns the number of registered request types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.requests)
}

// RequestTypes returns all registered request types.
func (r *Registry) RequestTypes() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]reflect.Type, 0, len(r.requests))
	for t := range r.requests {
		types = append(types, t)
	}
	return types
}

// TypeOf returns the reflect.Type for T without requiring a value.
// Works for interface types as well as concrete types.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
