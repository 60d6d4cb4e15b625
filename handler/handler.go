// Package handler defines the typed handler interfaces the mediator
// dispatches to, the envelope that travels with every dispatch, and a
// type-erased runtime registry keyed by request type.
package handler

import (
	"context"
	"time"

	"github.com/xraph/mediate/id"
)

// Unit is the response type for requests that return nothing. Using an
// explicit empty struct keeps the two-type-parameter handler form as the
// single handler interface — command handlers are RequestHandler[TReq, Unit].
type Unit struct{}

// RequestHandler handles a request of type TReq and produces a TRes.
// Exactly one request handler serves a given request type.
type RequestHandler[TReq any, TRes any] interface {
	Handle(ctx context.Context, req TReq) (TRes, error)
}

// NotificationHandler handles a notification of type TNote. Any number
// of notification handlers may observe the same notification type.
type NotificationHandler[TNote any] interface {
	Handle(ctx context.Context, note TNote) error
}

// Kind distinguishes request dispatches from notification fan-outs.
type Kind string

const (
	KindRequest      Kind = "request"
	KindNotification Kind = "notification"
)

// Envelope carries per-dispatch metadata through the behavior chain and
// lifecycle hooks. Behaviors may read any field; only Timeout is
// expected to be adjusted in flight.
type Envelope struct {
	// ID is the unique identity of this dispatch.
	ID id.ID

	// Name is the request or notification type name.
	Name string

	// Kind is the dispatch kind.
	Kind Kind

	// Request is the request or notification value being dispatched.
	Request any

	// ScopeAppID and ScopeOrgID carry tenant scope captured from the
	// caller's context at dispatch time.
	ScopeAppID string
	ScopeOrgID string

	// Timeout is the execution deadline for this dispatch. Zero means
	// no deadline.
	Timeout time.Duration
}
