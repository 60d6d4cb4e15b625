// Package mediate provides a typed in-process mediator for Go. It
// routes requests to exactly one handler, fans notifications out to
// every subscribed handler, and runs both through a composable behavior
// pipeline (recovery, tracing, metrics, logging, tenant scope, timeout,
// validation).
//
// Mediate is designed as a library, not a framework. Import it, create
// a Mediator with functional options, and register handlers as ordinary
// Go types or functions.
//
// # Quick Start
//
//	m, err := mediate.New(
//	    mediate.WithLogger(logger),
//	    mediate.WithValidation(nil),
//	)
//	mediate.RegisterHandlerFunc(m, createOrder)
//
//	res, err := mediate.Send[CreateOrder, OrderCreated](ctx, m, req)
//
// # Architecture
//
// Handlers are resolved from two places: a type-erased registry keyed
// by request type (direct registration) and a small service container
// that understands open generic registration groups (scanner-driven
// registration, see the scan and register packages). Send is
// one-to-one and last registration wins; Publish is one-to-many with
// duplicate implementations collapsed by concrete type identity.
//
// All dispatch IDs use TypeID — type-prefixed, K-sortable, UUIDv7-based
// identifiers.
package mediate
