// Package observability provides built-in hooks for metrics collection
// on mediator dispatch lifecycle events.
package observability
