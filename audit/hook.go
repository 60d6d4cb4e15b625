package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xraph/mediate/handler"
	"github.com/xraph/mediate/hook"
)

// Compile-time interface checks.
var (
	_ hook.Hook                  = (*Hook)(nil)
	_ hook.RequestStarted        = (*Hook)(nil)
	_ hook.RequestCompleted      = (*Hook)(nil)
	_ hook.RequestFailed         = (*Hook)(nil)
	_ hook.NotificationPublished = (*Hook)(nil)
	_ hook.Shutdown              = (*Hook)(nil)
)

// Recorder is the interface that audit backends must implement.
// It is defined locally so this package does not import any audit
// backend directly — callers inject the concrete recorder at wiring
// time.
type Recorder interface {
	// Record persists a fully-formed audit event.
	Record(ctx context.Context, event *Event) error
}

// Event is a local representation of an audit event. Callers provide a
// RecorderFunc adapter that bridges to their audit backend.
type Event struct {
	// What happened
	Action   string `json:"action"`
	Resource string `json:"resource"`
	Category string `json:"category"`

	// Details
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *Event) error

func (f RecorderFunc) Record(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// Severity constants.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Outcome constants.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Hook bridges Mediate lifecycle events to an audit trail backend.
// Each lifecycle event emits a structured audit event through the
// [Recorder].
type Hook struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates a Hook that emits audit events through the provided
// Recorder.
func New(r Recorder, opts ...Option) *Hook {
	h := &Hook{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Name implements hook.Hook.
func (h *Hook) Name() string { return "audit" }

// OnRequestStarted implements hook.RequestStarted.
func (h *Hook) OnRequestStarted(ctx context.Context, env *handler.Envelope) error {
	return h.record(ctx, ActionRequestStarted, SeverityInfo, OutcomeSuccess,
		ResourceRequest, env.ID.String(), CategoryRequest, nil,
		"request_name", env.Name,
		"app_id", env.ScopeAppID,
		"org_id", env.ScopeOrgID,
	)
}

// OnRequestCompleted implements hook.RequestCompleted.
func (h *Hook) OnRequestCompleted(ctx context.Context, env *handler.Envelope, elapsed time.Duration) error {
	return h.record(ctx, ActionRequestCompleted, SeverityInfo, OutcomeSuccess,
		ResourceRequest, env.ID.String(), CategoryRequest, nil,
		"request_name", env.Name,
		"app_id", env.ScopeAppID,
		"org_id", env.ScopeOrgID,
		"elapsed_ms", elapsed.Milliseconds(),
	)
}

// OnRequestFailed implements hook.RequestFailed.
func (h *Hook) OnRequestFailed(ctx context.Context, env *handler.Envelope, reqErr error) error {
	return h.record(ctx, ActionRequestFailed, SeverityCritical, OutcomeFailure,
		ResourceRequest, env.ID.String(), CategoryRequest, reqErr,
		"request_name", env.Name,
		"app_id", env.ScopeAppID,
		"org_id", env.ScopeOrgID,
	)
}

// OnNotificationPublished implements hook.NotificationPublished.
func (h *Hook) OnNotificationPublished(ctx context.Context, env *handler.Envelope, handlers int) error {
	return h.record(ctx, ActionNotificationPublished, SeverityInfo, OutcomeSuccess,
		ResourceNotification, env.ID.String(), CategoryNotification, nil,
		"notification_name", env.Name,
		"app_id", env.ScopeAppID,
		"org_id", env.ScopeOrgID,
		"handlers", handlers,
	)
}

// OnShutdown implements hook.Shutdown.
func (h *Hook) OnShutdown(ctx context.Context) error {
	return h.record(ctx, ActionShutdown, SeverityInfo, OutcomeSuccess,
		ResourceMediator, "", CategoryLifecycle, nil,
	)
}

// record builds and sends an audit event if the action is enabled.
// The kvPairs argument is a list of key-value pairs added to Metadata.
func (h *Hook) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if h.enabled != nil && !h.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &Event{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := h.recorder.Record(ctx, evt); recErr != nil {
		h.logger.Warn("audit: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
