package observability

import (
	"context"
	"reflect"
	"time"

	gu "github.com/xraph/go-utils/metrics"

	"github.com/xraph/mediate/handler"
	"github.com/xraph/mediate/hook"
)

// Compile-time interface checks.
var (
	_ hook.Hook                  = (*MetricsHook)(nil)
	_ hook.RequestStarted        = (*MetricsHook)(nil)
	_ hook.RequestCompleted      = (*MetricsHook)(nil)
	_ hook.RequestFailed         = (*MetricsHook)(nil)
	_ hook.NotificationPublished = (*MetricsHook)(nil)
	_ hook.HandlerRegistered     = (*MetricsHook)(nil)
)

// MetricsHook records mediator-wide lifecycle metrics via go-utils
// MetricFactory. Register it as a Mediate hook to automatically track
// dispatch rates, completion counts, failure rates, notification
// fan-outs, and handler registrations.
type MetricsHook struct {
	RequestStarted         gu.Counter
	RequestCompleted       gu.Counter
	RequestFailed          gu.Counter
	NotificationsPublished gu.Counter
	HandlersRegistered     gu.Counter
}

// NewMetricsHook creates a MetricsHook using a default metrics collector.
func NewMetricsHook() *MetricsHook {
	return NewMetricsHookWithFactory(gu.NewMetricsCollector("mediate/observability"))
}

// NewMetricsHookWithFactory creates a MetricsHook with the provided MetricFactory.
// Use fapp.Metrics() in forge extensions, or gu.NewMetricsCollector for testing.
func NewMetricsHookWithFactory(factory gu.MetricFactory) *MetricsHook {
	return &MetricsHook{
		RequestStarted:         factory.Counter("mediate.request.started"),
		RequestCompleted:       factory.Counter("mediate.request.completed"),
		RequestFailed:          factory.Counter("mediate.request.failed"),
		NotificationsPublished: factory.Counter("mediate.notification.published"),
		HandlersRegistered:     factory.Counter("mediate.handler.registered"),
	}
}

// Name implements hook.Hook.
func (m *MetricsHook) Name() string { return "observability-metrics" }

// OnRequestStarted implements hook.RequestStarted.
func (m *MetricsHook) OnRequestStarted(_ context.Context, _ *handler.Envelope) error {
	m.RequestStarted.Inc()
	return nil
}

// OnRequestCompleted implements hook.RequestCompleted.
func (m *MetricsHook) OnRequestCompleted(_ context.Context, _ *handler.Envelope, _ time.Duration) error {
	m.RequestCompleted.Inc()
	return nil
}

// OnRequestFailed implements hook.RequestFailed.
func (m *MetricsHook) OnRequestFailed(_ context.Context, _ *handler.Envelope, _ error) error {
	m.RequestFailed.Inc()
	return nil
}

// OnNotificationPublished implements hook.NotificationPublished.
func (m *MetricsHook) OnNotificationPublished(_ context.Context, _ *handler.Envelope, _ int) error {
	m.NotificationsPublished.Inc()
	return nil
}

// OnHandlerRegistered implements hook.HandlerRegistered.
func (m *MetricsHook) OnHandlerRegistered(_ context.Context, _ reflect.Type) error {
	m.HandlersRegistered.Inc()
	return nil
}
