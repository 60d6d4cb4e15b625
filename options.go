package mediate

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/mediate/behavior"
	"github.com/xraph/mediate/container"
	"github.com/xraph/mediate/handler"
	"github.com/xraph/mediate/hook"
)

// Option configures a Mediator.
type Option func(*Mediator) error

// Mediator is the central dispatcher for requests and notifications.
//
// Create one with New() and functional options, then register handlers
// with the package-level generic Register* functions (Go does not allow
// generic methods, so registration and dispatch take the Mediator as an
// argument). A Mediator is safe for concurrent use once construction
// and registration are done.
type Mediator struct {
	config    Config
	logger    *slog.Logger
	registry  *handler.Registry
	container *container.Container
	hooks     *hook.Registry

	validator    *validator.Validate
	tracer       trace.Tracer
	meter        metric.Meter
	extra        []behavior.Behavior
	pendingHooks []hook.Hook
	chain        behavior.Behavior
}

// New creates a new Mediator with the given options.
func New(opts ...Option) (*Mediator, error) {
	m := &Mediator{
		config:    DefaultConfig(),
		logger:    slog.Default(),
		registry:  handler.NewRegistry(),
		container: container.New(),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	// Hooks are registered after all options so the registry sees the
	// final logger regardless of option order.
	m.hooks = hook.NewRegistry(m.logger)
	for _, h := range m.pendingHooks {
		m.hooks.Register(h)
	}
	m.chain = behavior.Chain(m.buildStack()...)
	return m, nil
}

// buildStack assembles the behavior pipeline, outermost first: recovery
// wraps everything so a panicking handler still produces a span, a
// metric point, and a log line from the layers beneath it; scope runs
// before timeout so the deadline context carries tenant identity;
// validation sits innermost so invalid requests are rejected with the
// pipeline already observing the attempt. User behaviors from
// WithBehavior run between validation and the handler.
func (m *Mediator) buildStack() []behavior.Behavior {
	stack := []behavior.Behavior{behavior.Recover(m.logger)}

	if m.tracer != nil {
		stack = append(stack, behavior.TracingWithTracer(m.tracer))
	} else {
		stack = append(stack, behavior.Tracing())
	}
	if m.meter != nil {
		stack = append(stack, behavior.MetricsWithMeter(m.meter))
	} else {
		stack = append(stack, behavior.Metrics())
	}

	stack = append(stack,
		behavior.Logging(m.logger),
		behavior.Scope(),
		behavior.Timeout(m.logger),
	)

	if m.validator != nil {
		stack = append(stack, behavior.Validation(m.validator))
	}
	return append(stack, m.extra...)
}

// Logger returns the mediator's logger.
func (m *Mediator) Logger() *slog.Logger { return m.logger }

// Container returns the mediator's service container.
func (m *Mediator) Container() *container.Container { return m.container }

// Registry returns the mediator's request handler registry.
func (m *Mediator) Registry() *handler.Registry { return m.registry }

// Hooks returns the mediator's lifecycle hook registry.
func (m *Mediator) Hooks() *hook.Registry { return m.hooks }

// Config returns a copy of the mediator's configuration.
func (m *Mediator) Config() Config { return m.config }

// Shutdown notifies lifecycle hooks that the mediator is going away.
// In-flight dispatches are not interrupted.
func (m *Mediator) Shutdown(ctx context.Context) {
	m.hooks.EmitShutdown(ctx)
}

// WithLogger sets the structured logger for the mediator.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mediator) error {
		m.logger = l
		return nil
	}
}

// WithDefaultTimeout sets the execution deadline applied to each
// dispatch. Zero means no deadline.
func WithDefaultTimeout(d time.Duration) Option {
	return func(m *Mediator) error {
		m.config.DefaultTimeout = d
		return nil
	}
}

// WithContinueOnError makes Publish run every notification handler even
// when one fails, joining the errors.
func WithContinueOnError() Option {
	return func(m *Mediator) error {
		m.config.ContinueOnError = true
		return nil
	}
}

// WithContainer sets the service container handlers are resolved from.
// Use it to share registrations with an outer composition root.
func WithContainer(c *container.Container) Option {
	return func(m *Mediator) error {
		m.container = c
		return nil
	}
}

// WithBehavior appends behaviors to the pipeline, innermost, between
// the built-in stack and the handler.
func WithBehavior(behaviors ...behavior.Behavior) Option {
	return func(m *Mediator) error {
		m.extra = append(m.extra, behaviors...)
		return nil
	}
}

// WithHooks registers lifecycle hooks. Hook errors are logged, never
// propagated.
func WithHooks(hooks ...hook.Hook) Option {
	return func(m *Mediator) error {
		m.pendingHooks = append(m.pendingHooks, hooks...)
		return nil
	}
}

// WithValidation enables struct-tag request validation. Pass nil to use
// a default validator instance.
func WithValidation(v *validator.Validate) Option {
	return func(m *Mediator) error {
		if v == nil {
			v = validator.New(validator.WithRequiredStructEnabled())
		}
		m.validator = v
		return nil
	}
}

// WithTracer sets an explicit tracer for the tracing behavior. The
// default uses the global otel tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(m *Mediator) error {
		m.tracer = t
		return nil
	}
}

// WithMeter sets an explicit meter for the metrics behavior. The
// default uses the global otel meter provider.
func WithMeter(mt metric.Meter) Option {
	return func(m *Mediator) error {
		m.meter = mt
		return nil
	}
}
