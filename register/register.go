// Package register is the composition root bridging the static scanner
// to a live mediator. Scanned descriptor matches become open-group
// container registrations; named bindings supply the instances the
// descriptors stand for. It also mounts the mediator into an external
// application container.
package register

import (
	"fmt"

	"github.com/xraph/mediate"
	"github.com/xraph/mediate/container"
	"github.com/xraph/mediate/scan"
	"github.com/xraph/mediate/typeset"
)

// Bindings maps scanned type names to the factories producing their
// live instances. The scanner sees declarations; only the application
// knows how to construct them.
type Bindings map[string]container.Factory

// Instance is a convenience for binding an already-constructed handler.
func Instance(v any) container.Factory {
	return func() any { return v }
}

// ServiceName is the key the mediator is mounted under in an external
// container.
const ServiceName = "mediate.Mediator"

// ServiceRegistrar is the minimal surface of an application DI
// container that Into needs. Forge-style containers satisfy it with a
// thin adapter.
type ServiceRegistrar interface {
	RegisterSingleton(name string, factory func() any) error
}

// Setup constructs a mediator and wires every scanned handler into it.
// Every match must have a binding; a scanned handler the application
// cannot construct is a wiring bug, reported as an error rather than
// silently skipped.
func Setup(result *scan.Result, b Bindings, opts ...mediate.Option) (*mediate.Mediator, error) {
	m, err := mediate.New(opts...)
	if err != nil {
		return nil, err
	}
	if err := Apply(m, result, b); err != nil {
		return nil, err
	}
	return m, nil
}

// Apply wires scanned handlers into an existing mediator. Request
// matches are registered under the open request group, notification
// matches under the open notification group, in match order, so
// fan-out order is the scanner's deterministic declaration order. An
// implementation matching several instantiations is registered once.
func Apply(m *mediate.Mediator, result *scan.Result, b Bindings) error {
	c := m.Container()

	wire := func(matches []typeset.Match, group string) error {
		registered := make(map[string]bool)
		for _, match := range matches {
			name := match.Impl.Name()
			if registered[name] {
				continue
			}
			factory, ok := b[name]
			if !ok {
				return fmt.Errorf("register: no binding for scanned handler %s (implements %s)", name, match.Iface)
			}
			registered[name] = true
			c.RegisterOpen(group, factory)
		}
		return nil
	}

	if err := wire(result.RequestMatches(), mediate.RequestGroup()); err != nil {
		return err
	}
	return wire(result.NotificationMatches(), mediate.NotificationGroup())
}

// Into mounts the mediator as a singleton in an external application
// container under ServiceName.
func Into(r ServiceRegistrar, m *mediate.Mediator) error {
	if err := r.RegisterSingleton(ServiceName, func() any { return m }); err != nil {
		return fmt.Errorf("register: mount mediator: %w", err)
	}
	return nil
}
