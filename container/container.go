// Package container provides the service registry the mediator resolves
// handlers from: ordered registrations keyed by interface type, optional
// single-instance resolution, and multi-instance resolution with a
// generic-aware union and identity-based deduplication.
//
// It is deliberately small. The two resolution methods are also the
// factory callbacks handed to an external DI container when the mediator
// is mounted into a larger application (see the register package).
package container

import (
	"reflect"
	"strings"
	"sync"
)

// Factory produces a service instance. Factories registered with
// Register are invoked on every resolution; use RegisterSingleton or
// RegisterInstance for shared instances.
type Factory func() any

type registration struct {
	factory Factory
}

// Container holds ordered service registrations. It is safe for
// concurrent use; registration normally happens once at startup and
// resolution afterwards from any goroutine.
type Container struct {
	mu     sync.RWMutex
	closed map[reflect.Type][]registration
	open   map[string][]registration
}

// New creates an empty container.
func New() *Container {
	return &Container{
		closed: make(map[reflect.Type][]registration),
		open:   make(map[string][]registration),
	}
}

// Key returns the reflect.Type registration key for T. Use it with
// interface types: Key[NotificationHandler[OrderShipped]]().
func Key[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Group returns the open-definition group name for a registration key:
// the key's package path and bare type name with any type arguments
// stripped. All closed instantiations of the same generic interface
// share a group, which is how the unbound form of an interface is
// identified at runtime.
func Group(t reflect.Type) string {
	name := t.Name()
	if name == "" {
		return t.String()
	}
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if pkg := t.PkgPath(); pkg != "" {
		return pkg + "." + name
	}
	return name
}

// Register appends a transient registration for the given key. Multiple
// registrations per key are kept in registration order.
func (c *Container) Register(key reflect.Type, f Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed[key] = append(c.closed[key], registration{factory: f})
}

// RegisterInstance appends a shared-instance registration for the key.
func (c *Container) RegisterInstance(key reflect.Type, v any) {
	c.Register(key, func() any { return v })
}

// RegisterSingleton appends a registration whose factory runs at most
// once; every resolution receives the same instance.
func (c *Container) RegisterSingleton(key reflect.Type, f Factory) {
	var once sync.Once
	var instance any
	c.Register(key, func() any {
		once.Do(func() { instance = f() })
		return instance
	})
}

// RegisterOpen registers an implementation of the unbound form of a
// generic interface under the definition's group name (see Group).
// ResolveAll unions open registrations into results for every closed
// instantiation the implementation satisfies.
func (c *Container) RegisterOpen(group string, f Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open[group] = append(c.open[group], registration{factory: f})
}

// RegisterOpenInstance is RegisterOpen with a shared instance.
func (c *Container) RegisterOpenInstance(group string, v any) {
	c.RegisterOpen(group, func() any { return v })
}

// Resolve returns a single instance for the key. The first registration
// wins. Absence is a normal result, reported as ok=false — it is never
// an error: callers check presence before use.
func (c *Container) Resolve(key reflect.Type) (any, bool) {
	c.mu.RLock()
	regs := c.closed[key]
	c.mu.RUnlock()

	if len(regs) == 0 {
		return nil, false
	}
	return regs[0].factory(), true
}

// ResolveOpen returns a single instance for the key, considering open
// registrations in the key's definition group when no closed
// registration exists. The first assignable open registration wins.
func (c *Container) ResolveOpen(key reflect.Type) (any, bool) {
	if v, ok := c.Resolve(key); ok {
		return v, true
	}

	c.mu.RLock()
	openRegs := c.open[Group(key)]
	c.mu.RUnlock()

	for _, reg := range openRegs {
		v := reg.factory()
		if v != nil && reflect.TypeOf(v).AssignableTo(key) {
			return v, true
		}
	}
	return nil, false
}

// ResolveAll returns every instance registered under the key, in
// registration order, unioned with every open-group registration (for
// the key's definition group) whose instance is assignable to the key.
//
// Deduplication is by concrete runtime type identity, not registration
// key: the first occurrence of an implementation type wins its position
// and later duplicates are silently dropped. An empty result is normal.
func (c *Container) ResolveAll(key reflect.Type) []any {
	c.mu.RLock()
	regs := c.closed[key]
	openRegs := c.open[Group(key)]
	c.mu.RUnlock()

	out := make([]any, 0, len(regs)+len(openRegs))
	seen := make(map[reflect.Type]bool)

	appendInstance := func(v any) {
		if v == nil {
			return
		}
		t := reflect.TypeOf(v)
		if seen[t] {
			return
		}
		seen[t] = true
		out = append(out, v)
	}

	for _, reg := range regs {
		appendInstance(reg.factory())
	}
	for _, reg := range openRegs {
		v := reg.factory()
		if v == nil || !reflect.TypeOf(v).AssignableTo(key) {
			continue
		}
		appendInstance(v)
	}
	return out
}

// Registered reports whether any registration exists for the key,
// without invoking factories.
func (c *Container) Registered(key reflect.Type) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.closed[key]) > 0
}
