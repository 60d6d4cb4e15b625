// Package typeset models a module's declared types as read-only
// descriptors and answers which concrete types implement which closed
// instantiation of an open generic interface definition.
//
// Go's runtime reflection cannot see open generic forms, so the
// descriptor universe is built explicitly — by the scan package from
// go/types metadata, or by hand at startup — and queried with pure
// functions. Descriptors are immutable after construction; a Module is a
// fixed universe with deterministic iteration order.
package typeset

import (
	"fmt"
	"strings"
)

// Type is a read-only descriptor for a declared type. It exposes the
// type's declared interfaces, its optional base type, and — when the
// type is a closed generic instantiation — the identity of the open
// definition it instantiates.
type Type struct {
	name     string
	iface    bool
	abstract bool
	generic  bool // open generic definition

	definition *Type   // non-nil only for closed instantiations
	args       []*Type // type arguments of an instantiation

	interfaces []*Type
	base       *Type

	// instances interns closed instantiations per definition so that
	// Instantiate with equal arguments yields identical descriptors.
	instances map[string]*Type
}

// Option configures a concrete type descriptor.
type Option func(*Type)

// WithInterfaces declares interfaces on the type, in declaration order.
func WithInterfaces(ifaces ...*Type) Option {
	return func(t *Type) {
		t.interfaces = append(t.interfaces, ifaces...)
	}
}

// WithBase sets the type's base (embedded) type.
func WithBase(base *Type) Option {
	return func(t *Type) {
		t.base = base
	}
}

// Abstract marks the type as non-instantiable. Abstract types never
// appear as implementations in scan results.
func Abstract() Option {
	return func(t *Type) {
		t.abstract = true
	}
}

// NewDefinition declares an open generic definition — the unbound form
// of a generic interface or base type (e.g. the open "Handler[T]").
func NewDefinition(name string) *Type {
	return &Type{
		name:      name,
		iface:     true,
		generic:   true,
		instances: make(map[string]*Type),
	}
}

// NewBaseDefinition declares an open generic base type. Like
// NewDefinition but for embeddable (non-interface) generic types; used
// as the target of EmbedsDefinition walks.
func NewBaseDefinition(name string) *Type {
	return &Type{
		name:      name,
		abstract:  true,
		generic:   true,
		instances: make(map[string]*Type),
	}
}

// NewInterface declares a plain, non-generic interface.
func NewInterface(name string) *Type {
	return &Type{name: name, iface: true}
}

// NewStruct declares a concrete named type.
func NewStruct(name string, opts ...Option) *Type {
	t := &Type{name: name}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Instantiate returns the closed instantiation of this definition with
// the given type arguments. Instantiations are interned: calling
// Instantiate twice with equal arguments returns the same descriptor,
// which is what gives instantiations identity semantics.
//
// Panics if the receiver is not an open generic definition (programming
// error at descriptor-construction time).
func (t *Type) Instantiate(args ...*Type) *Type {
	if !t.generic {
		panic(fmt.Sprintf("typeset: Instantiate on non-definition type %q", t.name))
	}

	names := make([]string, len(args))
	for i, a := range args {
		names[i] = a.name
	}
	key := strings.Join(names, ",")

	if inst, ok := t.instances[key]; ok {
		return inst
	}

	inst := &Type{
		name:       fmt.Sprintf("%s[%s]", t.name, key),
		iface:      t.iface,
		abstract:   t.abstract,
		definition: t,
		args:       args,
	}
	t.instances[key] = inst
	return inst
}

// Name returns the type's rendered name. Instantiations render as
// "Definition[Arg1,Arg2]".
func (t *Type) Name() string { return t.name }

// IsInterface reports whether the type is an interface.
func (t *Type) IsInterface() bool { return t.iface }

// IsAbstract reports whether the type is non-instantiable.
func (t *Type) IsAbstract() bool { return t.abstract }

// IsDefinition reports whether the type is an open generic definition.
func (t *Type) IsDefinition() bool { return t.generic }

// IsInstantiation reports whether the type is a closed generic
// instantiation.
func (t *Type) IsInstantiation() bool { return t.definition != nil }

// Definition returns the open generic definition this instantiation was
// created from, or nil when the type is not an instantiation.
func (t *Type) Definition() *Type { return t.definition }

// TypeArgs returns the type arguments of an instantiation, or nil.
func (t *Type) TypeArgs() []*Type {
	if len(t.args) == 0 {
		return nil
	}
	out := make([]*Type, len(t.args))
	copy(out, t.args)
	return out
}

// Interfaces returns the interfaces declared directly on the type, in
// declaration order.
func (t *Type) Interfaces() []*Type {
	if len(t.interfaces) == 0 {
		return nil
	}
	out := make([]*Type, len(t.interfaces))
	copy(out, t.interfaces)
	return out
}

// Base returns the type's base type, or nil when it has none.
func (t *Type) Base() *Type { return t.base }

// String implements fmt.Stringer.
func (t *Type) String() string { return t.name }

// Module is the fixed universe of types declared in a scanned module.
// Iteration order is insertion order, so scans over the same module are
// deterministic and registration order is reproducible across runs.
type Module struct {
	types []*Type
}

// NewModule creates a module over the given declared types.
func NewModule(types ...*Type) *Module {
	m := &Module{types: make([]*Type, len(types))}
	copy(m.types, types)
	return m
}

// Types returns the declared types in insertion order.
func (m *Module) Types() []*Type {
	out := make([]*Type, len(m.types))
	copy(out, m.types)
	return out
}

// Len returns the number of declared types.
func (m *Module) Len() int { return len(m.types) }
