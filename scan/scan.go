// Package scan builds a typeset descriptor universe from a compiled Go
// package.
//
// It loads one package with golang.org/x/tools/go/packages and inspects
// declared named types by signature: a type with a method
// Handle(context.Context, TReq) (TRes, error) is recorded as declaring
// RequestHandler[TReq, TRes]; a type with Handle(context.Context, TNote)
// error as declaring NotificationHandler[TNote]. No directives or
// annotations needed, the signature is the marker. The first embedded
// named struct field becomes the descriptor's base link, so handler
// interfaces declared on an embedded base are visible on the embedding
// type.
package scan

import (
	"fmt"
	"go/types"
	"path/filepath"

	"golang.org/x/tools/go/packages"

	"github.com/xraph/mediate/typeset"
)

// Result holds the descriptor universe built from one scanned package,
// the per-scan open definitions to query it with, and package metadata.
type Result struct {
	Module *typeset.Module

	// RequestHandlers and NotificationHandlers are the open generic
	// definitions the scanned types instantiate. Pass them to Find to
	// enumerate implementations.
	RequestHandlers      *typeset.Type
	NotificationHandlers *typeset.Type

	PackagePath string
	ModulePath  string
	Dir         string
}

// RequestMatches returns every concrete type in the scanned package that
// implements some closed RequestHandler instantiation.
func (r *Result) RequestMatches() []typeset.Match {
	return typeset.FindImplementations(r.Module, r.RequestHandlers)
}

// NotificationMatches returns every concrete type in the scanned package
// that implements some closed NotificationHandler instantiation.
func (r *Result) NotificationMatches() []typeset.Match {
	return typeset.FindImplementations(r.Module, r.NotificationHandlers)
}

// Option configures a scan.
type Option func(*config)

type config struct {
	dir string
}

// WithDir sets the working directory for package loading. Empty means
// the current directory.
func WithDir(dir string) Option {
	return func(c *config) {
		c.dir = dir
	}
}

// Package scans a Go package for handler types.
//
// The pattern follows go command semantics:
//   - "." for current directory
//   - Import path like "github.com/foo/bar"
//   - Absolute or relative directory path
//
// The pattern must resolve to exactly one package. A package declaring
// no handler types yields a valid result with no matches.
func Package(pattern string, opts ...Option) (*Result, error) {
	var c config
	for _, opt := range opts {
		opt(&c)
	}

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles |
			packages.NeedTypes | packages.NeedModule,
		Dir: c.dir,
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("load package: %w", err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found matching %q", pattern)
	}

	if len(pkgs) > 1 {
		return nil, fmt.Errorf("multiple packages found matching %q; specify a single package", pattern)
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("package errors: %v", pkg.Errors[0])
	}

	result := &Result{
		RequestHandlers:      typeset.NewDefinition("RequestHandler"),
		NotificationHandlers: typeset.NewDefinition("NotificationHandler"),
		PackagePath:          pkg.PkgPath,
	}

	if pkg.Module != nil {
		result.ModulePath = pkg.Module.Path
	}

	if len(pkg.GoFiles) > 0 {
		result.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	b := &builder{
		pkg:    pkg.Types,
		result: result,
		byName: make(map[string]*typeset.Type),
	}

	// Scope().Names() is sorted, so descriptor order and every
	// downstream match order is deterministic across runs.
	scope := pkg.Types.Scope()
	var moduleTypes []*typeset.Type
	for _, name := range scope.Names() {
		obj, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || obj.IsAlias() {
			continue
		}
		named, ok := obj.Type().(*types.Named)
		if !ok {
			continue
		}
		// Open generic declarations have no runtime identity to
		// register; only closed types participate.
		if named.TypeParams().Len() > 0 {
			continue
		}
		moduleTypes = append(moduleTypes, b.descriptor(named))
	}

	result.Module = typeset.NewModule(moduleTypes...)
	return result, nil
}

// Find enumerates implementations of def within the module, validating
// that def is an open generic definition. This is the boundary check the
// pure query leaves to its callers: a closed instantiation is a usable
// Go value and easy to pass by mistake.
func Find(m *typeset.Module, def *typeset.Type) ([]typeset.Match, error) {
	if def == nil {
		return nil, fmt.Errorf("scan: nil definition")
	}
	if !def.IsDefinition() {
		return nil, fmt.Errorf("scan: %s is not an open generic definition (closed instantiations cannot be scan targets)", def)
	}
	return typeset.FindImplementations(m, def), nil
}

// builder memoizes descriptor construction per named type. Descriptors
// for embedded bases are built recursively before the embedding type,
// which is safe because Go forbids embedding cycles by value.
type builder struct {
	pkg    *types.Package
	result *Result
	byName map[string]*typeset.Type
}

func (b *builder) descriptor(named *types.Named) *typeset.Type {
	name := b.typeName(named)
	if t, ok := b.byName[name]; ok {
		return t
	}

	if types.IsInterface(named.Underlying()) {
		t := typeset.NewInterface(name)
		b.byName[name] = t
		return t
	}

	var opts []typeset.Option

	if ifaces := b.handlerInterfaces(named); len(ifaces) > 0 {
		opts = append(opts, typeset.WithInterfaces(ifaces...))
	}

	if base := b.embeddedBase(named); base != nil {
		opts = append(opts, typeset.WithBase(b.descriptor(base)))
	}

	t := typeset.NewStruct(name, opts...)
	b.byName[name] = t
	return t
}

// handlerInterfaces derives the handler instantiations a type declares
// from its directly declared Handle method, ignoring promoted methods:
// those are accounted for by the base link.
func (b *builder) handlerInterfaces(named *types.Named) []*typeset.Type {
	for i := 0; i < named.NumMethods(); i++ {
		fn := named.Method(i)
		if fn.Name() != "Handle" {
			continue
		}
		sig, ok := fn.Type().(*types.Signature)
		if !ok {
			continue
		}
		if inst := b.classifyHandle(sig); inst != nil {
			return []*typeset.Type{inst}
		}
	}
	return nil
}

// classifyHandle maps a Handle signature onto a closed handler
// instantiation, or nil when the signature conforms to neither shape.
func (b *builder) classifyHandle(sig *types.Signature) *typeset.Type {
	params := sig.Params()
	if params.Len() != 2 || !isContext(params.At(0).Type()) {
		return nil
	}
	subject := b.argDescriptor(params.At(1).Type())

	results := sig.Results()
	switch results.Len() {
	case 1:
		if !isError(results.At(0).Type()) {
			return nil
		}
		return b.result.NotificationHandlers.Instantiate(subject)
	case 2:
		if !isError(results.At(1).Type()) {
			return nil
		}
		response := b.argDescriptor(results.At(0).Type())
		return b.result.RequestHandlers.Instantiate(subject, response)
	default:
		return nil
	}
}

// argDescriptor returns the descriptor for a handler type argument.
// Arguments declared in the scanned package share the module's
// descriptors; anything else gets a standalone named descriptor.
func (b *builder) argDescriptor(t types.Type) *typeset.Type {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	if named, ok := t.(*types.Named); ok && named.Obj().Pkg() == b.pkg {
		return b.descriptor(named)
	}

	name := types.TypeString(t, types.RelativeTo(b.pkg))
	if d, ok := b.byName[name]; ok {
		return d
	}
	d := typeset.NewStruct(name)
	b.byName[name] = d
	return d
}

// embeddedBase returns the named type of the first embedded struct
// field, the start of Go's promotion chain, or nil.
func (b *builder) embeddedBase(named *types.Named) *types.Named {
	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil
	}
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if !f.Embedded() {
			continue
		}
		ft := f.Type()
		if ptr, ok := ft.(*types.Pointer); ok {
			ft = ptr.Elem()
		}
		base, ok := ft.(*types.Named)
		if !ok {
			continue
		}
		if _, ok := base.Underlying().(*types.Struct); !ok {
			continue
		}
		return base
	}
	return nil
}

func (b *builder) typeName(named *types.Named) string {
	return types.TypeString(named, types.RelativeTo(b.pkg))
}

func isContext(t types.Type) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}
	pkg := named.Obj().Pkg()
	return pkg != nil && pkg.Path() == "context" && named.Obj().Name() == "Context"
}

func isError(t types.Type) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}
	return named.Obj().Pkg() == nil && named.Obj().Name() == "error"
}
