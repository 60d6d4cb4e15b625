package typeset

// Match pairs a concrete implementation type with the closed interface
// instantiation it implements. The interface's Definition() always
// equals the definition the scan was run against.
type Match struct {
	Impl  *Type
	Iface *Type
}

// FindImplementations locates, within the module's declared types, every
// concrete type implementing some closed instantiation of the given open
// generic interface definition.
//
// def must be an open generic definition, not a closed instantiation.
// This is a documented precondition, validated at user-facing call sites
// (see the scan package), not checked here.
//
// A type declaring the definition under several instantiations yields
// one Match per instantiation, in declaration order. Interfaces declared
// on a base type count as declared by the derived type. The result holds
// no duplicate (Impl, Iface) pairs; a module with no matches yields an
// empty result. Pure query, no side effects.
func FindImplementations(m *Module, def *Type) []Match {
	var matches []Match
	for _, t := range m.types {
		if t.iface || t.abstract || t.generic {
			continue
		}

		seen := make(map[*Type]bool)
		for _, iface := range declaredInterfaces(t) {
			if iface.definition == nil {
				// Non-generic interfaces never match a generic query.
				continue
			}
			if iface.definition != def {
				continue
			}
			if seen[iface] {
				continue
			}
			seen[iface] = true
			matches = append(matches, Match{Impl: t, Iface: iface})
		}
	}
	return matches
}

// declaredInterfaces collects the interfaces a type declares directly or
// inherits through its base chain, preserving declaration order:
// own interfaces first, then the base's, and so on up the chain.
func declaredInterfaces(t *Type) []*Type {
	var out []*Type
	for cur := t; cur != nil; cur = cur.base {
		out = append(out, cur.interfaces...)
	}
	return out
}

// EmbedsDefinition walks the base chain of candidate upward, comparing
// at each step the current type's generic-definition identity (when it
// is an instantiation) or the type itself (when it is not) against def.
// It returns true on the first match — including the degenerate case
// where candidate is def itself — and false once the chain is
// exhausted. Base chains are finite and acyclic, so the walk always
// terminates.
func EmbedsDefinition(candidate, def *Type) bool {
	for cur := candidate; cur != nil; cur = cur.base {
		if cur == def {
			return true
		}
		if cur.definition == def {
			return true
		}
	}
	return false
}
