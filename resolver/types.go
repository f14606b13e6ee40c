package resolver

import (
	"sort"

	"github.com/gamedevtech/tao/model"
)

// TypeKind represents how a type name used by a descriptor is understood.
type TypeKind int

const (
	TypeKindAlias TypeKind = iota
	TypeKindBuiltin
	TypeKindPointer
	TypeKindUnknown
)

func (k TypeKind) String() string {
	switch k {
	case TypeKindAlias:
		return "alias"
	case TypeKindBuiltin:
		return "builtin"
	case TypeKindPointer:
		return "pointer"
	default:
		return "unknown"
	}
}

// TypeInfo holds what is known about one type name.
type TypeInfo struct {
	Kind       TypeKind
	SystemType string   // Aliases only: the System type it maps to
	UsedBy     []string // Function names referencing the type, in first-use order
}

// ResolvedTypes maps type names to their type info.
type ResolvedTypes map[string]*TypeInfo

// Classify returns the kind of a single type name.
func Classify(name string) TypeKind {
	switch {
	case name == model.OpaquePointerType:
		return TypeKindPointer
	case model.IsBuiltin(name):
		return TypeKindBuiltin
	default:
		if _, ok := model.SystemTypeOf(name); ok {
			return TypeKindAlias
		}
		return TypeKindUnknown
	}
}

// ResolveTypes classifies every return, parameter and previous type used by functions.
func ResolveTypes(functions []*model.Function) ResolvedTypes {
	types := make(ResolvedTypes)
	for _, f := range functions {
		types.add(f.Return(), f.Name)
		for _, p := range f.Parameters {
			types.add(p.Type, f.Name)
			if p.PreviousType != "" {
				types.add(p.PreviousType, f.Name)
			}
		}
	}
	return types
}

func (r ResolvedTypes) add(name, user string) {
	if name == "" {
		return
	}
	info, ok := r[name]
	if !ok {
		info = &TypeInfo{Kind: Classify(name)}
		if info.Kind == TypeKindAlias {
			info.SystemType, _ = model.SystemTypeOf(name)
		}
		r[name] = info
	}
	for _, u := range info.UsedBy {
		if u == user {
			return
		}
	}
	info.UsedBy = append(info.UsedBy, user)
}

// Unknown returns the sorted names of types that could not be classified.
func (r ResolvedTypes) Unknown() []string {
	var names []string
	for name, info := range r {
		if info.Kind == TypeKindUnknown {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Names returns all type names, sorted.
func (r ResolvedTypes) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
