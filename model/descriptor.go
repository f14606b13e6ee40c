package model

import (
	"strings"
)

// DescriptorSet is the top-level structure of a descriptor file handed over
// by the upstream OpenGL registry parser.
type DescriptorSet struct {
	Functions []*Function `yaml:"functions"`
	Constants []*Constant `yaml:"constants,omitempty"`
}

// WrapperType classifies which convenience overloads a function gets.
type WrapperType string

const (
	WrapperNone           WrapperType = "none"
	WrapperReturnsString  WrapperType = "returns_string"
	WrapperVoidPointerIn  WrapperType = "void_pointer_in"
	WrapperVoidPointerOut WrapperType = "void_pointer_out"
	WrapperArrayIn        WrapperType = "array_in"
)

// ValidWrapperTypes is the complete list of wrapper classifications.
var ValidWrapperTypes = []WrapperType{
	WrapperNone, WrapperReturnsString, WrapperVoidPointerIn, WrapperVoidPointerOut, WrapperArrayIn,
}

// Flow is the direction of a parameter.
type Flow string

const (
	FlowIn  Flow = "in"
	FlowOut Flow = "out"
)

// ParamRole is the semantic role of a parameter as seen by the wrapper emitter.
type ParamRole int

const (
	RolePlain ParamRole = iota
	RoleOutputPointer
	RoleOpaquePointer
	RoleOpaquePointerArray
)

func (r ParamRole) String() string {
	switch r {
	case RolePlain:
		return "plain"
	case RoleOutputPointer:
		return "output_pointer"
	case RoleOpaquePointer:
		return "opaque_pointer"
	case RoleOpaquePointerArray:
		return "opaque_pointer_array"
	default:
		return "unknown"
	}
}

// OpaquePointerType is the host type of raw memory addresses.
const OpaquePointerType = "IntPtr"

// Function describes one API entry point.
type Function struct {
	Name        string       `yaml:"name"`
	ReturnType  string       `yaml:"return"`
	Parameters  []*Parameter `yaml:"parameters,omitempty"`
	Version     string       `yaml:"version,omitempty"`
	Extension   bool         `yaml:"extension,omitempty"`
	WrapperType WrapperType  `yaml:"wrapper,omitempty"`
}

// Parameter describes one function parameter.
type Parameter struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	// PreviousType is the element type the parameter had before it was
	// lowered to an opaque pointer; used for typed-array overloads.
	PreviousType string `yaml:"previous_type,omitempty"`
	Flow         Flow   `yaml:"flow,omitempty"`
	Array        bool   `yaml:"array,omitempty"`
}

// Constant is a named literal, rendered verbatim.
type Constant struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// EntryPoint returns the native symbol name: the function name with any
// trailing disambiguation markers removed.
func (f *Function) EntryPoint() string {
	return strings.TrimRight(f.Name, "_")
}

// Wrapper returns the wrapper classification, treating an empty value as none.
func (f *Function) Wrapper() WrapperType {
	if f.WrapperType == "" {
		return WrapperNone
	}
	return f.WrapperType
}

// ReturnsVoid reports whether the function has no return value.
func (f *Function) ReturnsVoid() bool {
	return f.ReturnType == "" || f.ReturnType == "void"
}

// Return returns the rendered return type.
func (f *Function) Return() string {
	if f.ReturnType == "" {
		return "void"
	}
	return f.ReturnType
}

// HasRole reports whether any parameter has the given role.
func (f *Function) HasRole(role ParamRole) bool {
	for _, p := range f.Parameters {
		if p.Role() == role {
			return true
		}
	}
	return false
}

// ParamList renders the parenthesised parameter list, e.g. "(GLenum mode, GLint first)".
func (f *Function) ParamList() string {
	return RenderParams(f.Parameters, (*Parameter).String)
}

// RenderParams renders a parenthesised list using render for each parameter.
func RenderParams(params []*Parameter, render func(*Parameter) string) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = render(p)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// String renders the signature "<ret> <Name>(<params>)".
func (f *Function) String() string {
	return f.Return() + " " + f.Name + f.ParamList()
}

// CallString renders a call of the raw binding, e.g. "glGetString_(name)".
func (f *Function) CallString() string {
	return f.Name + RenderParams(f.Parameters, (*Parameter).Argument)
}

// Role derives the semantic role from the parameter's structured fields.
func (p *Parameter) Role() ParamRole {
	if p.Type != OpaquePointerType {
		return RolePlain
	}
	switch {
	case p.Flow == FlowOut:
		return RoleOutputPointer
	case p.Array:
		return RoleOpaquePointerArray
	default:
		return RoleOpaquePointer
	}
}

// IsOut reports whether the parameter is passed by out reference.
func (p *Parameter) IsOut() bool {
	return p.Flow == FlowOut
}

// TypeString renders the declared type including out and array markers.
func (p *Parameter) TypeString() string {
	return p.typeString(p.Type)
}

func (p *Parameter) typeString(t string) string {
	var b strings.Builder
	if p.IsOut() {
		b.WriteString("out ")
	}
	b.WriteString(t)
	if p.Array {
		b.WriteString("[]")
	}
	return b.String()
}

// String renders "[out ]<Type>[[]] <Name>".
func (p *Parameter) String() string {
	return p.TypeString() + " " + p.Name
}

// WithType renders the parameter as String does, but with t in place of its type.
func (p *Parameter) WithType(t string) string {
	return p.typeString(t) + " " + p.Name
}

// Argument renders the parameter as a call argument.
func (p *Parameter) Argument() string {
	if p.IsOut() {
		return "out " + p.Name
	}
	return p.Name
}

// String renders "<Name> = <Value>".
func (c *Constant) String() string {
	return c.Name + " = " + c.Value
}

// FunctionByName looks up a function descriptor by name.
func (s *DescriptorSet) FunctionByName(name string) *Function {
	for _, f := range s.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}
