package gen

import (
	"fmt"
	"strings"

	"github.com/gamedevtech/tao/model"
)

// OverloadKind names one convenience overload emitted over a raw binding.
type OverloadKind string

const (
	OverloadString     OverloadKind = "string"
	OverloadNarrowing  OverloadKind = "narrowing"
	OverloadObject     OverloadKind = "object"
	OverloadPointer    OverloadKind = "pointer"
	OverloadTypedArray OverloadKind = "typed_array"
)

// Reasons a wrapper-classified function gets no overloads. These parameter
// shapes are not wrapped automatically.
const (
	SkipExtension          = "extension"
	SkipOutputPointer      = "output_pointer"
	SkipOpaquePointerArray = "opaque_pointer_array"
)

// NarrowingRule widens a parameter type in a hand-tuned overload and narrows
// the argument back with an unchecked cast before calling the raw binding.
type NarrowingRule struct {
	From string
	To   string
}

// NarrowingRules maps entry points to their narrowing overload.
var NarrowingRules = map[string]NarrowingRule{
	"glLineStipple": {From: "GLushort", To: "GLint"},
}

// WrapperPlan is the set of overloads decided for one function.
type WrapperPlan struct {
	SkipReason string
	Overloads  []OverloadKind
}

func narrowingRule(f *model.Function) (NarrowingRule, bool) {
	rule, ok := NarrowingRules[f.EntryPoint()]
	return rule, ok
}

// IsWrapperCandidate reports whether f takes part in wrapper emission.
func IsWrapperCandidate(f *model.Function) bool {
	if f.Wrapper() != model.WrapperNone {
		return true
	}
	_, ok := narrowingRule(f)
	return ok
}

// PlanWrapper decides which overloads f gets.
func PlanWrapper(f *model.Function) WrapperPlan {
	if !IsWrapperCandidate(f) {
		return WrapperPlan{}
	}

	switch {
	case f.Extension:
		return WrapperPlan{SkipReason: SkipExtension}
	case f.HasRole(model.RoleOutputPointer):
		return WrapperPlan{SkipReason: SkipOutputPointer}
	case f.HasRole(model.RoleOpaquePointerArray):
		return WrapperPlan{SkipReason: SkipOpaquePointerArray}
	}

	var plan WrapperPlan
	_, narrowing := narrowingRule(f)
	switch w := f.Wrapper(); {
	case w == model.WrapperReturnsString:
		plan.Overloads = append(plan.Overloads, OverloadString)
	case narrowing:
		plan.Overloads = append(plan.Overloads, OverloadNarrowing)
	case w == model.WrapperVoidPointerIn || w == model.WrapperVoidPointerOut || w == model.WrapperArrayIn:
		plan.Overloads = append(plan.Overloads, OverloadObject, OverloadPointer)
	}
	if f.Wrapper() == model.WrapperArrayIn {
		plan.Overloads = append(plan.Overloads, OverloadTypedArray)
	}
	return plan
}

func writeWrappers(b *strings.Builder, functions []*model.Function) {
	b.WriteString("        #region Wrappers\n\n")
	for _, f := range functions {
		plan := PlanWrapper(f)
		if len(plan.Overloads) == 0 {
			continue
		}
		fmt.Fprintf(b, "        #region %s\n", f.EntryPoint())
		for _, kind := range plan.Overloads {
			writeOverload(b, f, kind)
		}
		b.WriteString("        #endregion\n\n")
	}
	b.WriteString("        #endregion\n")
}

func writeOverload(b *strings.Builder, f *model.Function, kind OverloadKind) {
	switch kind {
	case OverloadString:
		fmt.Fprintf(b, "        public static string %s%s\n", f.EntryPoint(), f.ParamList())
		b.WriteString("        {\n")
		fmt.Fprintf(b, "            return Marshal.PtrToStringAnsi(%s);\n", f.CallString())
		b.WriteString("        }\n")

	case OverloadNarrowing:
		rule, _ := narrowingRule(f)
		params := model.RenderParams(f.Parameters, func(p *model.Parameter) string {
			if p.Type == rule.From {
				return p.WithType(rule.To)
			}
			return p.String()
		})
		args := model.RenderParams(f.Parameters, func(p *model.Parameter) string {
			if p.Type == rule.From {
				return fmt.Sprintf("unchecked((%s)%s)", rule.From, p.Name)
			}
			return p.Argument()
		})
		fmt.Fprintf(b, "        public static %s %s%s\n", f.Return(), f.EntryPoint(), params)
		b.WriteString("        {\n")
		fmt.Fprintf(b, "            %s%s%s;\n", returnPrefix(f), f.Name, args)
		b.WriteString("        }\n")

	case OverloadObject:
		params := model.RenderParams(f.Parameters, func(p *model.Parameter) string {
			if p.Role() == model.RoleOpaquePointer {
				return p.WithType("object")
			}
			return p.String()
		})
		writePinnedOverload(b, f, params)

	case OverloadPointer:
		fmt.Fprintf(b, "        public static %s %s%s\n", f.Return(), f.EntryPoint(), f.ParamList())
		b.WriteString("        {\n")
		fmt.Fprintf(b, "            %s%s;\n", returnPrefix(f), f.CallString())
		b.WriteString("        }\n")

	case OverloadTypedArray:
		params := model.RenderParams(f.Parameters, func(p *model.Parameter) string {
			if p.Role() == model.RoleOpaquePointer {
				return p.WithType(p.PreviousType + "[]")
			}
			return p.String()
		})
		writePinnedOverload(b, f, params)
	}
}

// writePinnedOverload emits an overload that pins every opaque pointer
// argument, calls the raw binding with the pinned addresses and frees every
// handle in a finally block.
func writePinnedOverload(b *strings.Builder, f *model.Function, params string) {
	fmt.Fprintf(b, "        public static %s %s%s\n", f.Return(), f.EntryPoint(), params)
	b.WriteString("        {\n")

	pinned := 0
	args := model.RenderParams(f.Parameters, func(p *model.Parameter) string {
		if p.Role() != model.RoleOpaquePointer {
			return p.Argument()
		}
		fmt.Fprintf(b, "            GCHandle h%d = GCHandle.Alloc(%s, GCHandleType.Pinned);\n", pinned, p.Name)
		arg := fmt.Sprintf("h%d.AddrOfPinnedObject()", pinned)
		pinned++
		return arg
	})

	b.WriteString("            try\n")
	b.WriteString("            {\n")
	fmt.Fprintf(b, "                %s%s%s;\n", returnPrefix(f), f.Name, args)
	b.WriteString("            }\n")
	b.WriteString("            finally\n")
	b.WriteString("            {\n")
	for i := pinned - 1; i >= 0; i-- {
		fmt.Fprintf(b, "                h%d.Free();\n", i)
	}
	b.WriteString("            }\n")
	b.WriteString("        }\n")
}

func returnPrefix(f *model.Function) string {
	if f.ReturnsVoid() {
		return ""
	}
	return "return "
}
