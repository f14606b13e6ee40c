package gen

import (
	"fmt"
	"strings"

	"github.com/gamedevtech/tao/model"
)

func init() {
	Register("csharp", func() Generator { return &CSharpGenerator{} })
}

// CSharpGenerator produces the binding module: one static partial class
// holding delegates, imports, lazily resolved fields and wrappers.
type CSharpGenerator struct{}

func (g *CSharpGenerator) Name() string { return "csharp" }

func (g *CSharpGenerator) Generate(ctx *Context) ([]*OutputFile, error) {
	var b strings.Builder
	EmitModule(&b, ctx.Descriptors, ctx.Settings)

	return []*OutputFile{
		{Path: ctx.Settings.Class + ".cs", Content: []byte(b.String())},
	}, nil
}

// EmitModule writes the complete binding module. Blocks are emitted in a
// fixed order: types, constants, signatures, imports, fields, static
// constructor, resolver, wrappers. Input is formatted as given; nothing is
// validated here.
func EmitModule(b *strings.Builder, set *model.DescriptorSet, s Settings) {
	b.WriteString("// Generated by glbindgen. Do not edit.\n\n")
	b.WriteString("using System;\n")
	b.WriteString("using System.Runtime.InteropServices;\n")
	b.WriteString("\n")
	fmt.Fprintf(b, "namespace %s\n", s.Namespace)
	b.WriteString("{\n")

	writeTypes(b)

	fmt.Fprintf(b, "    public static partial class %s\n", s.Class)
	b.WriteString("    {\n")

	writeConstants(b, set.Constants)
	writeFunctionSignatures(b, set.Functions)
	writeImports(b, set.Functions, s.NativeLibrary)
	writeFunctions(b, set.Functions)
	writeConstructor(b, set.Functions, s.Class)
	writeGetAddress(b, s.ProcAddress)
	writeWrappers(b, set.Functions)

	b.WriteString("    }\n")
	b.WriteString("}\n")
}

func writeTypes(b *strings.Builder) {
	b.WriteString("    #region Types\n")
	for _, a := range model.TypeAliases {
		fmt.Fprintf(b, "    using %s = System.%s;\n", a.Name, a.SystemType)
	}
	b.WriteString("    #endregion\n\n")
}

func writeConstants(b *strings.Builder, constants []*model.Constant) {
	b.WriteString("        #region Constants\n")
	for _, c := range constants {
		fmt.Fprintf(b, "        public const GLuint %s;\n", c.String())
	}
	b.WriteString("        #endregion\n\n")
}

func writeFunctionSignatures(b *strings.Builder, functions []*model.Function) {
	b.WriteString("        #region Function signatures\n\n")
	b.WriteString("        public static class Delegates\n")
	b.WriteString("        {\n")
	for _, f := range functions {
		fmt.Fprintf(b, "            public delegate %s;\n", f.String())
	}
	b.WriteString("        }\n")
	b.WriteString("        #endregion\n\n")
}

// writeImports declares a DllImport for every core function. Extensions are
// resolved only through GetAddress.
func writeImports(b *strings.Builder, functions []*model.Function, nativeLibrary string) {
	b.WriteString("        #region Imports\n\n")
	b.WriteString("        internal class Imports\n")
	b.WriteString("        {\n")
	for _, f := range functions {
		if f.Extension {
			continue
		}
		fmt.Fprintf(b, "            [DllImport(\"%s\", EntryPoint = \"%s\")]\n", nativeLibrary, f.EntryPoint())
		fmt.Fprintf(b, "            public static extern %s;\n", f.String())
	}
	b.WriteString("        }\n")
	b.WriteString("        #endregion\n\n")
}

// writeFunctions declares one field per function, initialised by name lookup.
// A missing symbol leaves the field null.
func writeFunctions(b *strings.Builder, functions []*model.Function) {
	b.WriteString("        #region Function initialisation\n\n")
	for _, f := range functions {
		fmt.Fprintf(b, "        public static Delegates.%[1]s %[1]s = (Delegates.%[1]s)GetAddress(\"%[2]s\", typeof(Delegates.%[1]s));\n",
			f.Name, f.EntryPoint())
	}
	b.WriteString("        #endregion\n\n")
}

// writeConstructor emits one exclusive branch per platform tier, rebinding
// the fields of the functions that tier's system library exports.
func writeConstructor(b *strings.Builder, functions []*model.Function, class string) {
	b.WriteString("        #region static Constructor\n\n")
	fmt.Fprintf(b, "        static %s()\n", class)
	b.WriteString("        {\n")
	for i := range PlatformTiers {
		tier := &PlatformTiers[i]
		keyword := "if"
		if i > 0 {
			keyword = "else if"
		}
		fmt.Fprintf(b, "            %s (%s)\n", keyword, tier.Condition)
		b.WriteString("            {\n")
		fmt.Fprintf(b, "                #region %s\n", tier.Region)
		for _, f := range functions {
			if tier.Imports(f) {
				fmt.Fprintf(b, "                %[1]s.%[2]s = new %[1]s.Delegates.%[2]s(Imports.%[2]s);\n", class, f.Name)
			}
		}
		b.WriteString("                #endregion\n")
		b.WriteString("            }\n")
	}
	b.WriteString("        }\n")
	b.WriteString("        #endregion\n\n")
}

func writeGetAddress(b *strings.Builder, procAddress string) {
	b.WriteString("        #region GetAddress\n\n")
	b.WriteString("        public static Delegate GetAddress(string s, Type function_signature)\n")
	b.WriteString("        {\n")
	fmt.Fprintf(b, "            IntPtr address = %s(s);\n", procAddress)
	b.WriteString("            if (address == IntPtr.Zero)\n")
	b.WriteString("                return null;\n")
	b.WriteString("            else\n")
	b.WriteString("                return Marshal.GetDelegateForFunctionPointer(address, function_signature);\n")
	b.WriteString("        }\n")
	b.WriteString("        #endregion\n\n")
}
