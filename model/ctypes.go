package model

// TypeAlias maps a platform-neutral C type name to a System numeric type.
type TypeAlias struct {
	Name       string
	SystemType string
}

// TypeAliases is the fixed alias table emitted at the top of every binding
// module. Order is the emission order.
var TypeAliases = []TypeAlias{
	{"GLenum", "UInt32"},
	{"GLboolean", "Boolean"},
	{"GLbitfield", "UInt32"},
	{"GLvoid", "Object"},
	{"GLchar", "Char"},
	{"GLbyte", "SByte"},
	{"GLshort", "Int16"},
	{"GLint", "Int32"},
	{"GLubyte", "Byte"},
	{"GLushort", "UInt16"},
	{"GLuint", "UInt32"},
	{"GLsizei", "Int32"},
	{"GLfloat", "Single"},
	{"GLclampf", "Single"},
	{"GLdouble", "Double"},
	{"GLclampd", "Double"},
	{"GLintptr", "IntPtr"},
	{"GLsizeiptr", "IntPtr"},
	{"GLintptrARB", "IntPtr"},
	{"GLsizeiptrARB", "IntPtr"},
	{"GLcharARB", "Char"},
	{"GLhandleARB", "UInt32"},
	{"GLhalfARB", "UInt16"},
	{"GLhalfNV", "UInt16"},
	{"GLint64EXT", "Int64"},
	{"GLuint64EXT", "UInt64"},
}

// builtinTypes are host types that need no alias.
var builtinTypes = map[string]bool{
	"void": true, "object": true, "string": true, "bool": true,
	"byte": true, "sbyte": true, "short": true, "ushort": true,
	"int": true, "uint": true, "long": true, "ulong": true,
	"float": true, "double": true, "char": true,
	OpaquePointerType: true,
}

// SystemTypeOf returns the System type an alias maps to.
func SystemTypeOf(name string) (string, bool) {
	for _, a := range TypeAliases {
		if a.Name == name {
			return a.SystemType, true
		}
	}
	return "", false
}

// IsBuiltin returns true if t is a host type usable without an alias.
func IsBuiltin(t string) bool {
	return builtinTypes[t]
}
