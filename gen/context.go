package gen

import (
	"github.com/gamedevtech/tao/model"
	"github.com/gamedevtech/tao/resolver"
)

// Settings are the externally supplied names baked into the generated module.
type Settings struct {
	Namespace     string // e.g. "Tao.OpenGl"
	Class         string // e.g. "Gl"; also the output file stem
	NativeLibrary string // DllImport module name, e.g. "opengl32"
	ProcAddress   string // fully qualified symbol lookup primitive called by GetAddress
}

// DefaultSettings returns the settings of the stock Tao OpenGL binding.
func DefaultSettings() Settings {
	return Settings{
		Namespace:     "Tao.OpenGl",
		Class:         "Gl",
		NativeLibrary: "opengl32",
		ProcAddress:   "Tao.OpenGl.GlExtensionLoader.GetProcAddress",
	}
}

// Context holds everything a generator needs to produce output.
type Context struct {
	Descriptors   *model.DescriptorSet
	ResolvedTypes resolver.ResolvedTypes
	Settings      Settings
	OutputDir     string
}

// NewContext creates a new generation context. types may be nil, in which
// case the descriptors' types are resolved here.
func NewContext(set *model.DescriptorSet, types resolver.ResolvedTypes, settings Settings, outputDir string) *Context {
	if types == nil {
		types = resolver.ResolveTypes(set.Functions)
	}
	return &Context{
		Descriptors:   set,
		ResolvedTypes: types,
		Settings:      settings,
		OutputDir:     outputDir,
	}
}
