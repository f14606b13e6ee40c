package gen

import (
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

func init() {
	Register("manifest", func() Generator { return &ManifestGenerator{} })
}

// ManifestGenerator produces a YAML summary of the binding table: how each
// entry point is resolved on each platform tier and which wrappers it got.
type ManifestGenerator struct{}

func (g *ManifestGenerator) Name() string { return "manifest" }

// Manifest is the document written by ManifestGenerator.
type Manifest struct {
	Namespace     string          `yaml:"namespace"`
	Class         string          `yaml:"class"`
	NativeLibrary string          `yaml:"native_library"`
	Tiers         []ManifestTier  `yaml:"tiers"`
	Functions     []ManifestEntry `yaml:"functions"`
	Types         []ManifestType  `yaml:"types"`
	Constants     int             `yaml:"constants"`
}

// ManifestType records how one type name used by the descriptors was
// classified. Unknown types are listed too; they reach the module verbatim.
type ManifestType struct {
	Name       string   `yaml:"name"`
	Kind       string   `yaml:"kind"`
	SystemType string   `yaml:"system_type,omitempty"`
	UsedBy     []string `yaml:"used_by"`
}

// ManifestTier records one platform tier's version set.
type ManifestTier struct {
	Name     string   `yaml:"name"`
	Versions []string `yaml:"versions"`
}

// ManifestEntry describes how one function is bound.
type ManifestEntry struct {
	Name           string            `yaml:"name"`
	EntryPoint     string            `yaml:"entry_point"`
	Version        string            `yaml:"version,omitempty"`
	Extension      bool              `yaml:"extension,omitempty"`
	Imported       bool              `yaml:"imported"`
	Resolution     map[string]string `yaml:"resolution"`
	Wrappers       []OverloadKind    `yaml:"wrappers,omitempty"`
	WrapperSkipped string            `yaml:"wrapper_skipped,omitempty"`
}

// Resolution values per tier.
const (
	ResolutionEager = "eager"
	ResolutionLazy  = "lazy"
)

// BuildManifest computes the manifest for ctx without encoding it.
func BuildManifest(ctx *Context) *Manifest {
	m := &Manifest{
		Namespace:     ctx.Settings.Namespace,
		Class:         ctx.Settings.Class,
		NativeLibrary: ctx.Settings.NativeLibrary,
		Constants:     len(ctx.Descriptors.Constants),
	}
	for _, tier := range PlatformTiers {
		m.Tiers = append(m.Tiers, ManifestTier{Name: tier.Name, Versions: tier.Versions})
	}

	for _, f := range ctx.Descriptors.Functions {
		entry := ManifestEntry{
			Name:       f.Name,
			EntryPoint: f.EntryPoint(),
			Version:    f.Version,
			Extension:  f.Extension,
			Imported:   !f.Extension,
			Resolution: make(map[string]string, len(PlatformTiers)),
		}
		for i := range PlatformTiers {
			res := ResolutionLazy
			if PlatformTiers[i].Imports(f) {
				res = ResolutionEager
			}
			entry.Resolution[PlatformTiers[i].Name] = res
		}
		plan := PlanWrapper(f)
		entry.Wrappers = plan.Overloads
		entry.WrapperSkipped = plan.SkipReason
		m.Functions = append(m.Functions, entry)
	}

	for _, name := range ctx.ResolvedTypes.Names() {
		info := ctx.ResolvedTypes[name]
		m.Types = append(m.Types, ManifestType{
			Name:       name,
			Kind:       info.Kind.String(),
			SystemType: info.SystemType,
			UsedBy:     info.UsedBy,
		})
	}
	return m
}

func (g *ManifestGenerator) Generate(ctx *Context) ([]*OutputFile, error) {
	data, err := yaml.Marshal(BuildManifest(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "encoding manifest")
	}
	return []*OutputFile{
		{Path: ctx.Settings.Class + ".bindings.yaml", Content: data},
	}, nil
}
