package gen

import (
	"github.com/gamedevtech/tao/model"
)

// PlatformTier is a group of API versions whose entry points the platform's
// system library exports directly, so they can be bound by DllImport at
// startup instead of looked up by name.
type PlatformTier struct {
	Name      string   // stable identifier
	Region    string   // region label in the generated static constructor
	Condition string   // C# predicate selecting the platform at run time
	Versions  []string // versions exported by the platform library
}

// PlatformTiers lists the tiers in the order their branches are tested.
// The first matching predicate wins.
var PlatformTiers = []PlatformTier{
	{
		Name:      "legacy_windows",
		Region:    "Older Windows Core",
		Condition: "Environment.OSVersion.Platform == PlatformID.Win32NT && Environment.OSVersion.Version.Major < 6 || Environment.OSVersion.Platform == PlatformID.Win32Windows",
		Versions:  []string{"1.0", "1.1"},
	},
	{
		Name:      "modern_windows",
		Region:    "Windows Vista Core",
		Condition: "Environment.OSVersion.Platform == PlatformID.Win32NT && Environment.OSVersion.Version.Major >= 6",
		Versions:  []string{"1.0", "1.1", "1.2", "1.3", "1.4"},
	},
	{
		Name:      "x11",
		Region:    "X11 Core",
		Condition: "Environment.OSVersion.Platform == PlatformID.Unix",
		Versions:  []string{"1.0", "1.1", "1.2", "1.3", "1.4", "1.5", "2.0"},
	},
}

// Allows reports whether version is in the tier's version set.
func (t *PlatformTier) Allows(version string) bool {
	for _, v := range t.Versions {
		if v == version {
			return true
		}
	}
	return false
}

// Imports reports whether the tier binds f eagerly. Extension functions are
// never imported.
func (t *PlatformTier) Imports(f *model.Function) bool {
	return !f.Extension && t.Allows(f.Version)
}

// TierByName looks up a tier by identifier.
func TierByName(name string) *PlatformTier {
	for i := range PlatformTiers {
		if PlatformTiers[i].Name == name {
			return &PlatformTiers[i]
		}
	}
	return nil
}

// EagerTiers returns the names of the tiers that import f, in branch order.
func EagerTiers(f *model.Function) []string {
	var names []string
	for i := range PlatformTiers {
		if PlatformTiers[i].Imports(f) {
			names = append(names, PlatformTiers[i].Name)
		}
	}
	return names
}
