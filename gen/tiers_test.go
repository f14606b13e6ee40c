package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamedevtech/tao/model"
)

func TestPlatformTiers_Order(t *testing.T) {
	require.Len(t, PlatformTiers, 3)
	assert.Equal(t, "legacy_windows", PlatformTiers[0].Name)
	assert.Equal(t, "modern_windows", PlatformTiers[1].Name)
	assert.Equal(t, "x11", PlatformTiers[2].Name)
}

func TestPlatformTier_Allows(t *testing.T) {
	legacy := TierByName("legacy_windows")
	require.NotNil(t, legacy)
	assert.True(t, legacy.Allows("1.0"))
	assert.True(t, legacy.Allows("1.1"))
	assert.False(t, legacy.Allows("1.2"))

	modern := TierByName("modern_windows")
	require.NotNil(t, modern)
	assert.True(t, modern.Allows("1.4"))
	assert.False(t, modern.Allows("1.5"))

	x11 := TierByName("x11")
	require.NotNil(t, x11)
	assert.True(t, x11.Allows("2.0"))
	assert.False(t, x11.Allows("2.1"))

	assert.Nil(t, TierByName("haiku"))
}

func TestPlatformTier_ImportsNeverExtensions(t *testing.T) {
	ext := &model.Function{Name: "glBindBufferARB_", Extension: true, Version: "1.0"}
	for i := range PlatformTiers {
		assert.False(t, PlatformTiers[i].Imports(ext), PlatformTiers[i].Name)
	}
	assert.Empty(t, EagerTiers(ext))
}

func TestEagerTiers(t *testing.T) {
	assert.Equal(t, []string{"legacy_windows", "modern_windows", "x11"}, EagerTiers(&model.Function{Version: "1.1"}))
	assert.Equal(t, []string{"modern_windows", "x11"}, EagerTiers(&model.Function{Version: "1.3"}))
	assert.Equal(t, []string{"x11"}, EagerTiers(&model.Function{Version: "2.0"}))
	assert.Empty(t, EagerTiers(&model.Function{Version: "3.0"}))
	// versions match as text
	assert.Empty(t, EagerTiers(&model.Function{Version: "1"}))
}
