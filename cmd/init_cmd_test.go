package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamedevtech/tao/config"
	"github.com/gamedevtech/tao/loader"
	"github.com/gamedevtech/tao/resolver"
	"github.com/gamedevtech/tao/validate"
)

func TestStarterDescriptorsAreValid(t *testing.T) {
	require.NoError(t, loader.ValidateSchema([]byte(starterDescriptors)))

	set, err := loader.LoadDescriptorsNoValidate([]byte(starterDescriptors))
	require.NoError(t, err)
	result := validate.Validate(set, resolver.ResolveTypes(set.Functions))
	assert.True(t, result.IsValid(), result.Error())
	assert.Len(t, set.Functions, 4)
	assert.Len(t, set.Constants, 3)
}

func TestStarterConfigLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(starterConfig), 0644))

	v, err := config.NewViper(path)
	require.NoError(t, err)
	cfg, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, "Gl", cfg.OutputClass)
	assert.Equal(t, "opengl32", cfg.NativeLibrary)
}

func TestWriteStarterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gl.yaml")

	require.NoError(t, writeStarterFile(path, "first", false))

	err := writeStarterFile(path, "second", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, writeStarterFile(path, "second", true))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}
