package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamedevtech/tao/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	v := viper.New()
	config.SetDefaults(v)
	cfg, err := config.Load(v)
	require.NoError(t, err)
	cfg.OutputPath = t.TempDir()
	return cfg
}

func fixture(name string) string {
	return filepath.Join("..", "testdata", name)
}

func TestGenerateOnceWritesModuleAndManifest(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer

	written, err := generateOnce(fixture("full.yaml"), cfg, generateOptions{}, &out)
	require.NoError(t, err)
	require.Len(t, written, 2)

	module, err := os.ReadFile(filepath.Join(cfg.OutputPath, "Gl.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(module), "namespace Tao.OpenGl")
	assert.Contains(t, string(module), "public static partial class Gl")

	manifest, err := os.ReadFile(filepath.Join(cfg.OutputPath, "Gl.bindings.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), "types:")
	assert.Contains(t, string(manifest), "name: GLushort")
	assert.Contains(t, out.String(), "Generated 2 files in "+cfg.OutputPath)
}

func TestGenerateOnceHonoursSettings(t *testing.T) {
	cfg := testConfig(t)
	cfg.OutputNamespace = "My.Gl"
	cfg.OutputClass = "GL"
	cfg.NativeLibrary = "libGL.so.1"

	_, err := generateOnce(fixture("minimal.yaml"), cfg, generateOptions{NoManifest: true}, io.Discard)
	require.NoError(t, err)

	module, err := os.ReadFile(filepath.Join(cfg.OutputPath, "GL.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(module), "namespace My.Gl")
	assert.Contains(t, string(module), "static GL()")
	assert.Contains(t, string(module), `[DllImport("libGL.so.1", EntryPoint = "glFlush")]`)

	_, err = os.Stat(filepath.Join(cfg.OutputPath, "GL.bindings.yaml"))
	assert.True(t, os.IsNotExist(err), "manifest must not be written with NoManifest")
}

func TestGenerateOnceDryRun(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer

	written, err := generateOnce(fixture("full.yaml"), cfg, generateOptions{DryRun: true}, &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"Gl.cs", "Gl.bindings.yaml"}, written)
	assert.Contains(t, out.String(), "Would write: Gl.cs")
	assert.Contains(t, out.String(), "Dry run: 2 files would be generated.")

	entries, err := os.ReadDir(cfg.OutputPath)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

const unknownTypeDescriptors = `functions:
  - name: glFoo_
    return: void
    version: "1.0"
    parameters:
      - { name: x, type: GLmystery }
`

func TestGenerateOnceValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(unknownTypeDescriptors), 0644))

	cfg := testConfig(t)
	_, err := generateOnce(path, cfg, generateOptions{}, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `type "GLmystery" has no alias`)

	// The emitter formats whatever it is given.
	_, err = generateOnce(path, cfg, generateOptions{NoValidate: true, NoManifest: true}, io.Discard)
	require.NoError(t, err)
	module, err := os.ReadFile(filepath.Join(cfg.OutputPath, "Gl.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(module), "public delegate void glFoo_(GLmystery x);")
}

func TestGenerateOnceSchemaError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("functions:\n  - name: glFoo_\n    return: void\n    colour: red\n"), 0644))

	_, err := generateOnce(path, testConfig(t), generateOptions{NoValidate: true}, io.Discard)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "schema validation"), err.Error())
}

func TestFlagKeysCoverConfig(t *testing.T) {
	for flag, key := range flagKeys {
		assert.NotNil(t, generateCmd.Flags().Lookup(flag), "flag --%s", flag)
		v := viper.New()
		config.SetDefaults(v)
		assert.True(t, v.IsSet(key), "config key %s", key)
	}
}

func TestGenerateOnceRejectsDecoratedTypesWithoutValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	doc := "functions:\n  - name: glFoo_\n    return: void\n    version: \"1.0\"\n    wrapper: array_in\n    parameters:\n      - { name: p, type: \"IntPtr[]\" }\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg := testConfig(t)
	_, err := generateOnce(path, cfg, generateOptions{NoValidate: true}, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation")

	entries, err := os.ReadDir(cfg.OutputPath)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
