package gen

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gamedevtech/tao/loader"
	"github.com/gamedevtech/tao/model"
)

// loadTestContext loads a descriptor fixture from testdata with default settings.
func loadTestContext(t *testing.T, name string) *Context {
	t.Helper()
	set, err := loader.LoadDescriptors(filepath.Join("..", "testdata", name))
	require.NoError(t, err)
	return NewContext(set, nil, DefaultSettings(), t.TempDir())
}

// emit renders the module for an in-memory descriptor set.
func emit(set *model.DescriptorSet) string {
	var b strings.Builder
	EmitModule(&b, set, DefaultSettings())
	return b.String()
}

// generateModule runs the csharp generator and returns the module text.
func generateModule(t *testing.T, ctx *Context) string {
	t.Helper()
	files, err := (&CSharpGenerator{}).Generate(ctx)
	require.NoError(t, err)
	require.Len(t, files, 1)
	return string(files[0].Content)
}

// section returns the text between "#region <name>" and the next "#endregion".
func section(t *testing.T, content, name string) string {
	t.Helper()
	marker := "#region " + name + "\n"
	start := strings.Index(content, marker)
	require.GreaterOrEqual(t, start, 0, "missing region %q", name)
	rest := content[start+len(marker):]
	end := strings.Index(rest, "#endregion")
	require.GreaterOrEqual(t, end, 0, "unterminated region %q", name)
	return rest[:end]
}

func rebindLine(class, name string) string {
	return class + "." + name + " = new " + class + ".Delegates." + name + "(Imports." + name + ");"
}

// between returns the text from the first occurrence of start up to end.
func between(t *testing.T, content, start, end string) string {
	t.Helper()
	i := strings.Index(content, start)
	require.GreaterOrEqual(t, i, 0, "missing %q", start)
	j := strings.Index(content[i:], end)
	require.GreaterOrEqual(t, j, 0, "missing %q after %q", end, start)
	return content[i : i+j]
}

func constructor(t *testing.T, content string) string {
	t.Helper()
	return between(t, content, "#region static Constructor", "#region GetAddress")
}
