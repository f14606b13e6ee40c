package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamedevtech/tao/gen"
	"github.com/gamedevtech/tao/model"
)

func names(functions []*model.Function) []string {
	out := make([]string, len(functions))
	for i, f := range functions {
		out[i] = f.Name
	}
	return out
}

func TestSortByVersion(t *testing.T) {
	functions := []*model.Function{
		{Name: "ext_", Extension: true},
		{Name: "b20_", Version: "2.0"},
		{Name: "a10_", Version: "1.0"},
		{Name: "c15_", Version: "1.5"},
		{Name: "d10_", Version: "1.0"},
		{Name: "junk_", Version: "x.y"},
		{Name: "e12_", Version: "1.2"},
	}
	sortByVersion(functions)
	assert.Equal(t, []string{"a10_", "d10_", "e12_", "c15_", "b20_", "ext_", "junk_"}, names(functions))
}

func TestFunctionTierRows(t *testing.T) {
	set, _, err := loadAndValidate(fixture("full.yaml"), false)
	require.NoError(t, err)

	rows := functionTierRows(set.Functions, gen.PlatformTiers)
	require.Len(t, rows, len(set.Functions))

	byName := make(map[string][]string, len(rows))
	for _, r := range rows {
		byName[r[0]] = r
	}

	assert.Equal(t, []string{"glBindTexture", "1.1", "eager", "eager", "eager", "-"}, byName["glBindTexture"])
	assert.Equal(t, []string{"glDrawRangeElements", "1.2", "lazy", "eager", "eager", "object,pointer"}, byName["glDrawRangeElements"])
	assert.Equal(t, []string{"glCreateProgram", "2.0", "lazy", "lazy", "eager", "-"}, byName["glCreateProgram"])
	assert.Equal(t, []string{"glGetString", "1.0", "eager", "eager", "eager", "string"}, byName["glGetString"])
	assert.Equal(t, []string{"glLineStipple", "1.0", "eager", "eager", "eager", "narrowing"}, byName["glLineStipple"])
	assert.Equal(t, []string{"glBufferDataARB", "extension", "lazy", "lazy", "lazy", "skipped (extension)"}, byName["glBufferDataARB"])
	assert.Equal(t, "skipped (output_pointer)", byName["glGetBufferPointerv"][5])
	assert.Equal(t, "skipped (opaque_pointer_array)", byName["glShaderSource"][5])

	// Extensions sort last.
	assert.Equal(t, "extension", rows[len(rows)-1][1])
	assert.Equal(t, "extension", rows[len(rows)-2][1])
	assert.Equal(t, "1.0", rows[0][1])
}

func TestSelectTiers(t *testing.T) {
	all, err := selectTiers("")
	require.NoError(t, err)
	assert.Len(t, all, len(gen.PlatformTiers))

	only, err := selectTiers("modern_windows")
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, "Windows Vista Core", only[0].Region)

	_, err = selectTiers("haiku")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown tier "haiku"`)
}

func TestSelectFunctions(t *testing.T) {
	set, _, err := loadAndValidate(fixture("full.yaml"), false)
	require.NoError(t, err)

	all, err := selectFunctions(set, "")
	require.NoError(t, err)
	assert.Len(t, all, len(set.Functions))

	one, err := selectFunctions(set, "glCreateProgram_")
	require.NoError(t, err)
	assert.Equal(t, []string{"glCreateProgram_"}, names(one))

	_, err = selectFunctions(set, "glCreateProgram")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no function "glCreateProgram"`)
}

func TestFunctionTierRowsSingleTier(t *testing.T) {
	set, _, err := loadAndValidate(fixture("full.yaml"), false)
	require.NoError(t, err)
	tiers, err := selectTiers("legacy_windows")
	require.NoError(t, err)
	functions, err := selectFunctions(set, "glDrawRangeElements_")
	require.NoError(t, err)

	rows := functionTierRows(functions, tiers)
	assert.Equal(t, [][]string{{"glDrawRangeElements", "1.2", "lazy", "object,pointer"}}, rows)
}

func TestTierSummaryRows(t *testing.T) {
	rows := tierSummaryRows(gen.PlatformTiers)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"legacy_windows", "Older Windows Core", "1.0 1.1"}, rows[0])
	assert.Equal(t, []string{"x11", "X11 Core", "1.0 1.1 1.2 1.3 1.4 1.5 2.0"}, rows[2])
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	renderTable(&buf, []string{"TIER", "VERSIONS"}, [][]string{{"x11", "2.0"}})
	assert.Contains(t, buf.String(), "TIER")
	assert.Contains(t, buf.String(), "x11")
}
