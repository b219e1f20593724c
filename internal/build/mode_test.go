package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBuildMode(t *testing.T) {
	tests := map[string]BuildMode{
		"":                 ModeIncrementalBuild,
		"IncrementalBuild": ModeIncrementalBuild,
		"force":            ModeForceRebuild,
		" DryRun ":         ModeDryRunBuild,
		"simulatebuild":    ModeSimulateBuild,
	}
	for raw, want := range tests {
		got, err := ParseBuildMode(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseBuildMode("turbo")
	require.Error(t, err)
}

func TestBuildMode_VerifiesAssets(t *testing.T) {
	assert.True(t, ModeForceRebuild.VerifiesAssets())
	assert.True(t, ModeIncrementalBuild.VerifiesAssets())
	assert.False(t, ModeDryRunBuild.VerifiesAssets())
	assert.False(t, ModeSimulateBuild.VerifiesAssets())
	assert.False(t, BuildMode("other").VerifiesAssets())
}

func TestParseCompressAndPipeline(t *testing.T) {
	c, err := ParseCompressOption("lzma")
	require.NoError(t, err)
	assert.Equal(t, CompressLZMA, c)

	c, err = ParseCompressOption("")
	require.NoError(t, err)
	assert.Equal(t, CompressLZ4, c)

	_, err = ParseCompressOption("gzip")
	require.Error(t, err)

	k, err := ParsePipelineKind("SBP")
	require.NoError(t, err)
	assert.Equal(t, PipelineScriptable, k)
}

func TestBuildOptions_String(t *testing.T) {
	assert.Equal(t, "None", OptionNone.String())
	assert.Equal(t, "StrictMode|DryRunBuild", (OptionDryRunBuild | OptionStrictMode).String())
	assert.True(t, (OptionStrictMode | OptionChunkBasedCompression).Has(OptionChunkBasedCompression))
	assert.False(t, OptionStrictMode.Has(OptionStrictMode|OptionDryRunBuild))
}
