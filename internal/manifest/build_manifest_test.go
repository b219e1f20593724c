package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBuildManifest = `ManifestFileVersion: 0
CRC: 3051592245
AssetBundleManifest:
  AssetBundleInfos:
    Info_0:
      Name: ui.bundle
      Dependencies:
        Dependency_1: fonts.bundle
        Dependency_0: common.bundle
    Info_1:
      Name: common.bundle
      Dependencies: {}
    Info_2:
      Name: fonts.bundle
      Dependencies: {}
`

func TestParseBuildManifest(t *testing.T) {
	m, err := ParseBuildManifest([]byte(sampleBuildManifest))
	require.NoError(t, err)
	assert.Equal(t, uint32(3051592245), m.CRC)
	assert.Equal(t, []string{"ui.bundle", "common.bundle", "fonts.bundle"}, m.BundleNames())
	assert.Equal(t, []string{"common.bundle", "fonts.bundle"}, m.Bundles[0].Dependencies)
	assert.Nil(t, m.Bundles[1].Dependencies)
}

func TestParseBuildManifest_Empty(t *testing.T) {
	m, err := ParseBuildManifest([]byte("ManifestFileVersion: 0\nCRC: 0\n"))
	require.NoError(t, err)
	assert.Empty(t, m.BundleNames())
}

func TestParseBuildManifest_Errors(t *testing.T) {
	_, err := ParseBuildManifest([]byte("AssetBundleManifest:\n  AssetBundleInfos: [a, b]\n"))
	require.Error(t, err)

	_, err = ParseBuildManifest([]byte("AssetBundleManifest:\n  AssetBundleInfos:\n    Info_0:\n      Dependencies: {}\n"))
	require.Error(t, err)

	_, err = ParseBuildManifest([]byte("AssetBundleManifest: ["))
	require.Error(t, err)
}

func TestBuildManifestPath(t *testing.T) {
	assert.Equal(t, "out/Android/Android.manifest", BuildManifestPath("out/Android"))
	assert.Equal(t, "out/Android_DryRunBuild/Android_DryRunBuild.manifest", BuildManifestPath("out/Android_DryRunBuild"))
}

func TestReadBuildManifest(t *testing.T) {
	dir := filepath.ToSlash(t.TempDir())
	require.NoError(t, os.WriteFile(BuildManifestPath(dir), []byte(sampleBuildManifest), 0o600))

	m, err := ReadBuildManifest(BuildManifestPath(dir))
	require.NoError(t, err)
	assert.Len(t, m.Bundles, 3)

	_, err = ReadBuildManifest(filepath.Join(dir, "nope.manifest"))
	require.Error(t, err)
}
