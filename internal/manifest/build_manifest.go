package manifest

import (
	"os"
	"path"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
)

// BuildManifest is the engine's summary of one compile pass.
type BuildManifest struct {
	CRC     uint32
	Bundles []BuiltBundle
}

// BuiltBundle is one entry of the build manifest.
type BuiltBundle struct {
	Name         string
	Dependencies []string
}

// BundleNames returns all built bundle names in manifest order.
func (m *BuildManifest) BundleNames() []string {
	names := make([]string, 0, len(m.Bundles))
	for _, b := range m.Bundles {
		names = append(names, b.Name)
	}
	return names
}

// BuildManifestPath returns the build manifest location inside a pipeline output
// directory. The engine names the file after the directory itself.
func BuildManifestPath(pipelineOutputDir string) string {
	return path.Join(pipelineOutputDir, path.Base(pipelineOutputDir)+Extension)
}

type buildManifestFile struct {
	ManifestFileVersion int    `yaml:"ManifestFileVersion"`
	CRC                 uint32 `yaml:"CRC"`
	AssetBundleManifest struct {
		// Kept as a node so the Info_N mapping order survives decoding.
		AssetBundleInfos yaml.Node `yaml:"AssetBundleInfos"`
	} `yaml:"AssetBundleManifest"`
}

type bundleInfoEntry struct {
	Name         string            `yaml:"Name"`
	Dependencies map[string]string `yaml:"Dependencies"`
}

// ParseBuildManifest decodes the engine build manifest.
func ParseBuildManifest(data []byte) (*BuildManifest, error) {
	var f buildManifestFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.WrapError(err, errors.CategoryEngine, "decode build manifest").Fatal().Build()
	}

	out := &BuildManifest{CRC: f.CRC}
	infos := f.AssetBundleManifest.AssetBundleInfos
	if infos.Kind == 0 {
		return out, nil
	}
	if infos.Kind != yaml.MappingNode {
		return nil, errors.EngineError("AssetBundleInfos is not a mapping").Build()
	}
	for i := 0; i+1 < len(infos.Content); i += 2 {
		key, value := infos.Content[i], infos.Content[i+1]
		var entry bundleInfoEntry
		if err := value.Decode(&entry); err != nil {
			return nil, errors.WrapError(err, errors.CategoryEngine, "decode build manifest entry").
				Fatal().
				WithContext("entry", key.Value).
				Build()
		}
		if entry.Name == "" {
			return nil, errors.EngineError("build manifest entry has no name").WithContext("entry", key.Value).Build()
		}
		out.Bundles = append(out.Bundles, BuiltBundle{Name: entry.Name, Dependencies: sortedDependencies(entry.Dependencies)})
	}
	return out, nil
}

// ReadBuildManifest reads and decodes the build manifest at path.
func ReadBuildManifest(manifestPath string) (*BuildManifest, error) {
	// #nosec G304 - path derives from the pipeline output directory
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read build manifest").
			Fatal().
			WithContext("path", manifestPath).
			Build()
	}
	return ParseBuildManifest(data)
}
