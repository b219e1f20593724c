package buildmap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
)

// planFile is the on-disk YAML layout written by the collection stage:
//
//	bundles:
//	  - name: ui.bundle
//	    assets: [Assets/UI/a.prefab, Assets/UI/b.png]
//	  - name: video.rawfile
//	    raw_file: true
type planFile struct {
	Bundles []planBundle `yaml:"bundles"`
}

type planBundle struct {
	Name    string   `yaml:"name"`
	RawFile bool     `yaml:"raw_file,omitempty"`
	Assets  []string `yaml:"assets,omitempty"`
}

// Load reads a build plan file.
func Load(path string) (*Map, error) {
	// #nosec G304 - path is supplied by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read build map").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return Parse(data)
}

// Parse decodes a YAML build plan.
func Parse(data []byte) (*Map, error) {
	var pf planFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "decode build map").Fatal().Build()
	}
	infos := make([]BundleInfo, 0, len(pf.Bundles))
	for i, b := range pf.Bundles {
		if b.Name == "" {
			return nil, errors.ValidationError(fmt.Sprintf("bundle %d has no name", i)).Build()
		}
		infos = append(infos, BundleInfo{BundleName: b.Name, IsRawFile: b.RawFile, AssetPaths: b.Assets})
	}
	return New(infos...)
}

// Save writes m in the plan file format.
func Save(path string, m *Map) error {
	pf := planFile{Bundles: make([]planBundle, 0, m.Len())}
	for _, b := range m.bundles {
		pf.Bundles = append(pf.Bundles, planBundle{Name: b.BundleName, RawFile: b.IsRawFile, Assets: b.AssetPaths})
	}
	data, err := yaml.Marshal(&pf)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "encode build map").Fatal().Build()
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write build map").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return nil
}
