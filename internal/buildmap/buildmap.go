// Package buildmap holds the expected build plan: which assets each bundle should contain.
//
// The plan is produced by the asset collection stage and is read-only here.
package buildmap

import (
	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
)

// BundleInfo describes one planned bundle.
type BundleInfo struct {
	BundleName string
	// IsRawFile marks pass-through bundles; they are excluded from content verification.
	IsRawFile  bool
	AssetPaths []string
}

// Map is the ordered, name-unique collection of planned bundles.
type Map struct {
	bundles []BundleInfo
	index   map[string]int
}

// New builds a Map. Bundle names must be non-empty and unique.
func New(infos ...BundleInfo) (*Map, error) {
	m := &Map{bundles: make([]BundleInfo, 0, len(infos)), index: make(map[string]int, len(infos))}
	for _, info := range infos {
		if info.BundleName == "" {
			return nil, errors.ValidationError("bundle name is empty").Build()
		}
		if _, dup := m.index[info.BundleName]; dup {
			return nil, errors.ValidationError("duplicate bundle name in build map").
				WithContext("bundle", info.BundleName).
				Build()
		}
		info.AssetPaths = append([]string(nil), info.AssetPaths...)
		m.index[info.BundleName] = len(m.bundles)
		m.bundles = append(m.bundles, info)
	}
	return m, nil
}

// Len returns the number of planned bundles.
func (m *Map) Len() int { return len(m.bundles) }

// Bundles returns the planned bundles in plan order.
func (m *Map) Bundles() []BundleInfo {
	out := make([]BundleInfo, len(m.bundles))
	copy(out, m.bundles)
	return out
}

// Bundle looks up a bundle by name.
func (m *Map) Bundle(name string) (BundleInfo, bool) {
	i, ok := m.index[name]
	if !ok {
		return BundleInfo{}, false
	}
	return m.bundles[i], true
}

// ExpectedBundleNames returns the names of all non-raw bundles in plan order.
func (m *Map) ExpectedBundleNames() []string {
	names := make([]string, 0, len(m.bundles))
	for _, b := range m.bundles {
		if !b.IsRawFile {
			names = append(names, b.BundleName)
		}
	}
	return names
}

// BuildinAssetPaths returns the asset paths planned for bundle name, or nil
// when the bundle is not in the plan.
func (m *Map) BuildinAssetPaths(name string) []string {
	b, ok := m.Bundle(name)
	if !ok {
		return nil
	}
	return append([]string(nil), b.AssetPaths...)
}
