package assetdb

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
)

// MetaExtension is the suffix of asset sidecar files.
const MetaExtension = ".meta"

type metaFile struct {
	GUID string `yaml:"guid"`
}

// ParseMeta extracts the GUID from a .meta document. The second result is
// false when the document has no valid GUID.
func ParseMeta(data []byte) (string, bool, error) {
	var m metaFile
	if err := yaml.Unmarshal(data, &m); err != nil {
		return "", false, err
	}
	guid, ok := NormalizeGUID(m.GUID)
	return guid, ok, nil
}

// MetaResolver reads GUIDs from .meta sidecars under a project root.
type MetaResolver struct {
	root string
}

// NewMetaResolver returns a resolver for the project rooted at projectRoot.
func NewMetaResolver(projectRoot string) *MetaResolver {
	return &MetaResolver{root: projectRoot}
}

// Identity implements Resolver.
func (r *MetaResolver) Identity(_ context.Context, assetPath string) (string, error) {
	rel, ok := localAssetPath(assetPath)
	if !ok {
		return "", nil
	}
	metaPath := filepath.Join(r.root, rel) + MetaExtension
	// #nosec G304 - rel is checked to stay under the project root
	data, err := os.ReadFile(metaPath)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", errors.WrapError(err, errors.CategoryFileSystem, "read asset meta").
			Fatal().
			WithContext("path", metaPath).
			Build()
	}
	guid, ok, err := ParseMeta(data)
	if err != nil || !ok {
		// A corrupt meta file leaves the asset without identity, same as a missing one.
		return "", nil
	}
	return guid, nil
}

// localAssetPath converts a project-relative slash path to a local path,
// rejecting empty, absolute and escaping paths.
func localAssetPath(assetPath string) (string, bool) {
	if strings.TrimSpace(assetPath) == "" {
		return "", false
	}
	rel := filepath.FromSlash(assetPath)
	if !filepath.IsLocal(rel) {
		return "", false
	}
	return rel, true
}
