package manifest

import (
	"bufio"
	"io"
	"os"
	"strings"

	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
)

const (
	assetsHeader       = "Assets:"
	dependenciesHeader = "Dependencies:"
	entryPrefix        = "- "

	// Extension is appended to a bundle file path to locate its sidecar manifest.
	Extension = ".manifest"

	maxLineBytes = 1 << 20
)

// BundleManifestPath returns the sidecar manifest path of a compiled bundle.
func BundleManifestPath(bundlePath string) string {
	return bundlePath + Extension
}

// ParseAssets extracts the embedded asset paths from a bundle manifest.
//
// Scanning stops at the first line starting with "Dependencies:", whether or not
// the asset section was seen. After a line starting with "Assets:", every line
// starting with "- " contributes the rest of the line. Order and duplicates are kept.
func ParseAssets(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var assets []string
	inAssets := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, dependenciesHeader) {
			break
		}
		if !inAssets {
			inAssets = strings.HasPrefix(line, assetsHeader)
			continue
		}
		if rest, ok := strings.CutPrefix(line, entryPrefix); ok {
			assets = append(assets, rest)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return assets, nil
}

// ReadBundleAssets opens the sidecar manifest of bundlePath and parses its asset list.
func ReadBundleAssets(bundlePath string) ([]string, error) {
	manifestPath := BundleManifestPath(bundlePath)
	// #nosec G304 - path derives from the pipeline output directory
	f, err := os.Open(manifestPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "open bundle manifest").
			Fatal().
			WithContext("path", manifestPath).
			Build()
	}
	defer func() { _ = f.Close() }()

	assets, err := ParseAssets(f)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read bundle manifest").
			Fatal().
			WithContext("path", manifestPath).
			Build()
	}
	return assets, nil
}
