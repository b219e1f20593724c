package engine

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/bundlebuilder/internal/logfields"
	"git.home.luguber.info/inful/bundlebuilder/internal/manifest"
)

// Prebuilt treats the output directory as already compiled and only reads its
// build manifest. It backs the verify command.
type Prebuilt struct{}

// Build implements Engine.
func (Prebuilt) Build(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	manifestPath := manifest.BuildManifestPath(req.OutputDirectory)
	m, err := manifest.ReadBuildManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded prebuilt build manifest", logfields.Path(manifestPath), slog.Int("bundles", len(m.Bundles)))
	return FromManifest(m), nil
}
