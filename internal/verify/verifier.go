package verify

import (
	"context"
	"log/slog"
	"path"

	"git.home.luguber.info/inful/bundlebuilder/internal/assetdb"
	"git.home.luguber.info/inful/bundlebuilder/internal/build"
	"git.home.luguber.info/inful/bundlebuilder/internal/buildmap"
	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/bundlebuilder/internal/logfields"
	"git.home.luguber.info/inful/bundlebuilder/internal/manifest"
	"git.home.luguber.info/inful/bundlebuilder/internal/progress"
)

// ProgressTitle labels the progress reported while checking bundles.
const ProgressTitle = "Verifying build result"

// Request carries the inputs of one verification pass.
type Request struct {
	Parameters   *build.ParametersContext
	BuildMap     *buildmap.Map
	BuiltBundles []string
}

// AssetReader returns the asset paths embedded in the bundle file at bundlePath.
type AssetReader func(bundlePath string) ([]string, error)

// Verifier runs the full verification algorithm.
type Verifier struct {
	resolver   assetdb.Resolver
	readAssets AssetReader
	progress   progress.Sink
	logger     *slog.Logger
}

// New creates a Verifier resolving identities with resolver and reading bundle
// manifests from disk.
func New(resolver assetdb.Resolver) *Verifier {
	return &Verifier{
		resolver:   resolver,
		readAssets: manifest.ReadBundleAssets,
		progress:   progress.Noop{},
		logger:     slog.Default(),
	}
}

// WithProgress sets the progress sink.
func (v *Verifier) WithProgress(p progress.Sink) *Verifier {
	if p != nil {
		v.progress = p
	}
	return v
}

// WithLogger sets the logger warnings are written to.
func (v *Verifier) WithLogger(l *slog.Logger) *Verifier {
	if l != nil {
		v.logger = l
	}
	return v
}

// WithAssetReader replaces the bundle manifest reader.
func (v *Verifier) WithAssetReader(r AssetReader) *Verifier {
	if r != nil {
		v.readAssets = r
	}
	return v
}

// Verify checks req and returns the result together with a terminal error when
// anything diverged. The result is non-nil whenever a structural check ran.
func (v *Verifier) Verify(ctx context.Context, req Request) (*Result, error) {
	if req.Parameters == nil || req.BuildMap == nil {
		return nil, errors.InternalError("verification requires build parameters and a build map").Build()
	}
	mode := req.Parameters.Mode()
	switch mode {
	case build.ModeSimulateBuild:
		return nil, errors.ConfigError("build result verification is not available in SimulateBuild mode").
			WithContext("build_mode", string(mode)).
			Build()
	case build.ModeDryRunBuild, build.ModeForceRebuild, build.ModeIncrementalBuild:
	default:
		return nil, errors.ConfigError("unknown build mode").WithContext("build_mode", string(mode)).Build()
	}

	res := &Result{}

	// 1. Bundle set. A build with bundles outside the plan is rejected before
	// any asset is looked at.
	if unexpected := Compare(req.BuildMap.ExpectedBundleNames(), req.BuiltBundles); len(unexpected) > 0 {
		for _, d := range unexpected {
			v.warn(ctx, d)
		}
		res.Diagnostics = unexpected
		return res, errors.VerificationError("build output contains unexpected bundles, see warnings").
			WithContext("unexpected_bundles", len(unexpected)).
			Build()
	}

	// 2. Assets, only when real bundle content was written.
	if mode.VerifiesAssets() {
		res.AssetLevel = true
		if err := v.verifyAssets(ctx, req, res); err != nil {
			return res, err
		}
		if len(res.Diagnostics) > 0 {
			return res, errors.VerificationError("build result verification failed, see warnings").
				WithContext("mismatches", len(res.Diagnostics)).
				Build()
		}
	}

	res.Passed = true
	v.logger.Info("Build result verification passed",
		logfields.BuildMode(string(mode)),
		slog.Int("bundles", len(req.BuiltBundles)),
		slog.Bool("asset_level", res.AssetLevel))
	return res, nil
}

func (v *Verifier) verifyAssets(ctx context.Context, req Request, res *Result) error {
	defer v.progress.Clear()

	outputDir := req.Parameters.PipelineOutputDirectory()
	total := len(req.BuiltBundles)
	for i, bundle := range req.BuiltBundles {
		actual, err := v.readAssets(path.Join(outputDir, bundle))
		if err != nil {
			return err
		}
		diags, err := CompareAssets(ctx, bundle, req.BuildMap.BuildinAssetPaths(bundle), actual, v.resolver)
		if err != nil {
			return err
		}
		for _, d := range diags {
			v.warn(ctx, d)
		}
		res.Diagnostics = append(res.Diagnostics, diags...)
		res.BundlesChecked++
		v.progress.Report(ProgressTitle, i+1, total)
	}
	return nil
}

func (v *Verifier) warn(ctx context.Context, d Diagnostic) {
	attrs := []slog.Attr{logfields.Reason(string(d.Kind)), logfields.Bundle(d.Bundle)}
	if d.Asset != "" {
		attrs = append(attrs, logfields.Asset(d.Asset))
	}
	v.logger.LogAttrs(ctx, slog.LevelWarn, d.Message(), attrs...)
}
