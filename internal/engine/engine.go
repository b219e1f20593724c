// Package engine abstracts the external packaging engine that turns planned
// bundles into bundle files plus a build manifest.
package engine

import (
	"context"

	"git.home.luguber.info/inful/bundlebuilder/internal/build"
	"git.home.luguber.info/inful/bundlebuilder/internal/manifest"
)

// Request is one engine invocation. Exactly one of Options (builtin pipeline)
// or Scriptable (scriptable pipeline) is meaningful, selected by Pipeline.
type Request struct {
	Pipeline        build.PipelineKind
	BuildTarget     string
	OutputDirectory string
	Options         build.BuildOptions
	Scriptable      build.ScriptableParameters
}

// Result is what the engine reports back after a compile pass.
type Result struct {
	BundleNames []string
	Manifest    *manifest.BuildManifest
}

// Engine compiles bundles.
type Engine interface {
	Build(ctx context.Context, req Request) (*Result, error)
}

// Func adapts a function to Engine.
type Func func(ctx context.Context, req Request) (*Result, error)

// Build implements Engine.
func (f Func) Build(ctx context.Context, req Request) (*Result, error) { return f(ctx, req) }

// FromManifest builds a Result listing every bundle in m.
func FromManifest(m *manifest.BuildManifest) *Result {
	return &Result{BundleNames: m.BundleNames(), Manifest: m}
}
