package tasks

import (
	"log/slog"

	"git.home.luguber.info/inful/bundlebuilder/internal/assetdb"
	"git.home.luguber.info/inful/bundlebuilder/internal/build"
	"git.home.luguber.info/inful/bundlebuilder/internal/engine"
	"git.home.luguber.info/inful/bundlebuilder/internal/pipeline"
)

// Deps are the collaborators the standard tasks need.
type Deps struct {
	Engine   engine.Engine
	Resolver assetdb.Resolver
	Logger   *slog.Logger
}

func (d Deps) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

// VerificationEnabled reports whether the verify_build_result task belongs in
// a run with params.
func VerificationEnabled(params *build.ParametersContext) bool {
	return params.Parameters().VerifyBuildingResult && params.Mode() != build.ModeSimulateBuild
}

// Standard assembles the default task list for params.
func Standard(params *build.ParametersContext, deps Deps) *pipeline.Pipeline {
	return pipeline.New().
		Add(Prepare(deps)).
		Add(Building(deps)).
		AddIf(VerificationEnabled(params), VerifyBuildResult(deps)).
		Add(Finish(deps))
}
