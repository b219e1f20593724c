package pipeline

import (
	"git.home.luguber.info/inful/bundlebuilder/internal/build"
	"git.home.luguber.info/inful/bundlebuilder/internal/buildmap"
	"git.home.luguber.info/inful/bundlebuilder/internal/engine"
	"git.home.luguber.info/inful/bundlebuilder/internal/progress"
	"git.home.luguber.info/inful/bundlebuilder/internal/verify"
)

// BuildContext is the state threaded through every task of one run. Each field
// has a single writer; everyone else only reads it.
type BuildContext struct {
	// Parameters is set by whoever starts the run and never replaced.
	Parameters *build.ParametersContext
	// BuildMap is the plan handed over by the collection stage.
	BuildMap *buildmap.Map

	// EngineResult is written by the building task.
	EngineResult *engine.Result
	// Verification is written by the verify_build_result task.
	Verification *verify.Result

	// RunID and Report are owned by the Runner.
	RunID  string
	Report *Report

	Progress progress.Sink
}

// NewBuildContext creates a context for one run.
func NewBuildContext(params *build.ParametersContext, plan *buildmap.Map) *BuildContext {
	return &BuildContext{Parameters: params, BuildMap: plan, Progress: progress.Noop{}}
}
