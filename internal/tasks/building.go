package tasks

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/bundlebuilder/internal/build"
	"git.home.luguber.info/inful/bundlebuilder/internal/engine"
	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/bundlebuilder/internal/logfields"
	"git.home.luguber.info/inful/bundlebuilder/internal/pipeline"
)

// Building hands the run to the packaging engine and stores its result on the
// build context. SimulateBuild never reaches the engine.
func Building(deps Deps) pipeline.Task {
	return pipeline.Named(pipeline.TaskBuilding, func(ctx context.Context, bc *pipeline.BuildContext) error {
		params := bc.Parameters
		log := deps.logger().With(logfields.RunID(bc.RunID), logfields.Task(string(pipeline.TaskBuilding)))

		if params.Mode() == build.ModeSimulateBuild {
			bc.EngineResult = &engine.Result{}
			log.Info("Simulate build, engine skipped")
			return nil
		}
		if deps.Engine == nil {
			return errors.ConfigError("no packaging engine configured").Build()
		}

		req, err := engineRequest(params)
		if err != nil {
			return err
		}
		res, err := deps.Engine.Build(ctx, req)
		if err != nil {
			return err
		}
		if res == nil {
			return errors.EngineError("packaging engine returned no result").Build()
		}
		bc.EngineResult = res
		log.Info("Packaging engine finished",
			logfields.BuildTarget(req.BuildTarget),
			slog.Int("bundles", len(res.BundleNames)))
		return nil
	})
}

func engineRequest(params *build.ParametersContext) (engine.Request, error) {
	p := params.Parameters()
	req := engine.Request{
		Pipeline:        p.BuildPipeline,
		BuildTarget:     p.BuildTarget,
		OutputDirectory: params.PipelineOutputDirectory(),
	}
	switch p.BuildPipeline {
	case build.PipelineScriptable:
		sp, err := params.ScriptableBuildParameters()
		if err != nil {
			return engine.Request{}, err
		}
		req.Scriptable = sp
	case build.PipelineBuiltin:
		opts, err := params.PipelineBuildOptions()
		if err != nil {
			return engine.Request{}, err
		}
		req.Options = opts
	default:
		return engine.Request{}, errors.ConfigError("unknown build pipeline").
			WithContext("pipeline", string(p.BuildPipeline)).
			Build()
	}
	return req, nil
}
