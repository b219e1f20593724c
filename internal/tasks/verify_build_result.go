package tasks

import (
	"context"

	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/bundlebuilder/internal/logfields"
	"git.home.luguber.info/inful/bundlebuilder/internal/pipeline"
	"git.home.luguber.info/inful/bundlebuilder/internal/verify"
)

// VerifyBuildResult checks the engine output against the build map. The result
// is stored on the build context even when verification fails.
func VerifyBuildResult(deps Deps) pipeline.Task {
	return pipeline.Named(pipeline.TaskVerifyBuildResult, func(ctx context.Context, bc *pipeline.BuildContext) error {
		if bc.EngineResult == nil {
			return errors.InternalError("verification ran before the building task").Build()
		}
		if deps.Resolver == nil {
			return errors.ConfigError("no asset identity resolver configured").Build()
		}
		log := deps.logger().With(logfields.RunID(bc.RunID), logfields.Task(string(pipeline.TaskVerifyBuildResult)))

		res, err := verify.New(deps.Resolver).
			WithLogger(log).
			WithProgress(bc.Progress).
			Verify(ctx, verify.Request{
				Parameters:   bc.Parameters,
				BuildMap:     bc.BuildMap,
				BuiltBundles: bc.EngineResult.BundleNames,
			})
		bc.Verification = res
		return err
	})
}
