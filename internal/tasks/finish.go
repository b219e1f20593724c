package tasks

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/bundlebuilder/internal/logfields"
	"git.home.luguber.info/inful/bundlebuilder/internal/pipeline"
)

// Finish stops the build stopwatch and logs where the package ended up.
func Finish(deps Deps) pipeline.Task {
	return pipeline.Named(pipeline.TaskFinish, func(_ context.Context, bc *pipeline.BuildContext) error {
		params := bc.Parameters
		if err := params.StopWatch(); err != nil {
			return errors.WrapError(err, errors.CategoryInternal, "stop build stopwatch").Build()
		}
		deps.logger().Info("Build finished",
			logfields.RunID(bc.RunID),
			logfields.BuildMode(string(params.Mode())),
			slog.Float64("building_seconds", params.BuildingSeconds()),
			logfields.Path(params.PackageDirectory()))
		return nil
	})
}
