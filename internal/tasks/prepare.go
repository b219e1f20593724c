package tasks

import (
	"context"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/bundlebuilder/internal/build"
	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/bundlebuilder/internal/logfields"
	"git.home.luguber.info/inful/bundlebuilder/internal/pipeline"
)

// Prepare derives the engine settings for the run, creates the pipeline output
// directory and starts the build stopwatch. An invalid mode and compression
// combination fails before the directory is created.
func Prepare(deps Deps) pipeline.Task {
	return pipeline.Named(pipeline.TaskPrepare, func(_ context.Context, bc *pipeline.BuildContext) error {
		params := bc.Parameters
		p := params.Parameters()
		log := deps.logger().With(logfields.RunID(bc.RunID), logfields.Task(string(pipeline.TaskPrepare)))

		if params.Mode() != build.ModeSimulateBuild {
			switch p.BuildPipeline {
			case build.PipelineScriptable:
				sp, err := params.ScriptableBuildParameters()
				if err != nil {
					return err
				}
				log.Info("Scriptable build parameters",
					logfields.BuildMode(string(params.Mode())),
					slog.String("compression", string(sp.Compression)),
					slog.Bool("use_cache", sp.UseCache),
					slog.Bool("write_link_xml", sp.WriteLinkXML))
			default:
				opts, err := params.PipelineBuildOptions()
				if err != nil {
					return err
				}
				log.Info("Pipeline build options", logfields.BuildMode(string(params.Mode())), logfields.Options(opts.String()))
			}

			dir := params.PipelineOutputDirectory()
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return errors.FileSystemError("create pipeline output directory").
					WithCause(err).
					WithContext("path", dir).
					Build()
			}
		}

		if err := params.BeginWatch(); err != nil {
			return errors.WrapError(err, errors.CategoryInternal, "start build stopwatch").Build()
		}
		return nil
	})
}
