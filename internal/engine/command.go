package engine

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"strconv"

	"git.home.luguber.info/inful/bundlebuilder/internal/build"
	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/bundlebuilder/internal/logfields"
)

// Environment variables handed to an external engine command.
const (
	EnvPipeline        = "BUNDLEBUILDER_PIPELINE"
	EnvBuildTarget     = "BUNDLEBUILDER_BUILD_TARGET"
	EnvOutputDirectory = "BUNDLEBUILDER_OUTPUT_DIRECTORY"
	EnvBuildOptions    = "BUNDLEBUILDER_BUILD_OPTIONS"
	EnvCompression     = "BUNDLEBUILDER_COMPRESSION"
	EnvUseCache        = "BUNDLEBUILDER_USE_CACHE"
	EnvContentFlags    = "BUNDLEBUILDER_CONTENT_FLAGS"
	EnvWriteLinkXML    = "BUNDLEBUILDER_WRITE_LINK_XML"
)

// Command runs an external program that performs the compile pass, then reads
// the build manifest it left in the output directory. The request is passed
// through the environment.
type Command struct {
	Path   string
	Args   []string
	Logger *slog.Logger
}

func (c Command) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// Build implements Engine.
func (c Command) Build(ctx context.Context, req Request) (*Result, error) {
	if c.Path == "" {
		return nil, errors.ConfigError("engine command is not configured").Build()
	}
	if _, err := exec.LookPath(c.Path); err != nil {
		return nil, errors.WrapError(err, errors.CategoryEngine, "engine command not found").
			WithContext("command", c.Path).
			Fatal().
			Build()
	}

	// #nosec G204 - command comes from operator configuration
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Env = append(os.Environ(), requestEnv(req)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log := c.logger().With(logfields.Command(c.Path))
	log.Info("Invoking packaging engine", logfields.Path(req.OutputDirectory))
	err := cmd.Run()
	if out := stdout.String(); out != "" {
		log.Debug("Engine output", logfields.Stdout(out))
	}
	if errOut := stderr.String(); errOut != "" {
		log.Warn("Engine error output", logfields.Stderr(errOut))
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.WrapError(err, errors.CategoryEngine, "engine command failed").
			WithContext("command", c.Path).
			WithContext("stderr", stderr.String()).
			Fatal().
			Build()
	}
	return Prebuilt{}.Build(ctx, req)
}

func requestEnv(req Request) []string {
	env := []string{
		EnvPipeline + "=" + string(req.Pipeline),
		EnvBuildTarget + "=" + req.BuildTarget,
		EnvOutputDirectory + "=" + req.OutputDirectory,
	}
	switch req.Pipeline {
	case build.PipelineScriptable:
		env = append(env,
			EnvCompression+"="+string(req.Scriptable.Compression),
			EnvUseCache+"="+strconv.FormatBool(req.Scriptable.UseCache),
			EnvContentFlags+"="+strconv.FormatUint(uint64(req.Scriptable.ContentFlags), 10),
			EnvWriteLinkXML+"="+strconv.FormatBool(req.Scriptable.WriteLinkXML),
		)
	default:
		env = append(env, EnvBuildOptions+"="+req.Options.String())
	}
	return env
}
