package build

import (
	"path"
	"path/filepath"

	"github.com/jonboulle/clockwork"

	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
)

// ParametersContext is the derived, run-scoped build configuration.
// Apart from the stopwatch it is immutable after construction.
type ParametersContext struct {
	params            BuildParameters
	pipelineOutputDir string
	watch             *Stopwatch
}

// Option customizes a ParametersContext.
type Option func(*ParametersContext)

// WithClock makes the build stopwatch read from clock.
func WithClock(clock clockwork.Clock) Option {
	return func(c *ParametersContext) { c.watch = NewStopwatch(clock) }
}

// NewParametersContext validates params and derives the run configuration.
// An empty BuildPipeline means PipelineBuiltin.
func NewParametersContext(params BuildParameters, opts ...Option) (*ParametersContext, error) {
	if params.BuildPipeline == "" {
		params.BuildPipeline = PipelineBuiltin
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	suffix, err := params.BuildMode.outputSuffix()
	if err != nil {
		return nil, err
	}
	c := &ParametersContext{
		params:            params,
		pipelineOutputDir: MakePipelineOutputDirectory(params.OutputRoot, params.BuildTarget) + suffix,
		watch:             NewStopwatch(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// MakePipelineOutputDirectory applies the engine layout rule: forward slashes, cleaned.
func MakePipelineOutputDirectory(outputRoot, buildTarget string) string {
	return path.Join(filepath.ToSlash(outputRoot), buildTarget)
}

// Parameters returns a copy of the run parameters.
func (c *ParametersContext) Parameters() BuildParameters { return c.params }

// Mode is shorthand for Parameters().BuildMode.
func (c *ParametersContext) Mode() BuildMode { return c.params.BuildMode }

// PipelineOutputDirectory is computed once at construction.
func (c *ParametersContext) PipelineOutputDirectory() string { return c.pipelineOutputDir }

// PackageDirectory is {outputRoot}/{buildTarget}/{buildVersion}, the directory
// downstream packaging and publish steps read from.
func (c *ParametersContext) PackageDirectory() string {
	return path.Join(filepath.ToSlash(c.params.OutputRoot), c.params.BuildTarget, c.params.BuildVersion)
}

// PipelineBuildOptions derives the builtin pipeline flags for the run.
func (c *ParametersContext) PipelineBuildOptions() (BuildOptions, error) {
	switch c.params.BuildMode {
	case ModeSimulateBuild:
		return OptionNone, simulateModeError("pipeline build options")
	case ModeDryRunBuild:
		return OptionStrictMode | OptionDryRunBuild, nil
	case ModeForceRebuild, ModeIncrementalBuild:
	default:
		return OptionNone, unknownModeError(c.params.BuildMode)
	}

	opt := OptionStrictMode | OptionDisableLoadAssetByFileName | OptionDisableLoadAssetByFileNameWithExtension

	switch c.params.CompressOption {
	case CompressUncompressed:
		opt |= OptionUncompressedAssetBundle
	case CompressLZ4:
		opt |= OptionChunkBasedCompression
	default:
		return OptionNone, unsupportedCompressionError(c.params.CompressOption, string(PipelineBuiltin))
	}

	if c.params.BuildMode == ModeForceRebuild {
		opt |= OptionForceRebuildAssetBundle
	}
	if c.params.DisableWriteTypeTree {
		opt |= OptionDisableWriteTypeTree
	}
	if c.params.IgnoreTypeTreeChanges {
		opt |= OptionIgnoreTypeTreeChanges
	}
	return opt, nil
}

// ScriptableBuildParameters derives the scriptable pipeline parameters for the run.
func (c *ParametersContext) ScriptableBuildParameters() (ScriptableParameters, error) {
	switch c.params.BuildMode {
	case ModeSimulateBuild:
		return ScriptableParameters{}, simulateModeError("scriptable build parameters")
	case ModeDryRunBuild:
		return ScriptableParameters{}, errors.ConfigError("scriptable pipeline does not support DryRunBuild mode").
			WithContext("build_mode", string(ModeDryRunBuild)).
			Build()
	case ModeForceRebuild, ModeIncrementalBuild:
	default:
		return ScriptableParameters{}, unknownModeError(c.params.BuildMode)
	}

	sp := ScriptableParameters{
		BuildTarget:     c.params.BuildTarget,
		OutputDirectory: c.pipelineOutputDir,
		UseCache:        c.params.BuildMode != ModeForceRebuild,
		WriteLinkXML:    c.params.Scriptable.WriteLinkXML,
	}

	switch c.params.CompressOption {
	case CompressUncompressed, CompressLZ4, CompressLZMA:
		sp.Compression = c.params.CompressOption
	default:
		return ScriptableParameters{}, unsupportedCompressionError(c.params.CompressOption, string(PipelineScriptable))
	}

	if c.params.DisableWriteTypeTree {
		sp.ContentFlags |= ContentFlagDisableWriteTypeTree
	}
	return sp, nil
}

// BeginWatch starts the build stopwatch.
func (c *ParametersContext) BeginWatch() error { return c.watch.Start() }

// StopWatch stops the build stopwatch.
func (c *ParametersContext) StopWatch() error { return c.watch.Stop() }

// BuildingSeconds returns the measured building time; valid mid-run.
func (c *ParametersContext) BuildingSeconds() float64 { return c.watch.Seconds() }

// WatchState exposes the stopwatch state for reporting.
func (c *ParametersContext) WatchState() WatchState { return c.watch.State() }
