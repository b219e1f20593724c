package build

import (
	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
)

// BuildParameters is the raw, externally supplied input of a run. It is copied
// into a ParametersContext and never modified afterwards.
type BuildParameters struct {
	OutputRoot     string
	BuildTarget    string
	BuildVersion   string
	BuildMode      BuildMode
	BuildPipeline  PipelineKind
	CompressOption CompressOption

	// DisableWriteTypeTree omits type information from bundles.
	DisableWriteTypeTree bool
	// IgnoreTypeTreeChanges skips type tree changes in the incremental check.
	IgnoreTypeTreeChanges bool
	// VerifyBuildingResult enables the build result verification task.
	VerifyBuildingResult bool

	Scriptable ScriptableOptions
}

// ScriptableOptions holds settings that only the scriptable pipeline understands.
type ScriptableOptions struct {
	WriteLinkXML bool
}

// Validate checks required fields and enum values.
func (p BuildParameters) Validate() error {
	if p.OutputRoot == "" {
		return errors.ConfigError("output root is required").Build()
	}
	if p.BuildTarget == "" {
		return errors.ConfigError("build target is required").Build()
	}
	if err := p.BuildMode.Validate(); err != nil {
		return err
	}
	if err := p.BuildPipeline.Validate(); err != nil {
		return err
	}
	return p.CompressOption.Validate()
}
