package build

import (
	"git.home.luguber.info/inful/bundlebuilder/internal/foundation"
	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
)

// PipelineKind selects which packaging pipeline the engine runs.
type PipelineKind string

const (
	// PipelineBuiltin is driven by BuildOptions flags.
	PipelineBuiltin PipelineKind = "builtin"
	// PipelineScriptable is driven by ScriptableParameters.
	PipelineScriptable PipelineKind = "scriptable"
)

var pipelineNormalizer = foundation.NewNormalizer("build pipeline", map[string]PipelineKind{
	"builtin":                 PipelineBuiltin,
	"BuiltinBuildPipeline":    PipelineBuiltin,
	"scriptable":              PipelineScriptable,
	"ScriptableBuildPipeline": PipelineScriptable,
	"sbp":                     PipelineScriptable,
}, PipelineBuiltin)

// ParsePipelineKind normalizes a pipeline name. Empty input yields PipelineBuiltin.
func ParsePipelineKind(raw string) (PipelineKind, error) {
	k, err := pipelineNormalizer.Normalize(raw)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryConfig, "unknown build pipeline").
			Fatal().
			WithContext("build_pipeline", raw).
			Build()
	}
	return k, nil
}

// Validate reports whether k is a known pipeline.
func (k PipelineKind) Validate() error {
	switch k {
	case PipelineBuiltin, PipelineScriptable:
		return nil
	default:
		return errors.ConfigError("unknown build pipeline").WithContext("build_pipeline", string(k)).Build()
	}
}
