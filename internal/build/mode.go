package build

import (
	"git.home.luguber.info/inful/bundlebuilder/internal/foundation"
	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
)

// BuildMode selects how the packaging engine is driven for a run.
type BuildMode string

const (
	// ModeSimulateBuild performs no compilation at all.
	ModeSimulateBuild BuildMode = "SimulateBuild"
	// ModeDryRunBuild compiles without writing bundle content.
	ModeDryRunBuild BuildMode = "DryRunBuild"
	// ModeForceRebuild ignores the incremental cache and recompiles everything.
	ModeForceRebuild BuildMode = "ForceRebuild"
	// ModeIncrementalBuild is the default cache-aware rebuild.
	ModeIncrementalBuild BuildMode = "IncrementalBuild"
)

var buildModeNormalizer = foundation.NewNormalizer("build mode", map[string]BuildMode{
	"SimulateBuild":    ModeSimulateBuild,
	"Simulate":         ModeSimulateBuild,
	"DryRunBuild":      ModeDryRunBuild,
	"DryRun":           ModeDryRunBuild,
	"ForceRebuild":     ModeForceRebuild,
	"Force":            ModeForceRebuild,
	"IncrementalBuild": ModeIncrementalBuild,
	"Incremental":      ModeIncrementalBuild,
}, ModeIncrementalBuild)

// ParseBuildMode normalizes a user supplied mode name. Empty input yields ModeIncrementalBuild.
func ParseBuildMode(raw string) (BuildMode, error) {
	m, err := buildModeNormalizer.Normalize(raw)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryConfig, "unknown build mode").
			Fatal().
			WithContext("build_mode", raw).
			Build()
	}
	return m, nil
}

// Validate reports whether m is one of the four known modes.
func (m BuildMode) Validate() error {
	switch m {
	case ModeSimulateBuild, ModeDryRunBuild, ModeForceRebuild, ModeIncrementalBuild:
		return nil
	default:
		return unknownModeError(m)
	}
}

// VerifiesAssets reports whether the asset-level verification pass applies to m.
func (m BuildMode) VerifiesAssets() bool {
	switch m {
	case ModeForceRebuild, ModeIncrementalBuild:
		return true
	case ModeSimulateBuild, ModeDryRunBuild:
		return false
	default:
		return false
	}
}

// Compiles reports whether the packaging engine is invoked at all in mode m.
func (m BuildMode) Compiles() bool {
	return m != ModeSimulateBuild
}

func (m BuildMode) String() string { return string(m) }

// outputSuffix is appended to the pipeline output directory so dry runs and
// simulations never overwrite a real build.
func (m BuildMode) outputSuffix() (string, error) {
	switch m {
	case ModeDryRunBuild, ModeSimulateBuild:
		return "_" + string(m), nil
	case ModeForceRebuild, ModeIncrementalBuild:
		return "", nil
	default:
		return "", unknownModeError(m)
	}
}

func unknownModeError(m BuildMode) error {
	return errors.ConfigError("unknown build mode").WithContext("build_mode", string(m)).Build()
}

func simulateModeError(operation string) error {
	return errors.ConfigError(operation + " is not available in SimulateBuild mode").
		WithContext("build_mode", string(ModeSimulateBuild)).
		Build()
}
