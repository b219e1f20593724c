// Package build derives the per-run build configuration from raw build parameters.
//
// A ParametersContext is created once at the start of a run and is read by every
// task afterwards. It owns the memoised pipeline output directory, the option
// flags handed to the builtin packaging pipeline, the parameter set for the
// scriptable pipeline, and the stopwatch that measures the building time.
//
// Every decision that depends on the build mode is an exhaustive switch over
// BuildMode. Combinations that make no sense (asking for engine options while
// simulating, or for scriptable parameters in a dry run) return configuration
// errors instead of a default value.
package build
