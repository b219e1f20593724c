// Package verify proves that the packaging engine produced exactly the planned output.
//
// Verification runs in two steps. The bundle-set check fails immediately when
// the engine produced a bundle the plan does not contain. The asset-level check
// (ForceRebuild and IncrementalBuild only) reads every built bundle's manifest
// and compares its assets to the plan by content identity. Every divergence is
// logged as a warning first; the run then fails once with an aggregate error.
//
// Compare and CompareAssets are free of logging and file access so they can be
// tested in isolation; Verifier wires them to manifests, logging and progress.
package verify
