// Package tasks provides the build tasks the pipeline runs: prepare, building,
// verify_build_result and finish.
package tasks
