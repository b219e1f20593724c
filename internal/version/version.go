package version

import "fmt"

// Version is set via build-time ldflags:
// go build -ldflags "-X git.home.luguber.info/inful/bundlebuilder/internal/version.Version=v0.3.0".
var Version = "unknown"

// Build metadata, also set via ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders all build metadata on one line.
func String() string {
	return fmt.Sprintf("bundlebuilder %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
