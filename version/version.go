// Package version holds build-time version information, populated via
// -ldflags at release time.
package version

import "runtime"

var (
	// GitRelease is the release tag.
	GitRelease = "dev"

	// GitCommit is the commit hash the binary was built from.
	GitCommit = "unknown"

	// GitCommitDate is the commit date.
	GitCommitDate = "unknown"

	// GoInfo is the Go toolchain version.
	GoInfo = runtime.Version()
)
