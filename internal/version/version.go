// Package version exposes build metadata for the pcbmod binary.
package version

import (
	"runtime/debug"
)

// Version is the release version, overridden at build time via -ldflags.
var Version = "dev"

// Revision is the VCS revision compiled into the binary.
var Revision = func() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}

	return "unknown"
}()

// GetVersionString returns the combined version and revision.
func GetVersionString() string {
	return Version + "+" + Revision
}
