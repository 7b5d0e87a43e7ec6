// Package buildinfo carries version metadata injected at link time.
package buildinfo

var (
	// Version is the release version, e.g. "1.2.0". "dev" for local builds.
	Version = "dev"
	// Build is the VCS revision the binary was built from.
	Build = "unknown"
)
