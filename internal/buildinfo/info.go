// Package buildinfo carries version metadata stamped in via ldflags.
package buildinfo

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"
	// Commit is the short git hash the binary was built from.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)
