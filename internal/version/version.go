// Package version holds build metadata injected at build time with
// -ldflags "-X ...".
package version

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
