// Package version holds build metadata stamped in with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/alexiusacademia/beamreport/internal/version.Version=0.4.0 \
//	  -X github.com/alexiusacademia/beamreport/internal/version.GitCommit=$(git rev-parse --short HEAD)"
package version

import "fmt"

var (
	// Version is the semantic version of beamreport
	Version = "0.3.0"

	// BuildTime is the RFC 3339 build timestamp
	BuildTime = "unknown"

	// GitCommit is the short commit hash the binary was built from
	GitCommit = "unknown"

	// Maintainers is the copyright holder shown in the banner
	Maintainers = "The beamreport Authors"

	// Year is the copyright year
	Year = "2026"
)

// Info is the one-line build description printed by `beamreport version`
func Info() string {
	return fmt.Sprintf("beamreport v%s (commit %s, built %s)", Version, GitCommit, BuildTime)
}

// Copyright is the banner copyright line
func Copyright() string {
	return fmt.Sprintf("Copyright © %s %s", Year, Maintainers)
}
