package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/nestbox/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/nestbox/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/nestbox/internal/version.Date={{.Date}}
)

// Info formats the build information for the version command
func Info() string {
	return fmt.Sprintf("nestbox version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
