package version

import (
	"fmt"
	"runtime"
)

// Build metadata, set with -ldflags "-X github.com/oukeidos/vaani/internal/version.Version=..."
// (likewise Commit and BuildDate, the latter in RFC3339).
var (
	Version   = "0.1.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info is the multi-line text printed by --version and the about command.
func Info() string {
	return fmt.Sprintf("vaani %s\ncommit: %s\nbuild: %s\ngo: %s", Version, Commit, BuildDate, runtime.Version())
}

// UserAgent is sent with outgoing API requests.
func UserAgent() string {
	return fmt.Sprintf("vaani/%s (%s/%s)", Version, runtime.GOOS, runtime.GOARCH)
}
