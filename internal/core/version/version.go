// Package version reports build metadata stamped in at link time
package version

// BuildInfo holds version information about a deploytrack binary
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information for the named binary.
// Stamp with -ldflags "-X 'deploytrack/internal/core/version.version=v0.1.0'
// -X 'deploytrack/internal/core/version.commit=abcd' -X 'deploytrack/internal/core/version.date=2026-01-02'"
func Info(service string) BuildInfo {
	if service == "" {
		service = "deploytrack"
	}
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// String renders a one line summary suitable for --version output
func (b BuildInfo) String() string {
	return b.Service + " " + b.Version + " (" + b.Commit + ", " + b.Date + ")"
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
