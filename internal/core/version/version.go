// Package version provides information about the build version of the service.
package version

import "runtime/debug"

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version,omitempty"`
}

// Info returns the build information. The version, commit, and date variables
// are intended to be set at build time using -ldflags.
func Info() BuildInfo {
	// Set via -ldflags "-X 'wikicord/internal/core/version.version=v0.0.1'
	// -X 'wikicord/internal/core/version.commit=abcd' -X 'wikicord/internal/core/version.date=2026-10-01'"
	bi := BuildInfo{
		Service: "wikicord",
		Version: version,
		Commit:  commit,
		Date:    date,
	}
	if info, ok := readBuildInfo(); ok {
		bi.GoVersion = info.GoVersion
		if bi.Commit == "none" {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" && s.Value != "" {
					bi.Commit = s.Value
				}
			}
		}
	}
	return bi
}

// UserAgent is the identifier sent on outbound calls, e.g. "wikicord/v1.2.0"
func UserAgent() string { return "wikicord/" + version }

var readBuildInfo = debug.ReadBuildInfo

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
