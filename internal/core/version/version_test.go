package version

import (
	"runtime/debug"
	"testing"

	kit "wikicord/internal/platform/testkit"
)

func TestInfo_Defaults(t *testing.T) {
	kit.Swap(t, &readBuildInfo, func() (*debug.BuildInfo, bool) { return nil, false })

	got := Info()
	if got.Service != "wikicord" || got.Version != "dev" || got.Commit != "none" || got.Date != "unknown" {
		t.Fatalf("unexpected defaults: %+v", got)
	}
	if got.GoVersion != "" {
		t.Fatalf("expected no go version without build info, got %q", got.GoVersion)
	}
}

func TestInfo_VCSRevisionFallback(t *testing.T) {
	kit.Swap(t, &readBuildInfo, func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			GoVersion: "go1.25.0",
			Settings:  []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
		}, true
	})

	got := Info()
	if got.Commit != "abc123" || got.GoVersion != "go1.25.0" {
		t.Fatalf("expected vcs fallback, got %+v", got)
	}
}

func TestInfo_LdflagsCommitWins(t *testing.T) {
	kit.Swap(t, &commit, "deadbeef")
	kit.Swap(t, &readBuildInfo, func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}}}, true
	})
	if got := Info().Commit; got != "deadbeef" {
		t.Fatalf("expected ldflags commit, got %q", got)
	}
}

func TestUserAgent(t *testing.T) {
	kit.Swap(t, &version, "v1.2.0")
	if got := UserAgent(); got != "wikicord/v1.2.0" {
		t.Fatalf("UserAgent = %q", got)
	}
}
