package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFromBuildInfo(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	defer func() { Version, Commit = oldVersion, oldCommit }()

	Version, Commit = "", ""
	fromBuildInfo([]debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.modified", Value: "true"},
		{Key: "vcs.time", Value: "2026-10-19T10:00:00Z"},
	})

	if Commit != "0123456-dirty" {
		t.Errorf("Commit = %q, want 0123456-dirty", Commit)
	}
	if Version != "dev-20261019" {
		t.Errorf("Version = %q, want dev-20261019", Version)
	}
}

func TestFromBuildInfo_KeepsLinkerValues(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	defer func() { Version, Commit = oldVersion, oldCommit }()

	Version, Commit = "v1.0.0", "abc"
	fromBuildInfo([]debug.BuildSetting{{Key: "vcs.revision", Value: "ffffffffff"}})

	if Version != "v1.0.0" || Commit != "abc" {
		t.Errorf("got %s %s", Version, Commit)
	}
}

func TestFull(t *testing.T) {
	if !strings.Contains(Full(), "(commit: ") {
		t.Errorf("Full() = %q", Full())
	}
	if Platform() == "" {
		t.Error("Platform() is empty")
	}
}
