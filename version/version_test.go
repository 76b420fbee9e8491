package version

import "testing"

func TestGetFullVersion(t *testing.T) {
	defer func(v, c, d string) { Version, GitCommit, BuildDate = v, c, d }(Version, GitCommit, BuildDate)

	if got := GetFullVersion(); got != "dev" {
		t.Errorf("dev build: got %q", got)
	}

	Version, GitCommit, BuildDate = "1.2.0", "abc123", "2026-01-02"
	if got := GetFullVersion(); got != "1.2.0 (abc123, 2026-01-02)" {
		t.Errorf("release build: got %q", got)
	}
}
