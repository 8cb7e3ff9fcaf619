package buildinfo

import (
	"runtime"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()

	if info.Version == "" {
		t.Error("Version should not be empty")
	}
	if info.Commit == "" {
		t.Error("Commit should not be empty")
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
}

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	if !strings.HasPrefix(ua, Product+"/") {
		t.Errorf("UserAgent() = %q, want prefix %q", ua, Product+"/")
	}
}

func TestUserAgent_LdflagsVersion(t *testing.T) {
	old := Version
	Version = "v1.2.0"
	t.Cleanup(func() { Version = old })

	if got := UserAgent(); got != "partage-bss-go/v1.2.0" {
		t.Errorf("UserAgent() = %q, want %q", got, "partage-bss-go/v1.2.0")
	}
}
