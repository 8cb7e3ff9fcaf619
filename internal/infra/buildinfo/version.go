package buildinfo

import (
	"runtime"
	"runtime/debug"
)

// Product is the name announced in the User-Agent header.
const Product = "partage-bss-go"

const modulePath = "github.com/yndnr/partage-bss-go"

// Build-time variables (set via ldflags).
var (
	Version = "dev"
	Commit  = "unknown"
)

// Info contains build information.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	GoVersion string `json:"go_version"`
}

// Get returns the build information.
func Get() Info {
	return Info{
		Version:   resolveVersion(),
		Commit:    Commit,
		GoVersion: runtime.Version(),
	}
}

// UserAgent returns the User-Agent header value, e.g. "partage-bss-go/v1.2.0".
func UserAgent() string {
	return Product + "/" + resolveVersion()
}

// resolveVersion prefers the ldflags value, then the version of this module
// as a dependency of the running binary.
func resolveVersion() string {
	if Version != "dev" {
		return Version
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return Version
	}
	for _, dep := range bi.Deps {
		if dep.Path == modulePath && dep.Version != "" && dep.Version != "(devel)" {
			return dep.Version
		}
	}
	return Version
}
