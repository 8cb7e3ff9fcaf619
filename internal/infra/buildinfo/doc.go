// Package buildinfo exposes the library version injected via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/partage-bss-go/internal/infra/buildinfo.Version=v1.2.0"
//
// The version is sent to the API in the User-Agent header. When no version
// was injected, the module version recorded by the Go toolchain is used.
package buildinfo
