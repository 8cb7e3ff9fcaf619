package bss

import "github.com/yndnr/partage-bss-go/internal/config"

type (
	// Config is the client configuration.
	Config = config.Config
	// StaticCredential is a domain and its preauth secret.
	StaticCredential = config.StaticCredential
)

// DefaultConfig returns the default configuration: production API, memory
// token cache, static credentials.
func DefaultConfig() *Config {
	return config.Default()
}

// LoadConfig reads a YAML file, applies BSS_ environment overrides on top
// and validates the result. An empty path reads the environment only.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}
