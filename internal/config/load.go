package config

import (
	"github.com/yndnr/partage-bss-go/internal/core/domain"
	"github.com/yndnr/partage-bss-go/internal/infra/confloader"
)

// Load returns the defaults overlaid with the YAML file at path (if any)
// and BSS_ environment variables. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	l := confloader.NewLoader(confloader.WithConfigFile(path))
	if err := l.Load(cfg); err != nil {
		return nil, domain.ErrInvalidArgument.WithDetails("load config").WithCause(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
