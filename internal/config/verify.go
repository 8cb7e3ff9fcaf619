package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/yndnr/partage-bss-go/internal/core/domain"
	"github.com/yndnr/partage-bss-go/internal/transport"
)

// Validate checks the configuration. Every problem is reported in a single
// ErrInvalidArgument.
func (c *Config) Validate() error {
	errs := []error{
		c.API.validate(),
		c.Cache.validate(),
		c.Credentials.validate(),
	}
	if err := errors.Join(errs...); err != nil {
		return domain.ErrInvalidArgument.WithDetails("config").WithCause(err)
	}
	return nil
}

func (c *APIConfig) validate() error {
	var errs []error
	if c.URL != "" {
		raw := c.URL
		if !strings.Contains(raw, "://") {
			raw = "https://" + raw
		}
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			errs = append(errs, fmt.Errorf("api.url %q is not a valid URL", c.URL))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			errs = append(errs, fmt.Errorf("api.url scheme %q is not supported", u.Scheme))
		}
	}
	if c.Timeout < 0 {
		errs = append(errs, errors.New("api.timeout must not be negative"))
	}
	if c.Rate < 0 {
		errs = append(errs, errors.New("api.rate must not be negative"))
	}
	if c.Rate > 0 && c.Burst < 1 {
		errs = append(errs, errors.New("api.burst must be at least 1 when api.rate is set"))
	}
	if c.CAFile != "" {
		if _, err := os.Stat(c.CAFile); err != nil {
			errs = append(errs, fmt.Errorf("api.cafile: %w", err))
		}
	}
	switch transport.Format(strings.ToLower(c.Format)) {
	case "", transport.FormatAuto, transport.FormatXML, transport.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("api.format %q must be auto, xml or json", c.Format))
	}
	return errors.Join(errs...)
}

func (c *CacheConfig) validate() error {
	var errs []error
	if c.Window <= 0 {
		errs = append(errs, errors.New("cache.window must be positive"))
	}
	if c.Window > domain.TokenLifetime {
		errs = append(errs, fmt.Errorf("cache.window %s exceeds the token lifetime %s", c.Window, domain.TokenLifetime))
	}
	switch c.Backend {
	case "", BackendMemory:
	case BackendRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("cache.redis.addr is required for the redis backend"))
		}
		if c.Redis.TTL < 0 {
			errs = append(errs, errors.New("cache.redis.ttl must not be negative"))
		}
	default:
		errs = append(errs, fmt.Errorf("cache.backend %q must be memory or redis", c.Backend))
	}
	return errors.Join(errs...)
}

func (c *CredentialsConfig) validate() error {
	var errs []error
	switch c.Source {
	case "", SourceStatic:
		seen := make(map[string]bool, len(c.Static))
		for i, sc := range c.Static {
			if err := domain.ValidateDomain(sc.Domain); err != nil {
				errs = append(errs, fmt.Errorf("credentials.static[%d]: %w", i, err))
			}
			if sc.Secret == "" {
				errs = append(errs, fmt.Errorf("credentials.static[%d]: empty secret", i))
			}
			if seen[sc.Domain] {
				errs = append(errs, fmt.Errorf("credentials.static[%d]: duplicate domain %q", i, sc.Domain))
			}
			seen[sc.Domain] = true
		}
	case SourceRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("credentials.redis.addr is required"))
		}
	case SourcePostgres:
		if c.Postgres.DSN == "" {
			errs = append(errs, errors.New("credentials.postgres.dsn is required"))
		}
		if c.Postgres.Query != "" && !strings.Contains(c.Postgres.Query, "$1") {
			errs = append(errs, errors.New("credentials.postgres.query must take the domain as $1"))
		}
	default:
		errs = append(errs, fmt.Errorf("credentials.source %q must be static, redis or postgres", c.Source))
	}
	return errors.Join(errs...)
}
