package config

import (
	"time"

	"github.com/yndnr/partage-bss-go/internal/telemetry/logger"
)

// Config is the client configuration.
type Config struct {
	API         APIConfig         `koanf:"api"`
	Cache       CacheConfig       `koanf:"cache"`
	Credentials CredentialsConfig `koanf:"credentials"`
	Log         logger.Config     `koanf:"log"`
}

// APIConfig configures the BSS endpoint.
type APIConfig struct {
	// URL is the base URL; methods are appended as /Auth, /GetAccount/{token}...
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
	// Rate limits outbound calls per second; 0 disables limiting.
	Rate  float64 `koanf:"rate"`
	Burst int     `koanf:"burst"`
	// Format is the response format: auto, xml or json.
	Format string `koanf:"format"`
	// CAFile is a PEM bundle trusted in addition to the system roots.
	CAFile string `koanf:"cafile"`
}

// CacheConfig configures the token cache.
type CacheConfig struct {
	// Window is how long a token is reused before it is refreshed.
	Window  time.Duration `koanf:"window"`
	Backend string        `koanf:"backend"`
	Redis   RedisCache    `koanf:"redis"`
}

// RedisCache configures the shared token store.
type RedisCache struct {
	Addr     string        `koanf:"addr"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"`
	Prefix   string        `koanf:"prefix"`
	TTL      time.Duration `koanf:"ttl"`
}

// CredentialsConfig selects where domain secrets come from.
type CredentialsConfig struct {
	Source   string              `koanf:"source"`
	Static   []StaticCredential  `koanf:"static"`
	Redis    RedisCredentials    `koanf:"redis"`
	Postgres PostgresCredentials `koanf:"postgres"`
}

// StaticCredential is a domain and its preauth secret.
type StaticCredential struct {
	Domain string `koanf:"domain"`
	Secret string `koanf:"secret"`
}

// RedisCredentials reads secrets from a Redis hash keyed by domain.
type RedisCredentials struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	Key      string `koanf:"key"`
}

// PostgresCredentials reads secrets with a single-parameter query.
type PostgresCredentials struct {
	DSN   string `koanf:"dsn"`
	Query string `koanf:"query"`
}

// Secrets returns the static credentials as a domain to secret map.
func (c CredentialsConfig) Secrets() map[string]string {
	m := make(map[string]string, len(c.Static))
	for _, sc := range c.Static {
		m[sc.Domain] = sc.Secret
	}
	return m
}
