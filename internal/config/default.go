package config

import (
	"github.com/yndnr/partage-bss-go/internal/core/domain"
	"github.com/yndnr/partage-bss-go/internal/credential"
	"github.com/yndnr/partage-bss-go/internal/storage/redisstore"
	"github.com/yndnr/partage-bss-go/internal/telemetry/logger"
	"github.com/yndnr/partage-bss-go/internal/transport"
)

// Backend and source names.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"

	SourceStatic   = "static"
	SourceRedis    = "redis"
	SourcePostgres = "postgres"
)

// Default configuration values.
const (
	DefaultAPIBurst  = 1
	DefaultRedisAddr = "127.0.0.1:6379"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			URL:     transport.DefaultBaseURL,
			Timeout: transport.DefaultTimeout,
			Burst:   DefaultAPIBurst,
			Format:  string(transport.FormatAuto),
		},
		Cache: CacheConfig{
			Window:  domain.DefaultFreshnessWindow,
			Backend: BackendMemory,
			Redis: RedisCache{
				Addr:   DefaultRedisAddr,
				Prefix: redisstore.DefaultKeyPrefix,
				TTL:    domain.TokenLifetime,
			},
		},
		Credentials: CredentialsConfig{
			Source: SourceStatic,
			Redis: RedisCredentials{
				Addr: DefaultRedisAddr,
				Key:  credential.DefaultRedisKey,
			},
			Postgres: PostgresCredentials{
				Query: credential.DefaultPostgresQuery,
			},
		},
		Log: logger.DefaultConfig(),
	}
}
