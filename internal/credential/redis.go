package credential

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/yndnr/partage-bss-go/internal/core/domain"
)

// DefaultRedisKey is the hash holding domain secrets.
const DefaultRedisKey = "bss:credentials"

// Redis looks secrets up in a Redis hash whose fields are domain names.
type Redis struct {
	client redis.UniversalClient
	key    string
}

// NewRedis creates a source reading hash key. An empty key selects
// DefaultRedisKey. The caller owns the client.
func NewRedis(client redis.UniversalClient, key string) *Redis {
	if key == "" {
		key = DefaultRedisKey
	}
	return &Redis{client: client, key: key}
}

// Lookup returns the secret of a domain.
func (r *Redis) Lookup(ctx context.Context, domainName string) ([]byte, error) {
	secret, err := r.client.HGet(ctx, r.key, domainName).Bytes()
	if errors.Is(err, redis.Nil) || (err == nil && len(secret) == 0) {
		return nil, domain.ErrUnknownDomain.WithDetails(domainName)
	}
	if err != nil {
		return nil, domain.ErrStorage.WithDetails("redis credential lookup").WithCause(err)
	}
	return secret, nil
}
