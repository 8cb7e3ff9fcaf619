// Package redisstore provides a token store shared through Redis.
//
// Each domain is a hash at {prefix}{domain} with the fields token and
// issued_at (Unix seconds).
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yndnr/partage-bss-go/internal/core/domain"
)

// DefaultKeyPrefix is the key prefix of token hashes.
const DefaultKeyPrefix = "bss:token:"

const (
	fieldToken    = "token"
	fieldIssuedAt = "issued_at"
)

// saveScript writes the hash unless the stored issued_at is newer.
// KEYS[1]=key ARGV[1]=token ARGV[2]=issued_at ARGV[3]=ttl seconds (0 = none)
var saveScript = redis.NewScript(`
local cur = redis.call('HGET', KEYS[1], 'issued_at')
if cur and tonumber(cur) > tonumber(ARGV[2]) then
	return 0
end
redis.call('HSET', KEYS[1], 'token', ARGV[1], 'issued_at', ARGV[2])
if tonumber(ARGV[3]) > 0 then
	redis.call('EXPIRE', KEYS[1], ARGV[3])
end
return 1
`)

// TokenStore keeps one CachedToken per domain in Redis.
type TokenStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// Option configures the TokenStore.
type Option func(*TokenStore)

// WithKeyPrefix sets the key prefix.
func WithKeyPrefix(prefix string) Option {
	return func(s *TokenStore) {
		s.prefix = prefix
	}
}

// WithTTL expires entries ttl after their last write. Zero keeps them.
func WithTTL(ttl time.Duration) Option {
	return func(s *TokenStore) {
		s.ttl = ttl
	}
}

// NewTokenStore creates a store on an existing client.
// The caller owns the client.
func NewTokenStore(client redis.UniversalClient, opts ...Option) *TokenStore {
	s := &TokenStore{
		client: client,
		prefix: DefaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TokenStore) key(domainName string) string {
	return s.prefix + domainName
}

// Load returns the cached token of a domain.
func (s *TokenStore) Load(ctx context.Context, domainName string) (*domain.CachedToken, bool, error) {
	vals, err := s.client.HMGet(ctx, s.key(domainName), fieldToken, fieldIssuedAt).Result()
	if err != nil {
		return nil, false, fmt.Errorf("redis hmget %s: %w", domainName, err)
	}

	token, _ := vals[0].(string)
	issued, _ := vals[1].(string)
	if token == "" || issued == "" {
		return nil, false, nil
	}

	secs, err := strconv.ParseInt(issued, 10, 64)
	if err != nil {
		return nil, false, fmt.Errorf("redis %s: bad issued_at %q: %w", domainName, issued, err)
	}

	return &domain.CachedToken{
		Domain:   domainName,
		Token:    token,
		IssuedAt: time.Unix(secs, 0),
	}, true, nil
}

// Save stores tok unless a token issued later is already cached.
func (s *TokenStore) Save(ctx context.Context, tok *domain.CachedToken) (bool, error) {
	if tok == nil || tok.Token == "" {
		return false, errors.New("redis save: empty token")
	}

	res, err := saveScript.Run(ctx, s.client,
		[]string{s.key(tok.Domain)},
		tok.Token, tok.IssuedAt.Unix(), int64(s.ttl/time.Second),
	).Int()
	if err != nil {
		return false, fmt.Errorf("redis save %s: %w", tok.Domain, err)
	}
	return res == 1, nil
}

// Len counts the token hashes under the store prefix.
func (s *TokenStore) Len() int {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	n := 0
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		n++
	}
	if iter.Err() != nil {
		return 0
	}
	return n
}
