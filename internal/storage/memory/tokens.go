package memory

import (
	"context"

	"github.com/yndnr/partage-bss-go/internal/core/domain"
	"github.com/yndnr/partage-bss-go/pkg/cmap"
)

// TokenStore keeps one CachedToken per domain in memory.
// Its lifetime is that of the owning client.
type TokenStore struct {
	tokens *cmap.Map[*domain.CachedToken]
}

// NewTokenStore creates an empty store.
func NewTokenStore() *TokenStore {
	return &TokenStore{tokens: cmap.New[*domain.CachedToken]()}
}

// Load returns the cached token of a domain.
func (s *TokenStore) Load(_ context.Context, domainName string) (*domain.CachedToken, bool, error) {
	tok, ok := s.tokens.Get(domainName)
	if !ok {
		return nil, false, nil
	}
	cp := *tok
	return &cp, true, nil
}

// Save stores tok unless a token issued later is already cached.
func (s *TokenStore) Save(_ context.Context, tok *domain.CachedToken) (bool, error) {
	cp := *tok
	return s.tokens.SetIf(tok.Domain, &cp, func(existing *domain.CachedToken) bool {
		return cp.NotOlderThan(existing)
	}), nil
}

// Len returns the number of domains with a cached token.
func (s *TokenStore) Len() int {
	return s.tokens.Count()
}
