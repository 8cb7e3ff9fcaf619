package credential

import (
	"context"
	"errors"

	"github.com/yndnr/partage-bss-go/internal/core/domain"
)

// Source is anything that can look a domain secret up.
type Source interface {
	Lookup(ctx context.Context, domainName string) ([]byte, error)
}

// Chain asks each source in order and returns the first secret found.
// A backend error stops the chain: a later source must not shadow a
// secret the failing one may hold.
type Chain []Source

// Lookup returns the secret of a domain.
func (c Chain) Lookup(ctx context.Context, domainName string) ([]byte, error) {
	for _, src := range c {
		secret, err := src.Lookup(ctx, domainName)
		if err == nil {
			return secret, nil
		}
		if !errors.Is(err, domain.ErrUnknownDomain) {
			return nil, err
		}
	}
	return nil, domain.ErrUnknownDomain.WithDetails(domainName)
}
