package credential

import (
	"context"
	"sort"

	"github.com/yndnr/partage-bss-go/internal/core/domain"
)

// Static is an immutable in-memory credential source.
type Static struct {
	secrets map[string][]byte
}

// NewStatic builds a source from domain/secret pairs.
// Every domain must be valid and every secret non-empty.
func NewStatic(secrets map[string]string) (*Static, error) {
	s := &Static{secrets: make(map[string][]byte, len(secrets))}
	for name, secret := range secrets {
		c, err := domain.NewCredential(name, []byte(secret))
		if err != nil {
			return nil, err
		}
		s.secrets[c.Domain] = c.Secret
	}
	return s, nil
}

// Lookup returns the secret of a domain.
func (s *Static) Lookup(_ context.Context, domainName string) ([]byte, error) {
	secret, ok := s.secrets[domainName]
	if !ok {
		return nil, domain.ErrUnknownDomain.WithDetails(domainName)
	}
	return secret, nil
}

// Domains lists the registered domains in lexical order.
func (s *Static) Domains() []string {
	names := make([]string, 0, len(s.secrets))
	for name := range s.secrets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
