package domain

import "regexp"

// MaxDomainLength is the maximum length of a fully qualified domain name.
const MaxDomainLength = 253

// domainPattern matches dot-separated labels of letters, digits and inner
// hyphens, ending with an alphabetic TLD of at least two characters.
var domainPattern = regexp.MustCompile(
	`^(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,63}$`,
)

// IsDomain reports whether name is a syntactically valid domain name.
func IsDomain(name string) bool {
	if name == "" || len(name) > MaxDomainLength {
		return false
	}
	return domainPattern.MatchString(name)
}

// ValidateDomain returns ErrInvalidDomain when name is not a valid domain name.
func ValidateDomain(name string) error {
	if !IsDomain(name) {
		return ErrInvalidDomain.WithDetails(quote(name))
	}
	return nil
}

// Credential is the pre-shared secret of one domain.
type Credential struct {
	Domain string
	Secret []byte
}

// NewCredential validates the domain and copies the secret.
func NewCredential(name string, secret []byte) (*Credential, error) {
	if err := ValidateDomain(name); err != nil {
		return nil, err
	}
	if len(secret) == 0 {
		return nil, ErrInvalidArgument.WithDetails("empty secret for " + name)
	}
	s := make([]byte, len(secret))
	copy(s, secret)
	return &Credential{Domain: name, Secret: s}, nil
}

func quote(s string) string {
	return `"` + s + `"`
}
