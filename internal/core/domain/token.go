package domain

import "time"

// Token timing constants.
const (
	// TokenLifetime is how long the API honours an issued token.
	TokenLifetime = 300 * time.Second

	// DefaultFreshnessWindow is the age below which a cached token is reused.
	// It leaves a 30 second margin before TokenLifetime.
	DefaultFreshnessWindow = 270 * time.Second
)

// CachedToken is the last token issued for a domain.
type CachedToken struct {
	Domain   string
	Token    string
	IssuedAt time.Time
}

// NewCachedToken creates an entry issued at now, truncated to whole seconds
// so that IssuedAt matches the signed request timestamp.
func NewCachedToken(domain, token string, now time.Time) *CachedToken {
	return &CachedToken{
		Domain:   domain,
		Token:    token,
		IssuedAt: time.Unix(now.Unix(), 0),
	}
}

// Age returns the time elapsed since the token was issued.
func (t *CachedToken) Age(now time.Time) time.Duration {
	return now.Sub(t.IssuedAt)
}

// IsFresh reports whether the token is younger than window at now.
// A nil entry is never fresh.
func (t *CachedToken) IsFresh(now time.Time, window time.Duration) bool {
	if t == nil || t.Token == "" {
		return false
	}
	return t.Age(now) < window
}

// NotOlderThan reports whether t was issued at or after other.
// Stores use it to keep IssuedAt monotonically non-decreasing.
func (t *CachedToken) NotOlderThan(other *CachedToken) bool {
	if other == nil {
		return true
	}
	return !t.IssuedAt.Before(other.IssuedAt)
}
