package config

import (
	"net/url"
	"slices"
	"strings"
)

// Sanitize returns a copy of cfg safe to log: secrets, passwords and the
// DSN password are masked.
func Sanitize(cfg *Config) *Config {
	s := *cfg

	s.Credentials.Static = slices.Clone(cfg.Credentials.Static)
	for i := range s.Credentials.Static {
		s.Credentials.Static[i].Secret = maskSecret(s.Credentials.Static[i].Secret)
	}
	s.Cache.Redis.Password = maskSecret(s.Cache.Redis.Password)
	s.Credentials.Redis.Password = maskSecret(s.Credentials.Redis.Password)
	s.Credentials.Postgres.DSN = maskDSN(s.Credentials.Postgres.DSN)

	return &s
}

func maskSecret(v string) string {
	if v == "" {
		return ""
	}
	if len(v) <= 4 {
		return "****"
	}
	return v[:2] + strings.Repeat("*", len(v)-4) + v[len(v)-2:]
}

// maskDSN hides the password of a URL DSN. Key/value DSNs are masked whole.
func maskDSN(dsn string) string {
	if dsn == "" {
		return ""
	}
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		return "****"
	}
	return u.Redacted()
}
