package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/partage-bss-go/internal/core/domain"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.API.URL != "https://api.partage.renater.fr/service/domain" {
		t.Errorf("API.URL = %q", cfg.API.URL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("API.Timeout = %v", cfg.API.Timeout)
	}
	if cfg.Cache.Window != 270*time.Second {
		t.Errorf("Cache.Window = %v, want 270s", cfg.Cache.Window)
	}
	if cfg.Cache.Backend != BackendMemory || cfg.Credentials.Source != SourceStatic {
		t.Errorf("backend = %q, source = %q", cfg.Cache.Backend, cfg.Credentials.Source)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad url", func(c *Config) { c.API.URL = "ftp://x.org" }, "api.url scheme"},
		{"negative rate", func(c *Config) { c.API.Rate = -1 }, "api.rate"},
		{"rate without burst", func(c *Config) { c.API.Rate = 5; c.API.Burst = 0 }, "api.burst"},
		{"unknown format", func(c *Config) { c.API.Format = "soap" }, "api.format"},
		{"zero window", func(c *Config) { c.Cache.Window = 0 }, "cache.window must be positive"},
		{"window beyond lifetime", func(c *Config) { c.Cache.Window = 301 * time.Second }, "exceeds the token lifetime"},
		{"unknown backend", func(c *Config) { c.Cache.Backend = "badger" }, "cache.backend"},
		{"redis without addr", func(c *Config) { c.Cache.Backend = BackendRedis; c.Cache.Redis.Addr = "" }, "cache.redis.addr"},
		{"bad static domain", func(c *Config) {
			c.Credentials.Static = []StaticCredential{{Domain: "not a domain", Secret: "k"}}
		}, "credentials.static[0]"},
		{"empty static secret", func(c *Config) {
			c.Credentials.Static = []StaticCredential{{Domain: "example.org"}}
		}, "empty secret"},
		{"duplicate static domain", func(c *Config) {
			c.Credentials.Static = []StaticCredential{{"example.org", "a"}, {"example.org", "b"}}
		}, "duplicate domain"},
		{"postgres without dsn", func(c *Config) { c.Credentials.Source = SourcePostgres }, "credentials.postgres.dsn"},
		{"postgres query without placeholder", func(c *Config) {
			c.Credentials.Source = SourcePostgres
			c.Credentials.Postgres.DSN = "postgres://localhost/bss"
			c.Credentials.Postgres.Query = "SELECT 1"
		}, "$1"},
		{"unknown source", func(c *Config) { c.Credentials.Source = "json" }, "credentials.source"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, domain.ErrInvalidArgument) {
				t.Fatalf("Validate() error = %v, want ErrInvalidArgument", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() error = %q, want it to mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.API.Format = "soap"
	cfg.Cache.Backend = "badger"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	for _, want := range []string{"api.format", "cache.backend"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err.Error(), want)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bss.yaml")
	content := `
api:
  url: "https://bss.example.org/service/domain"
  format: xml
cache:
  backend: redis
  redis:
    addr: "redis:6379"
credentials:
  source: static
  static:
    - domain: example.org
      secret: s3cr3t
    - domain: univ.example.fr
      secret: other
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("BSS_CACHE_WINDOW", "200s")
	t.Setenv("BSS_API_RATE", "10")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.URL != "https://bss.example.org/service/domain" || cfg.API.Format != "xml" {
		t.Errorf("API = %+v", cfg.API)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("API.Timeout = %v, default should survive", cfg.API.Timeout)
	}
	if cfg.API.Rate != 10 {
		t.Errorf("API.Rate = %v, want 10 from env", cfg.API.Rate)
	}
	if cfg.Cache.Window != 200*time.Second {
		t.Errorf("Cache.Window = %v, want 200s from env", cfg.Cache.Window)
	}
	if cfg.Cache.Redis.Addr != "redis:6379" || cfg.Cache.Redis.Prefix != "bss:token:" {
		t.Errorf("Cache.Redis = %+v", cfg.Cache.Redis)
	}
	secrets := cfg.Credentials.Secrets()
	if len(secrets) != 2 || secrets["example.org"] != "s3cr3t" {
		t.Errorf("Secrets() = %v", secrets)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bss.yaml")
	if err := os.WriteFile(path, []byte("cache:\n  backend: badger\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := Load(path); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("Load() error = %v, want ErrInvalidArgument", err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("Load(missing) error = %v, want ErrInvalidArgument", err)
	}
}

func TestSanitize(t *testing.T) {
	cfg := Default()
	cfg.Credentials.Static = []StaticCredential{{Domain: "example.org", Secret: "s3cr3tvalue"}}
	cfg.Cache.Redis.Password = "hunter2hunter2"
	cfg.Credentials.Postgres.DSN = "postgres://bss:pgpass@db:5432/bss?sslmode=disable"

	s := Sanitize(cfg)

	if s.Credentials.Static[0].Secret == "s3cr3tvalue" {
		t.Error("static secret not masked")
	}
	if cfg.Credentials.Static[0].Secret != "s3cr3tvalue" {
		t.Error("Sanitize must not modify the original")
	}
	if s.Cache.Redis.Password == "hunter2hunter2" {
		t.Error("redis password not masked")
	}
	if strings.Contains(s.Credentials.Postgres.DSN, "pgpass") {
		t.Errorf("DSN = %q, password should be hidden", s.Credentials.Postgres.DSN)
	}
	if !strings.Contains(s.Credentials.Postgres.DSN, "db:5432") {
		t.Errorf("DSN = %q, host should be kept", s.Credentials.Postgres.DSN)
	}
	if got := maskDSN("host=db password=x"); got != "****" {
		t.Errorf("maskDSN(key/value) = %q", got)
	}
}
