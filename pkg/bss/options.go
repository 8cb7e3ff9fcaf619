package bss

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/partage-bss-go/internal/telemetry/logger"
)

// Logger is the logging interface used by the client.
type Logger = logger.Logger

// CredentialSource resolves the preauth secret of a domain. It must return
// an error matching ErrUnknownDomain for domains it does not know.
type CredentialSource interface {
	Lookup(ctx context.Context, domainName string) ([]byte, error)
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

type options struct {
	logger     Logger
	registerer prometheus.Registerer
	clock      Clock
	httpClient *http.Client
	creds      CredentialSource
}

// Option configures a Client.
type Option func(*options)

// WithLogger sets the logger. By default one is built from Config.Log.
func WithLogger(l Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithRegisterer registers the client metrics on reg. Without it no
// metrics are exported.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithClock sets the time source used for token age and signing.
func WithClock(c Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithHTTPClient replaces the HTTP client. Config.API.Timeout is then
// applied to it.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithCredentialSource consults src before the configured source.
func WithCredentialSource(src CredentialSource) Option {
	return func(o *options) {
		o.creds = src
	}
}
