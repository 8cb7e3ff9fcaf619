package service

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/partage-bss-go/internal/core/domain"
	"github.com/yndnr/partage-bss-go/internal/telemetry/logger"
	"github.com/yndnr/partage-bss-go/pkg/cmap"
	"github.com/yndnr/partage-bss-go/pkg/preauth"
)

// CredentialSource resolves the shared secret of a domain.
// It returns domain.ErrUnknownDomain when the domain is not registered.
type CredentialSource interface {
	Lookup(ctx context.Context, domainName string) ([]byte, error)
}

// Authenticator exchanges a signed request for a token.
type Authenticator interface {
	Authenticate(ctx context.Context, req *domain.AuthRequest) (*domain.AuthResponse, error)
}

// TokenStore persists one CachedToken per domain.
//
// Save must refuse a token issued before the one it holds and report
// whether the token was stored.
type TokenStore interface {
	Load(ctx context.Context, domainName string) (*domain.CachedToken, bool, error)
	Save(ctx context.Context, tok *domain.CachedToken) (bool, error)
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// Recorder receives token cache events.
type Recorder interface {
	ObserveHit(domainName string)
	ObserveRefresh(domainName string, took time.Duration, err error)
	ObserveFailure(domainName string, err error)
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type nopRecorder struct{}

func (nopRecorder) ObserveHit(string)                           {}
func (nopRecorder) ObserveRefresh(string, time.Duration, error) {}
func (nopRecorder) ObserveFailure(string, error)                {}

// TokenCache returns a valid token per domain, refreshing it when stale.
type TokenCache struct {
	creds    CredentialSource
	auth     Authenticator
	store    TokenStore
	clock    Clock
	recorder Recorder
	log      logger.Logger
	window   time.Duration

	secrets *cmap.Map[[]byte]
}

// TokenCacheOption configures a TokenCache.
type TokenCacheOption func(*TokenCache)

// WithClock sets the time source used by GetToken and Refresh.
func WithClock(c Clock) TokenCacheOption {
	return func(tc *TokenCache) {
		if c != nil {
			tc.clock = c
		}
	}
}

// WithWindow sets how long a token is served from the cache.
func WithWindow(d time.Duration) TokenCacheOption {
	return func(tc *TokenCache) {
		if d > 0 {
			tc.window = d
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) TokenCacheOption {
	return func(tc *TokenCache) {
		if r != nil {
			tc.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) TokenCacheOption {
	return func(tc *TokenCache) {
		if l != nil {
			tc.log = l
		}
	}
}

// NewTokenCache creates a TokenCache.
func NewTokenCache(creds CredentialSource, auth Authenticator, store TokenStore, opts ...TokenCacheOption) *TokenCache {
	tc := &TokenCache{
		creds:    creds,
		auth:     auth,
		store:    store,
		clock:    systemClock{},
		recorder: nopRecorder{},
		log:      logger.Discard(),
		window:   domain.DefaultFreshnessWindow,
		secrets:  cmap.New[[]byte](),
	}
	for _, opt := range opts {
		opt(tc)
	}
	return tc
}

// Window returns the freshness window.
func (tc *TokenCache) Window() time.Duration {
	return tc.window
}

// GetToken returns a token for domainName, valid at the current time.
func (tc *TokenCache) GetToken(ctx context.Context, domainName string) (string, error) {
	return tc.TokenAt(ctx, domainName, tc.clock.Now())
}

// TokenAt returns a token for domainName as seen at now.
//
// A cached token younger than the window is returned without a network
// call. Otherwise a new token is requested and cached. On failure the
// cached entry is left as it was.
func (tc *TokenCache) TokenAt(ctx context.Context, domainName string, now time.Time) (string, error) {
	if err := domain.ValidateDomain(domainName); err != nil {
		tc.recorder.ObserveFailure("", err)
		return "", err
	}

	secret, err := tc.secret(ctx, domainName)
	if err != nil {
		tc.recorder.ObserveFailure(domainName, err)
		return "", err
	}

	cached, ok, err := tc.store.Load(ctx, domainName)
	if err != nil {
		err = asStorageError(err, "load token")
		tc.recorder.ObserveFailure(domainName, err)
		return "", err
	}
	if ok && cached.IsFresh(now, tc.window) {
		tc.recorder.ObserveHit(domainName)
		return cached.Token, nil
	}

	return tc.refresh(ctx, domainName, secret, now)
}

// Refresh requests a new token for domainName regardless of the age of
// the cached one. Use it when the server rejected a cached token.
func (tc *TokenCache) Refresh(ctx context.Context, domainName string) (string, error) {
	if err := domain.ValidateDomain(domainName); err != nil {
		tc.recorder.ObserveFailure("", err)
		return "", err
	}
	secret, err := tc.secret(ctx, domainName)
	if err != nil {
		tc.recorder.ObserveFailure(domainName, err)
		return "", err
	}
	return tc.refresh(ctx, domainName, secret, tc.clock.Now())
}

func (tc *TokenCache) refresh(ctx context.Context, domainName string, secret []byte, now time.Time) (string, error) {
	if logger.RequestIDFromContext(ctx) == "" {
		ctx = logger.WithRequestID(ctx, ulid.Make().String())
	}
	ctx = logger.WithLogger(ctx, tc.log)
	log := logger.L(ctx).With("domain", domainName)

	ts := now.Unix()
	req := &domain.AuthRequest{
		Domain:    domainName,
		Timestamp: ts,
		Preauth:   preauth.Sign(secret, domainName, ts),
	}

	start := time.Now()
	token, err := tc.authenticate(ctx, req)
	took := time.Since(start)
	if err != nil {
		tc.recorder.ObserveRefresh(domainName, took, err)
		log.Warn("token refresh failed", "error", err)
		return "", err
	}

	stored, err := tc.store.Save(ctx, domain.NewCachedToken(domainName, token, now))
	if err != nil {
		err = asStorageError(err, "save token")
		tc.recorder.ObserveRefresh(domainName, took, err)
		log.Error("token store write failed", "error", err)
		return "", err
	}
	tc.recorder.ObserveRefresh(domainName, took, nil)
	if !stored {
		log.Debug("newer token already cached")
	}

	log.Info("token refreshed", "timestamp", ts)
	return token, nil
}

func (tc *TokenCache) authenticate(ctx context.Context, req *domain.AuthRequest) (string, error) {
	resp, err := tc.auth.Authenticate(ctx, req)
	if err != nil {
		if domain.IsDomainError(err, "") {
			return "", err
		}
		return "", domain.ErrTransport.WithCause(err)
	}
	if !resp.OK() {
		return "", domain.ErrAuthentication.WithDetails(resp.Message)
	}
	if resp.Token == "" {
		return "", domain.ErrTransport.WithDetails("auth response missing token")
	}
	return resp.Token, nil
}

// secret returns the memoized secret of domainName. Unknown domains are
// not memoized so that a later registration is picked up.
func (tc *TokenCache) secret(ctx context.Context, domainName string) ([]byte, error) {
	if s, ok := tc.secrets.Get(domainName); ok {
		return s, nil
	}

	s, err := tc.creds.Lookup(ctx, domainName)
	if err != nil {
		if domain.IsDomainError(err, "") {
			return nil, err
		}
		return nil, domain.ErrStorage.WithDetails("credential lookup").WithCause(err)
	}
	if len(s) == 0 {
		return nil, domain.ErrUnknownDomain.WithDetails(domainName)
	}
	s, _ = tc.secrets.GetOrSet(domainName, s)
	return s, nil
}

func asStorageError(err error, op string) error {
	if errors.Is(err, domain.ErrStorage) {
		return err
	}
	return domain.ErrStorage.WithDetails(op).WithCause(err)
}
