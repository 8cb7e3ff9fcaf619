package bss

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"

	"github.com/yndnr/partage-bss-go/internal/config"
	"github.com/yndnr/partage-bss-go/internal/core/domain"
	"github.com/yndnr/partage-bss-go/internal/core/service"
	"github.com/yndnr/partage-bss-go/internal/credential"
	"github.com/yndnr/partage-bss-go/internal/infra/confloader"
	"github.com/yndnr/partage-bss-go/internal/infra/tlsroots"
	"github.com/yndnr/partage-bss-go/internal/storage/memory"
	"github.com/yndnr/partage-bss-go/internal/storage/redisstore"
	"github.com/yndnr/partage-bss-go/internal/telemetry/logger"
	"github.com/yndnr/partage-bss-go/internal/telemetry/metric"
	"github.com/yndnr/partage-bss-go/internal/transport"
)

// connectTimeout bounds the backend checks made by New.
const connectTimeout = 10 * time.Second

// Client talks to the BSS domain API on behalf of registered domains.
// It is safe for concurrent use.
type Client struct {
	cache     *service.TokenCache
	transport *transport.HTTPTransport
	log       logger.Logger

	mu      sync.Mutex
	closers []func() error
	closed  bool
}

// New builds a client from cfg. A nil cfg selects DefaultConfig.
//
// Backends named by cfg (Redis, PostgreSQL) are connected and checked
// before New returns.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	log := o.logger
	if log == nil {
		l, err := logger.New(cfg.Log)
		if err != nil {
			return nil, domain.ErrInvalidArgument.WithDetails("logger").WithCause(err)
		}
		log = l
	}

	c := &Client{log: log}
	ready := false
	defer func() {
		if !ready {
			c.Close()
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	creds, err := c.credentialSource(ctx, cfg, o.creds)
	if err != nil {
		return nil, err
	}
	store, err := c.tokenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c.transport, err = newTransport(cfg, o.httpClient)
	if err != nil {
		return nil, err
	}

	cacheOpts := []service.TokenCacheOption{
		service.WithWindow(cfg.Cache.Window),
		service.WithLogger(log),
	}
	if o.clock != nil {
		cacheOpts = append(cacheOpts, service.WithClock(o.clock))
	}
	if o.registerer != nil {
		m, err := metric.New(o.registerer)
		if err != nil {
			return nil, domain.ErrInvalidArgument.WithDetails("metrics registerer").WithCause(err)
		}
		cacheOpts = append(cacheOpts, service.WithRecorder(m))
		if counted, ok := store.(interface{ Len() int }); ok {
			remove, err := metric.RegisterCollector(o.registerer, counted.Len)
			if err != nil {
				return nil, domain.ErrInvalidArgument.WithDetails("metrics registerer").WithCause(err)
			}
			c.onClose(func() error {
				remove()
				return nil
			})
		}
	}
	c.cache = service.NewTokenCache(creds, c.transport, store, cacheOpts...)

	log.Debug("bss client ready",
		"api", c.transport.BaseURL(),
		"cache", cfg.Cache.Backend,
		"credentials", cfg.Credentials.Source,
		"window", cfg.Cache.Window.String(),
	)
	ready = true
	return c, nil
}

func (c *Client) credentialSource(ctx context.Context, cfg *Config, injected CredentialSource) (service.CredentialSource, error) {
	var src service.CredentialSource

	switch cfg.Credentials.Source {
	case config.SourceRedis:
		rc := redis.NewClient(&redis.Options{
			Addr:     cfg.Credentials.Redis.Addr,
			Password: cfg.Credentials.Redis.Password,
			DB:       cfg.Credentials.Redis.DB,
		})
		c.onClose(rc.Close)
		if err := rc.Ping(ctx).Err(); err != nil {
			return nil, domain.ErrStorage.WithDetails("credential redis").WithCause(err)
		}
		src = credential.NewRedis(rc, cfg.Credentials.Redis.Key)
	case config.SourcePostgres:
		pg, err := credential.OpenPostgres(ctx, cfg.Credentials.Postgres.DSN, cfg.Credentials.Postgres.Query)
		if err != nil {
			return nil, domain.ErrStorage.WithDetails("credential postgres").WithCause(err)
		}
		c.onClose(pg.Close)
		src = pg
	default:
		static, err := credential.NewStatic(cfg.Credentials.Secrets())
		if err != nil {
			return nil, err
		}
		src = static
	}

	if injected != nil {
		return credential.Chain{injected, src}, nil
	}
	return src, nil
}

func (c *Client) tokenStore(ctx context.Context, cfg *Config) (service.TokenStore, error) {
	if cfg.Cache.Backend != config.BackendRedis {
		return memory.NewTokenStore(), nil
	}

	rc := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
	})
	c.onClose(rc.Close)
	if err := rc.Ping(ctx).Err(); err != nil {
		return nil, domain.ErrStorage.WithDetails("token redis").WithCause(err)
	}
	return redisstore.NewTokenStore(rc,
		redisstore.WithKeyPrefix(cfg.Cache.Redis.Prefix),
		redisstore.WithTTL(cfg.Cache.Redis.TTL),
	), nil
}

func newTransport(cfg *Config, hc *http.Client) (*transport.HTTPTransport, error) {
	var opts []transport.Option
	if hc != nil {
		cp := *hc
		opts = append(opts, transport.WithHTTPClient(&cp))
	}
	if cfg.API.CAFile != "" {
		tlsCfg, err := tlsroots.ClientTLSConfig(cfg.API.CAFile)
		if err != nil {
			return nil, domain.ErrInvalidArgument.WithDetails("api.cafile").WithCause(err)
		}
		opts = append(opts, transport.WithTLSConfig(tlsCfg))
	}
	opts = append(opts,
		transport.WithTimeout(cfg.API.Timeout),
		transport.WithDecoder(transport.NewDecoder(transport.Format(strings.ToLower(cfg.API.Format)))),
		transport.WithRateLimit(cfg.API.Rate, cfg.API.Burst),
	)
	return transport.NewHTTPTransport(cfg.API.URL, opts...)
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.transport.BaseURL()
}

// Token returns a valid token for domainName, requesting a new one when
// the cached token is 270 seconds old or more.
func (c *Client) Token(ctx context.Context, domainName string) (string, error) {
	return c.cache.GetToken(c.withLogger(ctx), domainName)
}

// Refresh discards the age of the cached token and requests a new one.
func (c *Client) Refresh(ctx context.Context, domainName string) (string, error) {
	return c.cache.Refresh(c.withLogger(ctx), domainName)
}

// Call invokes an API method such as "GetAccount" for domainName with the
// given form fields.
//
// A response with a nonzero status is returned together with an
// ErrRemoteCall carrying the server message.
func (c *Client) Call(ctx context.Context, domainName, method string, fields url.Values) (*Response, error) {
	if logger.RequestIDFromContext(ctx) == "" {
		ctx = logger.WithRequestID(ctx, ulid.Make().String())
	}
	ctx = c.withLogger(ctx)

	token, err := c.cache.GetToken(ctx, domainName)
	if err != nil {
		return nil, err
	}

	resp, err := c.transport.Call(ctx, method, token, fields)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return resp, domain.ErrRemoteCall.WithDetails(resp.Message)
	}
	return resp, nil
}

// WatchConfig applies the log level of the file at path each time it is
// written. Other settings require a new Client. Watching stops when ctx is
// done or the client is closed.
func (c *Client) WatchConfig(ctx context.Context, path string) error {
	w, err := confloader.NewWatcher(path, confloader.WithWatcherLogger(c.log))
	if err != nil {
		return domain.ErrInvalidArgument.WithDetails("watch " + path).WithCause(err)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		w.Close()
		return domain.ErrInvalidArgument.WithDetails("client closed")
	}
	c.closers = append(c.closers, w.Close)
	c.mu.Unlock()

	w.OnChange(func(string) {
		cfg, err := config.Load(path)
		if err != nil {
			c.log.Warn("config reload failed", "path", path, "error", err)
			return
		}
		logger.SetLevel(c.log, cfg.Log.Level)
		c.log.Info("log level reloaded", "level", cfg.Log.Level)
	})
	go w.Run(ctx)
	return nil
}

// Close releases the backend connections. It is safe to call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *Client) onClose(fn func() error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closers = append(c.closers, fn)
}

// withLogger routes the logs of a call to the client logger.
func (c *Client) withLogger(ctx context.Context) context.Context {
	return logger.WithLogger(ctx, c.log)
}
