package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/partage-bss-go/internal/core/domain"
	"github.com/yndnr/partage-bss-go/internal/infra/buildinfo"
	"github.com/yndnr/partage-bss-go/internal/telemetry/logger"
)

// DefaultBaseURL is the production address of the BSS domain API.
const DefaultBaseURL = "https://api.partage.renater.fr/service/domain"

// DefaultTimeout bounds a single API call.
const DefaultTimeout = 30 * time.Second

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20

// AuthPath is the method path of the Auth call.
const AuthPath = "/Auth"

// HTTPTransport provides HTTP communication with the BSS API.
type HTTPTransport struct {
	baseURL   string
	client    *http.Client
	decoder   Decoder
	limiter   *rate.Limiter
	userAgent string
}

// Option configures the HTTPTransport.
type Option func(*HTTPTransport)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(t *HTTPTransport) {
		if c != nil {
			t.client = c
		}
	}
}

// WithTimeout sets the per-call timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(t *HTTPTransport) {
		if d > 0 {
			t.client.Timeout = d
		}
	}
}

// WithTLSConfig sets the TLS configuration of the HTTP client. A client
// whose round tripper is not an *http.Transport is left unchanged.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(t *HTTPTransport) {
		var base *http.Transport
		switch rt := t.client.Transport.(type) {
		case nil:
			base = http.DefaultTransport.(*http.Transport)
		case *http.Transport:
			base = rt
		default:
			return
		}
		tr := base.Clone()
		tr.TLSClientConfig = cfg
		t.client.Transport = tr
	}
}

// WithDecoder sets the response decoder.
func WithDecoder(d Decoder) Option {
	return func(t *HTTPTransport) {
		t.decoder = d
	}
}

// WithRateLimit allows at most rps calls per second with the given burst.
// A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(t *HTTPTransport) {
		if rps <= 0 {
			t.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewHTTPTransport creates a transport for baseURL. A URL without scheme
// is taken as https.
func NewHTTPTransport(baseURL string, opts ...Option) (*HTTPTransport, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return nil, domain.ErrInvalidArgument.WithDetails(fmt.Sprintf("base url %q", baseURL))
	}

	t := &HTTPTransport{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: DefaultTimeout},
		decoder:   AutoDecoder{},
		userAgent: buildinfo.UserAgent(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// BaseURL returns the base URL of the API.
func (t *HTTPTransport) BaseURL() string {
	return t.baseURL
}

// Authenticate exchanges a signed request for a token.
func (t *HTTPTransport) Authenticate(ctx context.Context, req *domain.AuthRequest) (*domain.AuthResponse, error) {
	resp, err := t.Post(ctx, AuthPath, req.Form())
	if err != nil {
		return nil, err
	}
	return resp.ToAuthResponse()
}

// Call invokes an API method with a session token.
func (t *HTTPTransport) Call(ctx context.Context, method, token string, form url.Values) (*domain.Response, error) {
	method = strings.Trim(method, "/")
	if method == "" {
		return nil, domain.ErrInvalidArgument.WithDetails("empty method")
	}
	return t.Post(ctx, "/"+method+"/"+url.PathEscape(token), form)
}

// Post sends a form to path and decodes the answer.
func (t *HTTPTransport) Post(ctx context.Context, path string, form url.Values) (*domain.Response, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, domain.ErrTransport.WithDetails("rate limit wait").WithCause(err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, domain.ErrTransport.WithDetails("create request").WithCause(err)
	}
	t.addHeaders(ctx, req)

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, domain.ErrTransport.WithDetails("post").WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, domain.ErrTransport.WithDetails("read body").WithCause(err)
	}

	logger.L(ctx).Debug("bss api call",
		"method", methodName(path),
		"http_status", resp.StatusCode,
		"took", time.Since(start).String(),
	)

	out, err := t.decoder.Decode(body)
	if err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, domain.ErrTransport.WithDetails(fmt.Sprintf("http status %d", resp.StatusCode)).WithCause(err)
		}
		return nil, err
	}
	return out, nil
}

// addHeaders adds content type, user agent and request correlation headers.
func (t *HTTPTransport) addHeaders(ctx context.Context, req *http.Request) {
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/xml, application/json")
	req.Header.Set("User-Agent", t.userAgent)
	if id := logger.RequestIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}
}

// methodName strips the token segment from a call path for logging.
func methodName(path string) string {
	p := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return p
}
