package metric

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/partage-bss-go/internal/core/domain"
)

const namespace = "bss"

// Token request results.
const (
	ResultHit     = "hit"
	ResultRefresh = "refresh"
	ResultError   = "error"
)

// Refresh failure reasons.
const (
	ReasonInvalidDomain = "invalid_domain"
	ReasonUnknownDomain = "unknown_domain"
	ReasonAuth          = "auth"
	ReasonTransport     = "transport"
	ReasonStorage       = "storage"
	ReasonOther         = "other"
)

// Metrics holds the token cache metrics.
type Metrics struct {
	TokenRequests   *prometheus.CounterVec
	RefreshFailures *prometheus.CounterVec
	RefreshDuration prometheus.Histogram
}

// New creates the token cache metrics and registers them on reg.
// A nil reg leaves the metrics unregistered.
//
// Metrics already registered on reg, by another client for instance, are
// reused so that every client sharing reg reports into the same series.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		TokenRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "token",
			Name:      "requests_total",
			Help:      "Token requests by domain and result (hit, refresh, error).",
		}, []string{"domain", "result"}),
		RefreshFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "token",
			Name:      "refresh_failures_total",
			Help:      "Failed token requests by domain and reason.",
		}, []string{"domain", "reason"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "token",
			Name:      "refresh_duration_seconds",
			Help:      "Latency of Auth calls made to refresh a token.",
			Buckets:   []float64{.025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}),
	}
	if reg == nil {
		return m, nil
	}

	var err error
	if m.TokenRequests, err = register(reg, m.TokenRequests); err != nil {
		return nil, err
	}
	if m.RefreshFailures, err = register(reg, m.RefreshFailures); err != nil {
		return nil, err
	}
	if m.RefreshDuration, err = register(reg, m.RefreshDuration); err != nil {
		return nil, err
	}
	return m, nil
}

// register adds c to reg, or returns the equivalent collector reg
// already holds.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, err
}

// ObserveHit records a token served from the cache.
func (m *Metrics) ObserveHit(domainName string) {
	m.TokenRequests.WithLabelValues(domainName, ResultHit).Inc()
}

// ObserveRefresh records the outcome of a refresh that reached the network.
func (m *Metrics) ObserveRefresh(domainName string, took time.Duration, err error) {
	m.RefreshDuration.Observe(took.Seconds())
	if err != nil {
		m.ObserveFailure(domainName, err)
		return
	}
	m.TokenRequests.WithLabelValues(domainName, ResultRefresh).Inc()
}

// ObserveFailure records a failed token request.
func (m *Metrics) ObserveFailure(domainName string, err error) {
	m.TokenRequests.WithLabelValues(domainName, ResultError).Inc()
	m.RefreshFailures.WithLabelValues(domainName, Reason(err)).Inc()
}

// Reason maps an error to a failure reason label.
func Reason(err error) string {
	switch domain.GetErrorCode(err) {
	case domain.ErrInvalidDomain.Code:
		return ReasonInvalidDomain
	case domain.ErrUnknownDomain.Code:
		return ReasonUnknownDomain
	case domain.ErrAuthentication.Code:
		return ReasonAuth
	case domain.ErrTransport.Code:
		return ReasonTransport
	case domain.ErrStorage.Code:
		return ReasonStorage
	default:
		return ReasonOther
	}
}
