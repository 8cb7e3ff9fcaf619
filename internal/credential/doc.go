// Package credential provides the sources of per-domain shared secrets.
//
// A source answers Lookup(ctx, domain) with the domain's secret, or
// domain.ErrUnknownDomain when it holds none. Backend failures are reported
// as domain.ErrStorage so callers can tell "not registered" from "could not
// ask".
//
//   - Static: in-memory map, usually filled from configuration
//   - Redis: one hash field per domain
//   - Postgres: a parameterized query returning the secret
//   - Chain: the first source that knows the domain
package credential
