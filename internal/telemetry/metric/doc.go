// Package metric provides Prometheus metrics for the BSS client.
//
//   - prometheus.go: token request, refresh and failure metrics
//   - collector.go: a collector reporting the number of cached domains
//
// Metrics are registered on a caller-supplied prometheus.Registerer. Clients
// sharing a registerer share the series, and the cached domains gauge sums
// their stores.
package metric
