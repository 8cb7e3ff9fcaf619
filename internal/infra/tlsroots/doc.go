// Package tlsroots builds the set of CAs trusted for outbound HTTPS.
//
// The system pool is extended with PEM bundles, for deployments where the
// API is reached through a proxy or a private certificate authority.
package tlsroots
