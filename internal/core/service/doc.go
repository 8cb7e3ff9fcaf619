// Package service provides the token cache of the BSS client.
//
// TokenCache hands out a session token per domain. A cached token is reused
// while it is younger than the freshness window; otherwise a signed Auth
// request is sent and the new token replaces the cached one. Storage, the
// credential backend and the network are injected as interfaces defined
// here, next to their only consumer.
package service
