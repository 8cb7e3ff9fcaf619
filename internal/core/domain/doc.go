// Package domain defines the core domain models for the BSS client.
//
// Domain models are plain values without IO dependencies:
//
//   - Credential: a domain name and its pre-shared secret
//   - CachedToken: the last token issued for a domain and its issue time
//   - AuthRequest / AuthResponse: the signed Auth exchange
//   - Response: the normalized result of any API call
//   - Errors: coded errors shared by every layer
package domain
