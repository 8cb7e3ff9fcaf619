// Package preauth computes the pre-authentication signature of the BSS API.
//
// Signature Format:
//
//   - Message: "{domain}|{timestamp}" with timestamp in Unix seconds
//   - MAC: HMAC-SHA1 keyed by the domain's pre-shared secret
//   - Encoding: lowercase hex (40 characters)
//
// The signature proves possession of the secret for one domain at one
// instant. It is computed fresh for every Auth request and never stored.
package preauth
