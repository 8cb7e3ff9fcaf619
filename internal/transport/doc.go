// Package transport talks to the BSS HTTP API.
//
// Requests are form-encoded POSTs. Responses come back either as an XML
// document or as a JSON object; a Decoder normalizes both into a
// domain.Response carrying at least status and message.
//
//   - http.go: HTTPTransport, the Auth call and generic method calls
//   - decode.go: XMLDecoder, JSONDecoder and the sniffing AutoDecoder
//
// Every failure to reach the API or to make sense of its answer is reported
// as domain.ErrTransport.
package transport
