package domain

import (
	"net/url"
	"strconv"
)

// StatusOK is the API status code for a successful call.
const StatusOK = 0

// Form field names of the Auth request.
const (
	FieldDomain    = "domain"
	FieldTimestamp = "timestamp"
	FieldPreauth   = "preauth"
)

// Response field names shared by every API method.
const (
	FieldStatus  = "status"
	FieldMessage = "message"
	FieldToken   = "token"
)

// AuthRequest is a signed request for a new token.
type AuthRequest struct {
	Domain    string
	Timestamp int64 // Unix seconds
	Preauth   string
}

// Form encodes the request as the Auth form body.
func (r *AuthRequest) Form() url.Values {
	return url.Values{
		FieldDomain:    {r.Domain},
		FieldTimestamp: {strconv.FormatInt(r.Timestamp, 10)},
		FieldPreauth:   {r.Preauth},
	}
}

// Response is the normalized result of any API call.
//
// Status and Message are always present. Fields holds every top-level value
// of the response, status and message included, keyed by element or property
// name.
type Response struct {
	Status  int
	Message string
	Fields  map[string]string
}

// OK reports whether the API accepted the call.
func (r *Response) OK() bool {
	return r.Status == StatusOK
}

// Field returns a top-level response value.
func (r *Response) Field(name string) (string, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// AuthResponse is the normalized result of the Auth call.
type AuthResponse struct {
	Status  int
	Message string
	Token   string // Present only when Status is StatusOK
}

// OK reports whether a token was issued.
func (r *AuthResponse) OK() bool {
	return r.Status == StatusOK
}

// ToAuthResponse narrows a generic response to the Auth shape.
// A successful response without a token is malformed.
func (r *Response) ToAuthResponse() (*AuthResponse, error) {
	ar := &AuthResponse{Status: r.Status, Message: r.Message}
	if !r.OK() {
		return ar, nil
	}
	token, ok := r.Field(FieldToken)
	if !ok || token == "" {
		return nil, ErrTransport.WithDetails("auth response missing token")
	}
	ar.Token = token
	return ar, nil
}
