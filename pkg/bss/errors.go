package bss

import "github.com/yndnr/partage-bss-go/internal/core/domain"

// Errors returned by the client. Match them with errors.Is.
var (
	ErrInvalidDomain   = domain.ErrInvalidDomain
	ErrInvalidArgument = domain.ErrInvalidArgument
	ErrUnknownDomain   = domain.ErrUnknownDomain
	ErrAuthentication  = domain.ErrAuthentication
	ErrRemoteCall      = domain.ErrRemoteCall
	ErrStorage         = domain.ErrStorage
	ErrTransport       = domain.ErrTransport
)

// Response is the normalized result of an API call.
type Response = domain.Response

// ServerMessage returns the message the API attached to an
// ErrAuthentication or ErrRemoteCall, or "" for any other error.
func ServerMessage(err error) string {
	return domain.ServerMessage(err)
}

// ErrorCode returns the code of a client error, or "".
func ErrorCode(err error) string {
	return domain.GetErrorCode(err)
}
