// Package domain defines the core domain models for the BSS client.
package domain

import (
	"errors"
	"fmt"
)

// DomainError is a client error carrying a stable error code.
//
// Two DomainErrors are equal under errors.Is when their codes match, so
// callers compare against the sentinels below regardless of details or cause.
type DomainError struct {
	Code    string // Error code (e.g., "BSS-AUTH-4010")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ServerMessage returns the message the BSS API attached to a rejected call.
// It is empty for errors that did not originate from an API status.
func ServerMessage(err error) string {
	var de *DomainError
	if !errors.As(err, &de) {
		return ""
	}
	if de.Code != ErrAuthentication.Code && de.Code != ErrRemoteCall.Code {
		return ""
	}
	return de.Details
}

// ============================================================================
// Argument Errors (ARG)
// ============================================================================

var (
	// ErrInvalidDomain indicates the domain name failed syntax validation.
	ErrInvalidDomain = NewDomainError("BSS-ARG-4001", "invalid domain name")

	// ErrInvalidArgument indicates an invalid argument or configuration value.
	ErrInvalidArgument = NewDomainError("BSS-ARG-1001", "invalid argument")
)

// ============================================================================
// Authentication Errors (AUTH)
// ============================================================================

var (
	// ErrUnknownDomain indicates no shared secret is registered for the domain.
	ErrUnknownDomain = NewDomainError("BSS-AUTH-4040", "unknown domain")

	// ErrAuthentication indicates the API rejected the signed Auth request.
	// Details carry the server message verbatim.
	ErrAuthentication = NewDomainError("BSS-AUTH-4010", "authentication rejected")
)

// ============================================================================
// API Errors (API)
// ============================================================================

var (
	// ErrRemoteCall indicates an API method returned a nonzero status.
	// Details carry the server message verbatim.
	ErrRemoteCall = NewDomainError("BSS-API-4000", "api call failed")
)

// ============================================================================
// System Errors (SYS)
// ============================================================================

var (
	// ErrStorage indicates a token store or credential backend failure.
	ErrStorage = NewDomainError("BSS-SYS-5001", "storage error")

	// ErrTransport indicates a network failure or an undecodable response.
	ErrTransport = NewDomainError("BSS-SYS-5020", "transport error")
)
