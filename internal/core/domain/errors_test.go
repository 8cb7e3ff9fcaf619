package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		expected string
	}{
		{
			name:     "error without details",
			err:      NewDomainError("BSS-TEST-1000", "test message"),
			expected: "[BSS-TEST-1000] test message",
		},
		{
			name:     "error with details",
			err:      NewDomainError("BSS-TEST-1001", "test message").WithDetails("extra info"),
			expected: "[BSS-TEST-1001] test message: extra info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDomainError_Is(t *testing.T) {
	err1 := NewDomainError("BSS-TEST-1000", "message 1")
	err2 := NewDomainError("BSS-TEST-1000", "message 2")
	err3 := NewDomainError("BSS-TEST-1001", "message 1")

	if !errors.Is(err1, err2) {
		t.Error("errors.Is should return true for same error code")
	}
	if errors.Is(err1, err3) {
		t.Error("errors.Is should return false for different error code")
	}
	if errors.Is(err1, fmt.Errorf("some error")) {
		t.Error("errors.Is should return false for non-DomainError")
	}

	// Details and cause do not affect identity.
	detailed := ErrAuthentication.WithDetails("bad preauth").WithCause(errors.New("x"))
	if !errors.Is(detailed, ErrAuthentication) {
		t.Error("errors.Is should match sentinel after WithDetails/WithCause")
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying cause")
	err := ErrTransport.WithCause(cause)

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause")
	}
	if errors.Unwrap(ErrTransport) != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestDomainError_WithDetailsDoesNotMutate(t *testing.T) {
	original := NewDomainError("BSS-TEST-1000", "original message")
	withDetails := original.WithDetails("additional details")

	if original.Details != "" {
		t.Error("WithDetails should not modify original error")
	}
	if withDetails.Details != "additional details" {
		t.Errorf("Details = %q, want %q", withDetails.Details, "additional details")
	}
	if withDetails.Code != original.Code || withDetails.Message != original.Message {
		t.Error("WithDetails should preserve code and message")
	}
}

func TestIsDomainError(t *testing.T) {
	if !IsDomainError(ErrUnknownDomain, "BSS-AUTH-4040") {
		t.Error("IsDomainError should return true for matching code")
	}
	if IsDomainError(ErrUnknownDomain, "BSS-AUTH-9999") {
		t.Error("IsDomainError should return false for non-matching code")
	}
	if !IsDomainError(ErrUnknownDomain, "") {
		t.Error("IsDomainError with empty code should match any DomainError")
	}
	if IsDomainError(fmt.Errorf("regular error"), "") {
		t.Error("IsDomainError should return false for non-DomainError")
	}

	wrapped := fmt.Errorf("wrapped: %w", ErrUnknownDomain)
	if !IsDomainError(wrapped, "BSS-AUTH-4040") {
		t.Error("IsDomainError should work with wrapped errors")
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"domain error", ErrInvalidDomain, "BSS-ARG-4001"},
		{"wrapped domain error", fmt.Errorf("wrapped: %w", ErrTransport), "BSS-SYS-5020"},
		{"regular error", fmt.Errorf("regular error"), ""},
		{"nil error", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetErrorCode(tt.err); got != tt.expected {
				t.Errorf("GetErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestServerMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"auth error", ErrAuthentication.WithDetails("Erreur: preauth invalide"), "Erreur: preauth invalide"},
		{"remote call", fmt.Errorf("call: %w", ErrRemoteCall.WithDetails("no such account")), "no such account"},
		{"transport details are not a server message", ErrTransport.WithDetails("eof"), ""},
		{"plain error", errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ServerMessage(tt.err); got != tt.want {
				t.Errorf("ServerMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPredefinedErrors(t *testing.T) {
	tests := []struct {
		err  *DomainError
		code string
	}{
		{ErrInvalidDomain, "BSS-ARG-4001"},
		{ErrInvalidArgument, "BSS-ARG-1001"},
		{ErrUnknownDomain, "BSS-AUTH-4040"},
		{ErrAuthentication, "BSS-AUTH-4010"},
		{ErrRemoteCall, "BSS-API-4000"},
		{ErrStorage, "BSS-SYS-5001"},
		{ErrTransport, "BSS-SYS-5020"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %q, want %q", tt.err.Code, tt.code)
			}
			if tt.err.Message == "" {
				t.Error("Message should not be empty")
			}
		})
	}
}
