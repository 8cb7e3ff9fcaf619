package domain

import (
	"errors"
	"testing"
)

func TestAuthRequest_Form(t *testing.T) {
	req := &AuthRequest{
		Domain:    "example.org",
		Timestamp: 1000,
		Preauth:   "8e4271a5491afaa3c05adaaa7437d194211e94c5",
	}

	form := req.Form()
	want := map[string]string{
		"domain":    "example.org",
		"timestamp": "1000",
		"preauth":   "8e4271a5491afaa3c05adaaa7437d194211e94c5",
	}
	if len(form) != len(want) {
		t.Fatalf("form has %d fields, want %d", len(form), len(want))
	}
	for k, v := range want {
		if got := form.Get(k); got != v {
			t.Errorf("form[%q] = %q, want %q", k, got, v)
		}
	}
}

func TestResponse_ToAuthResponse(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r := &Response{Status: 0, Message: "ok", Fields: map[string]string{"token": "abc"}}
		ar, err := r.ToAuthResponse()
		if err != nil {
			t.Fatalf("ToAuthResponse() error = %v", err)
		}
		if !ar.OK() || ar.Token != "abc" || ar.Message != "ok" {
			t.Errorf("ToAuthResponse() = %+v", ar)
		}
	})

	t.Run("rejected keeps message and no token", func(t *testing.T) {
		r := &Response{Status: 2, Message: "Erreur", Fields: map[string]string{"token": "ignored"}}
		ar, err := r.ToAuthResponse()
		if err != nil {
			t.Fatalf("ToAuthResponse() error = %v", err)
		}
		if ar.OK() || ar.Status != 2 || ar.Message != "Erreur" || ar.Token != "" {
			t.Errorf("ToAuthResponse() = %+v", ar)
		}
	})

	t.Run("success without token is malformed", func(t *testing.T) {
		r := &Response{Status: 0, Message: "ok", Fields: map[string]string{}}
		if _, err := r.ToAuthResponse(); !errors.Is(err, ErrTransport) {
			t.Errorf("ToAuthResponse() error = %v, want ErrTransport", err)
		}
	})
}
