package memory

import (
	"context"
	"testing"
	"time"

	"github.com/yndnr/partage-bss-go/internal/core/domain"
)

func TestTokenStore_LoadSave(t *testing.T) {
	ctx := context.Background()
	s := NewTokenStore()

	if _, ok, err := s.Load(ctx, "example.org"); ok || err != nil {
		t.Fatalf("Load() on empty store = %v, %v", ok, err)
	}

	stored, err := s.Save(ctx, domain.NewCachedToken("example.org", "tok-1", time.Unix(1000, 0)))
	if err != nil || !stored {
		t.Fatalf("Save() = %v, %v; want true, nil", stored, err)
	}

	tok, ok, err := s.Load(ctx, "example.org")
	if err != nil || !ok {
		t.Fatalf("Load() = %v, %v", ok, err)
	}
	if tok.Token != "tok-1" || tok.IssuedAt.Unix() != 1000 {
		t.Errorf("Load() = %+v", tok)
	}
}

func TestTokenStore_MonotonicIssuedAt(t *testing.T) {
	ctx := context.Background()
	s := NewTokenStore()

	s.Save(ctx, domain.NewCachedToken("example.org", "new", time.Unix(1300, 0)))
	stored, err := s.Save(ctx, domain.NewCachedToken("example.org", "old", time.Unix(1000, 0)))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if stored {
		t.Error("Save() should refuse an older token")
	}

	tok, _, _ := s.Load(ctx, "example.org")
	if tok.Token != "new" {
		t.Errorf("Token = %q, want %q", tok.Token, "new")
	}

	stored, _ = s.Save(ctx, domain.NewCachedToken("example.org", "same-second", time.Unix(1300, 0)))
	if !stored {
		t.Error("Save() should accept a token issued at the same second")
	}
}

func TestTokenStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewTokenStore()

	in := domain.NewCachedToken("example.org", "tok", time.Unix(1000, 0))
	s.Save(ctx, in)
	in.Token = "mutated"

	out, _, _ := s.Load(ctx, "example.org")
	out.Token = "mutated too"

	again, _, _ := s.Load(ctx, "example.org")
	if again.Token != "tok" {
		t.Errorf("stored token changed through aliasing: %q", again.Token)
	}
}

func TestTokenStore_Len(t *testing.T) {
	ctx := context.Background()
	s := NewTokenStore()

	s.Save(ctx, domain.NewCachedToken("a.example.org", "1", time.Unix(1000, 0)))
	s.Save(ctx, domain.NewCachedToken("b.example.org", "2", time.Unix(1000, 0)))
	s.Save(ctx, domain.NewCachedToken("a.example.org", "3", time.Unix(1100, 0)))

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}
