package benchmark

import (
	"context"
	"fmt"
	"time"

	"github.com/yndnr/partage-bss-go/internal/core/domain"
)

// DomainCounts are the numbers of registered domains benchmarked.
var DomainCounts = []int{1, 100, 10000}

func domainName(i int) string {
	return fmt.Sprintf("d%d.example.org", i)
}

func secrets(count int) map[string]string {
	m := make(map[string]string, count)
	for i := 0; i < count; i++ {
		m[domainName(i)] = fmt.Sprintf("secret-%d", i)
	}
	return m
}

type staticAuth struct{}

func (staticAuth) Authenticate(_ context.Context, req *domain.AuthRequest) (*domain.AuthResponse, error) {
	return &domain.AuthResponse{Status: domain.StatusOK, Message: "ok", Token: req.Preauth}, nil
}

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }
