package logout

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// MemoryLogoutService records logged out tokens in process memory, for single instance deployments and tests.
type MemoryLogoutService struct {
	clk     clock.Clock
	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewMemoryLogoutService(clk clock.Clock) *MemoryLogoutService {
	return &MemoryLogoutService{
		clk:     clk,
		revoked: make(map[string]time.Time),
	}
}

func (s *MemoryLogoutService) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clk.Now()
	for t, exp := range s.revoked {
		if !exp.After(now) {
			delete(s.revoked, t)
		}
	}
	if expiresAt.After(now) {
		s.revoked[token] = expiresAt
	}
	return nil
}

func (s *MemoryLogoutService) IsRevoked(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.revoked[token]
	return ok && exp.After(s.clk.Now()), nil
}
