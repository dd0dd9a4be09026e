package logout

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/server/services"
)

func TestMemoryLogoutService(t *testing.T) {
	clk := clock.NewMock()
	testLogoutService(t, NewMemoryLogoutService(clk), clk)
}

func TestRedisLogoutService(t *testing.T) {
	addr := os.Getenv("AHACHUL_TEST_REDIS_ADDRESS")
	if addr == "" {
		t.Skip("Skipping redis test as AHACHUL_TEST_REDIS_ADDRESS is not set")
	}
	rc, err := NewRedisClient(context.Background(), RedisConfig{Address: addr})
	require.NoError(t, err)
	defer rc.Close()

	// Redis expires keys on its own clock so the mock is only used to compute the TTL
	clk := clock.NewMock()
	clk.Set(time.Now())
	testLogoutService(t, NewRedisLogoutService(rc, clk, logger.NoOpLogFactory), nil)
}

func testLogoutService(t *testing.T, s services.LogoutService, mockClock *clock.Mock) {
	ctx := context.Background()
	now := time.Now()
	if mockClock != nil {
		now = mockClock.Now()
	}
	token := uuid.NewString()

	revoked, err := s.IsRevoked(ctx, token)
	require.NoError(t, err)
	require.False(t, revoked)

	require.NoError(t, s.Revoke(ctx, token, now.Add(time.Hour)))
	revoked, err = s.IsRevoked(ctx, token)
	require.NoError(t, err)
	require.True(t, revoked)

	// Tokens that already expired are not recorded
	expired := uuid.NewString()
	require.NoError(t, s.Revoke(ctx, expired, now.Add(-time.Minute)))
	revoked, err = s.IsRevoked(ctx, expired)
	require.NoError(t, err)
	require.False(t, revoked)

	if mockClock != nil {
		mockClock.Add(2 * time.Hour)
		revoked, err = s.IsRevoked(ctx, token)
		require.NoError(t, err)
		require.False(t, revoked)
	}
}
