package logout

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/redis/go-redis/v9"

	"github.com/ahachul/ahachul-backend/common/logger"
)

const logoutKeyPrefix = "logout:"

type RedisConfig struct {
	// Address is host:port of the redis server. Logged out tokens are kept in memory if empty.
	Address  string
	Password string
	DB       int
}

// RedisLogoutService records logged out tokens as redis keys that expire along with the token.
type RedisLogoutService struct {
	rc  *redis.Client
	clk clock.Clock
	logger.Log
}

func NewRedisLogoutService(rc *redis.Client, clk clock.Clock, logFactory logger.LogFactory) *RedisLogoutService {
	return &RedisLogoutService{
		rc:  rc,
		clk: clk,
		Log: logFactory("RedisLogoutService"),
	}
}

// NewRedisClient connects to the configured redis server and checks it is reachable.
func NewRedisClient(ctx context.Context, config RedisConfig) (*redis.Client, error) {
	rc := redis.NewClient(&redis.Options{
		Addr:     config.Address,
		Password: config.Password,
		DB:       config.DB,
	})
	err := rc.Ping(ctx).Err()
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("error connecting to redis at %s: %w", config.Address, err)
	}
	return rc, nil
}

func (s *RedisLogoutService) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.clk.Now())
	if ttl <= 0 {
		// Expired tokens are rejected anyway
		return nil
	}
	err := s.rc.Set(ctx, logoutKeyPrefix+token, "logout", ttl).Err()
	if err != nil {
		return fmt.Errorf("error recording logout: %w", err)
	}
	return nil
}

func (s *RedisLogoutService) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.rc.Exists(ctx, logoutKeyPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("error checking logout: %w", err)
	}
	return n > 0, nil
}
