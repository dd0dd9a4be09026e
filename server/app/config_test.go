package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/api/rest/middleware"
	"github.com/ahachul/ahachul-backend/server/store"
)

const (
	testKey       = "abcdefghijklmnopqrstuvwxyz123456"
	testJWTSecret = "a-jwt-secret-that-is-long-enough"
)

func requiredArgs() []string {
	return []string{
		"--api_server_session_authentication_key", testKey,
		"--api_server_session_encryption_key", testKey,
		"--jwt_secret_key", testJWTSecret,
	}
}

func TestConfigFromFlagsDefaults(t *testing.T) {
	config, err := ConfigFromFlags(requiredArgs())
	require.NoError(t, err)
	require.Equal(t, store.Sqlite, config.DatabaseConfig.Driver)
	require.Equal(t, "0.0.0.0:8080", config.AppAPIConfig.Address)
	require.Nil(t, config.AppAPIConfig.TLSConfig)
	require.Equal(t, []string{"*"}, []string(config.CORSAllowedOrigins))
	require.Empty(t, config.AdminMemberIDs)
	require.Equal(t, int64(models.DefaultHotPostViews), int64(config.HotPostViews))
	require.False(t, config.Lost112Config.ImportEnabled)
	require.Equal(t, "/v1/files/", config.PublicURLPrefix.String())
}

func TestConfigFromFlags(t *testing.T) {
	args := append(requiredArgs(),
		"--database_driver", "postgres",
		"--database_connection_string", "postgres://ahachul@localhost/ahachul",
		"--api_server_admin_member_ids", "1, 7",
		"--api_server_cors_allowed_origins", "https://ahachul.com,https://www.ahachul.com",
		"--lost112_import_enabled",
		"--lost112_feed_url", "https://feeds.example.com/lost112.json",
		"--lost112_import_interval", "5m",
	)
	config, err := ConfigFromFlags(args)
	require.NoError(t, err)
	require.Equal(t, store.Postgres, config.DatabaseConfig.Driver)
	require.Equal(t, middleware.AdminMemberIDs{models.MemberIDFromResourceID(1), models.MemberIDFromResourceID(7)}, config.AdminMemberIDs)
	require.Len(t, config.CORSAllowedOrigins, 2)
	require.True(t, config.Lost112Config.ImportEnabled)
	require.Equal(t, 5*time.Minute, time.Duration(config.Lost112Config.ImportInterval))
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("AHACHUL_JWT_ISSUER", "ahachul-staging")
	t.Setenv("AHACHUL_COMMUNITY_HOT_POST_VIEWS", "25")
	config, err := ConfigFromFlags(requiredArgs())
	require.NoError(t, err)
	require.Equal(t, "ahachul-staging", config.JWTConfig.Issuer)
	require.Equal(t, int64(25), int64(config.HotPostViews))

	// Flags win over the environment
	config, err = ConfigFromFlags(append(requiredArgs(), "--jwt_issuer", "ahachul-local"))
	require.NoError(t, err)
	require.Equal(t, "ahachul-local", config.JWTConfig.Issuer)
}

func TestConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ahachul.yaml")
	err := os.WriteFile(path, []byte("file_public_url_prefix: https://cdn.ahachul.com/\nlogout_redis_address: redis:6379\n"), 0644)
	require.NoError(t, err)
	config, err := ConfigFromFlags(append(requiredArgs(), "--config_file", path))
	require.NoError(t, err)
	require.Equal(t, "https://cdn.ahachul.com/", config.PublicURLPrefix.String())
	require.Equal(t, "redis:6379", config.RedisConfig.Address)
}

func TestConfigValidation(t *testing.T) {
	_, err := ConfigFromFlags([]string{
		"--api_server_session_authentication_key", testKey,
		"--api_server_session_encryption_key", testKey,
		"--jwt_secret_key", "short",
	})
	require.Error(t, err)

	_, err = ConfigFromFlags(append(requiredArgs(), "--lost112_import_enabled"))
	require.Error(t, err)

	_, err = ConfigFromFlags(append(requiredArgs(), "--api_server_admin_member_ids", "one"))
	require.Error(t, err)

	_, err = ConfigFromFlags([]string{"--jwt_secret_key", testJWTSecret})
	require.Error(t, err, "session keys are required")
}
