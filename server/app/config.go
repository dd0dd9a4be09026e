package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/oauth2"

	"github.com/ahachul/ahachul-backend/common/certificates"
	"github.com/ahachul/ahachul-backend/common/httpclient"
	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/api/rest/middleware"
	"github.com/ahachul/ahachul-backend/server/api/rest/server"
	"github.com/ahachul/ahachul-backend/server/services"
	"github.com/ahachul/ahachul-backend/server/services/blob"
	"github.com/ahachul/ahachul-backend/server/services/community"
	"github.com/ahachul/ahachul-backend/server/services/credential"
	"github.com/ahachul/ahachul-backend/server/services/file"
	"github.com/ahachul/ahachul-backend/server/services/logout"
	"github.com/ahachul/ahachul-backend/server/services/lost112"
	"github.com/ahachul/ahachul-backend/server/services/oauth"
	"github.com/ahachul/ahachul-backend/server/services/train"
	"github.com/ahachul/ahachul-backend/server/store"
)

const (
	DefaultServerCertFile       = "server-cert.pem"
	DefaultServerPrivateKeyFile = "server-private-key.pem"

	// EnvPrefix is prepended to flag names to find the environment variable that sets them,
	// e.g. AHACHUL_DATABASE_DRIVER sets --database_driver.
	EnvPrefix = "AHACHUL"
)

// LogSafeFlags is a list of flags by name whose values are safe to log.
var LogSafeFlags = []string{
	"config_file",
	"database_driver",
	"database_max_idle_connections",
	"database_max_open_connections",
	"api_server_address",
	"api_server_tls",
	"api_server_certificate_directory",
	"api_server_cors_allowed_origins",
	"api_server_admin_member_ids",
	"dev_api_server_use_same_site_none_mode",
	"jwt_issuer",
	"jwt_access_token_expiry",
	"jwt_refresh_token_expiry",
	"oauth_kakao_client_id",
	"oauth_kakao_redirect_url",
	"oauth_kakao_redirect_path",
	"oauth_google_client_id",
	"oauth_google_redirect_url",
	"oauth_google_redirect_path",
	"oauth_apple_client_id",
	"oauth_apple_redirect_url",
	"oauth_apple_redirect_path",
	"oauth_apple_team_id",
	"oauth_apple_key_id",
	"oauth_apple_private_key_file",
	"blob_store_type",
	"blob_store_local_directory",
	"blob_store_aws_s3_bucket_name",
	"blob_store_aws_s3_region",
	"blob_store_aws_s3_access_key_id",
	"blob_store_aws_s3_endpoint",
	"file_public_url_prefix",
	"logout_redis_address",
	"logout_redis_db",
	"lost112_import_enabled",
	"lost112_import_interval",
	"lost112_feed_url",
	"train_congestion_api_url",
	"community_hot_post_views",
	"log_levels",
}

type BlobStoreConfig struct {
	// BlobStoreType specifies which blob store should be used.
	BlobStoreType string
	// LocalBlobStoreDir is the base directory on the local filesystem to store blobs to, if enabled.
	LocalBlobStoreDir string
	// S3BlobStoreConfig contains configuration for the S3 blob store, if enabled.
	S3BlobStoreConfig blob.S3BlobStoreConfig
}

func BlobStoreFactory(config BlobStoreConfig, logFactory logger.LogFactory) (services.BlobStore, error) {
	switch strings.ToLower(config.BlobStoreType) {
	case strings.ToLower(blob.AWSS3BlobStoreType.String()):
		return blob.NewS3BlobStore(config.S3BlobStoreConfig, logFactory)
	case strings.ToLower(blob.LocalBlobStoreType.String()):
		return blob.NewLocalBlobStore(blob.LocalBlobStoreDirectory(config.LocalBlobStoreDir)), nil
	default:
		return nil, fmt.Errorf("error unsupported blob store type: %v", config.BlobStoreType)
	}
}

// LogoutServiceFactory keeps logged out tokens in redis if an address is configured, otherwise in memory.
// Tokens kept in memory are forgotten when the server restarts.
func LogoutServiceFactory(
	ctx context.Context,
	config logout.RedisConfig,
	clk clock.Clock,
	logFactory logger.LogFactory,
) (services.LogoutService, func(), error) {
	if config.Address == "" {
		logFactory("LogoutServiceFactory").Warn("No redis address configured; logged out tokens will be kept in memory")
		return logout.NewMemoryLogoutService(clk), func() {}, nil
	}
	rc, err := logout.NewRedisClient(ctx, config)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		rc.Close()
	}
	return logout.NewRedisLogoutService(rc, clk, logFactory), cleanup, nil
}

// ProviderEndpoints overrides the URLs an OAuth provider is reached on. Empty fields keep the provider's defaults.
type ProviderEndpoints struct {
	AuthURL     string
	TokenURL    string
	UserInfoURL string
}

func (e ProviderEndpoints) set() bool {
	return e.AuthURL != "" || e.TokenURL != "" || e.UserInfoURL != ""
}

// merge returns the endpoint and user info URL to use, filling in unset fields from the defaults.
func (e ProviderEndpoints) merge(endpoint oauth2.Endpoint, userInfoURL string) (oauth2.Endpoint, string) {
	if e.AuthURL != "" {
		endpoint.AuthURL = e.AuthURL
	}
	if e.TokenURL != "" {
		endpoint.TokenURL = e.TokenURL
	}
	if e.UserInfoURL != "" {
		userInfoURL = e.UserInfoURL
	}
	return endpoint, userInfoURL
}

type OAuthConfig struct {
	Kakao           oauth.ClientConfig
	KakaoEndpoints  ProviderEndpoints
	Google          oauth.ClientConfig
	GoogleEndpoints ProviderEndpoints
	Apple           oauth.AppleConfig
	AppleEndpoints  ProviderEndpoints
}

// MakeProviderRegistry registers every OAuth provider that has a client id configured.
func MakeProviderRegistry(
	config OAuthConfig,
	client *httpclient.Client,
	clk clock.Clock,
	logFactory logger.LogFactory,
) (*oauth.ProviderRegistry, error) {
	registry := oauth.NewProviderRegistry()
	log := logFactory("ProviderRegistry")
	if config.Kakao.Enabled() {
		provider := oauth.NewKakaoProvider(config.Kakao, client, logFactory)
		if config.KakaoEndpoints.set() {
			provider.WithEndpoints(config.KakaoEndpoints.merge(oauth.KakaoEndpoint, oauth.KakaoUserInfoURL))
		}
		registry.Register(provider)
	}
	if config.Google.Enabled() {
		provider := oauth.NewGoogleProvider(config.Google, client, logFactory)
		if config.GoogleEndpoints.set() {
			provider.WithEndpoints(config.GoogleEndpoints.merge(oauth.GoogleEndpoint, oauth.GoogleUserInfoURL))
		}
		registry.Register(provider)
	}
	if config.Apple.Enabled() {
		provider, err := oauth.NewAppleProvider(config.Apple, client, clk, logFactory)
		if err != nil {
			return nil, fmt.Errorf("error creating Apple OAuth provider: %w", err)
		}
		if config.AppleEndpoints.set() {
			endpoint, _ := config.AppleEndpoints.merge(oauth.AppleEndpoint, "")
			provider.WithEndpoint(endpoint)
		}
		registry.Register(provider)
	}
	for _, providerType := range []models.ProviderType{models.ProviderTypeKakao, models.ProviderTypeGoogle, models.ProviderTypeApple} {
		if _, err := registry.Get(providerType); err != nil {
			log.Warnf("OAuth provider %s is not configured; members will not be able to sign in with it", providerType)
		}
	}
	return registry, nil
}

type Lost112Config struct {
	ClientConfig   lost112.ClientConfig
	ImportInterval lost112.ImportInterval
	// ImportEnabled starts the scheduled import when the server starts.
	ImportEnabled bool
}

type ServerConfig struct {
	AppAPIConfig         server.AppAPIServerConfig
	AuthenticationConfig server.AuthenticationConfig
	CORSAllowedOrigins   server.CORSAllowedOrigins
	AdminMemberIDs       middleware.AdminMemberIDs
	DatabaseConfig       store.DatabaseConfig
	JWTConfig            credential.JWTConfig
	OAuthConfig          OAuthConfig
	HTTPClientConfig     httpclient.Config
	BlobStoreConfig      BlobStoreConfig
	PublicURLPrefix      file.PublicURLPrefix
	RedisConfig          logout.RedisConfig
	Lost112Config        Lost112Config
	CongestionConfig     train.CongestionClientConfig
	HotPostViews         community.HotPostViews
	LogLevels            logger.LogLevelConfig
}

// ConfigFromFlags reads the server configuration from the command line, the environment and an optional
// config file, in that order of precedence.
func ConfigFromFlags(args []string) (*ServerConfig, error) {
	flags := pflag.NewFlagSet("ahachul-server", pflag.ContinueOnError)

	flags.String("config_file", "", "The path to a YAML, JSON or TOML file to read configuration from.")

	// Database
	flags.String("database_driver", string(store.Sqlite), "The Database Driver to use (i.e sqlite3|postgres)")
	flags.String("database_connection_string", defaultSQLiteConnectionString, "The connection string for the database")
	flags.Int("database_max_idle_connections", store.DefaultDatabaseMaxIdleConnections, "The maximum number of idle database connections to use")
	flags.Int("database_max_open_connections", store.DefaultDatabaseMaxOpenConnections, "The maximum number of open database connections to use")

	// App API
	flags.String("api_server_address", "0.0.0.0:8080", "The interface and port to bind the API server to.")
	flags.Duration("api_server_read_header_timeout", 10*time.Second, "How long the API server waits to read request headers.")
	flags.Duration("api_server_shutdown_timeout", 30*time.Second, "How long in-flight requests are given to finish when the API server stops.")
	flags.Bool("api_server_tls", false, "True to serve the API over HTTPS.")
	flags.String("api_server_certificate_directory", defaultServerCertificateDir, "The path on the local host containing the server certificate and private key, if TLS is enabled.")
	flags.Bool("api_server_auto_create_certificate", false, "True to automatically create a self-signed server certificate, if not already configured.")
	flags.String("api_server_cors_allowed_origins", "*", "A comma separated list of web origins allowed to call the API.")
	flags.String("api_server_admin_member_ids", "", "A comma separated list of ids of members allowed to use admin routes.")
	flags.String("api_server_session_authentication_key", "", "The 256 Bit key used to authenticate the validity of HTTP(S) session cookies")
	flags.String("api_server_session_encryption_key", "", "The 256 Bit key used to encrypt HTTP(S) session cookies")
	flags.Bool("dev_api_server_use_same_site_none_mode", false, "True to set SameSite=none mode when issuing session cookies, so the cookies will be sent along with cross-site requests. This option should not be used in production.")
	flags.Bool("dev_api_server_insecure_cookies", false, "True to issue session cookies without the Secure flag. This option should not be used in production.")

	// JWT
	flags.String("jwt_secret_key", "", "The secret of at least 32 characters used to sign access and refresh tokens.")
	flags.String("jwt_issuer", credential.DefaultJWTIssuer, "The issuer to set in tokens.")
	flags.Duration("jwt_access_token_expiry", credential.DefaultAccessTokenExpiry, "How long an access token is valid for.")
	flags.Duration("jwt_refresh_token_expiry", credential.DefaultRefreshTokenExpiry, "How long a refresh token is valid for.")

	// OAuth
	for _, provider := range []string{"kakao", "google", "apple"} {
		flags.String("oauth_"+provider+"_client_id", "", fmt.Sprintf("The %s OAuth client id. The provider is disabled if not set.", provider))
		flags.String("oauth_"+provider+"_client_secret", "", fmt.Sprintf("The %s OAuth client secret.", provider))
		flags.String("oauth_"+provider+"_redirect_url", "", fmt.Sprintf("The url %s redirects to after login, when the login does not name its origin host.", provider))
		flags.String("oauth_"+provider+"_redirect_path", "", fmt.Sprintf("The path on the origin host %s redirects to after login.", provider))
		flags.String("oauth_"+provider+"_scopes", "", fmt.Sprintf("A comma separated list of scopes to request from %s.", provider))
		flags.String("oauth_"+provider+"_auth_url", "", fmt.Sprintf("Overrides the %s authorization url.", provider))
		flags.String("oauth_"+provider+"_token_url", "", fmt.Sprintf("Overrides the %s token url.", provider))
		flags.String("oauth_"+provider+"_user_info_url", "", fmt.Sprintf("Overrides the %s user info url.", provider))
	}
	flags.String("oauth_apple_team_id", "", "The Apple developer team id used to sign client secrets.")
	flags.String("oauth_apple_key_id", "", "The id of the Apple private key used to sign client secrets.")
	flags.String("oauth_apple_private_key_file", defaultApplePrivateKeyFile, "The path on the local host to the Apple private key file.")

	// Outbound HTTP
	defaultHTTPClient := httpclient.DefaultConfig()
	flags.Duration("http_client_timeout", defaultHTTPClient.Timeout, "The timeout of requests to third party APIs.")
	flags.Int("http_client_retry_max", defaultHTTPClient.RetryMax, "The number of times a failed request to a third party API is retried.")

	// Blob Storage
	flags.String("blob_store_type", blob.LocalBlobStoreType.String(), fmt.Sprintf("The type of blob store to use. Options: %s", strings.Join(blob.BlobStoreTypes(), ", ")))
	flags.String("blob_store_local_directory", defaultLocalBlobStoreDir, "The path on the local host to store blob files to, if using the local blob store.")
	flags.String("blob_store_aws_s3_bucket_name", "", "The name of the S3 bucket to store blobs to, if using the S3 blob store.")
	flags.String("blob_store_aws_s3_region", "", "The region of the S3 bucket to store blobs to, if using the S3 blob store.")
	flags.String("blob_store_aws_s3_access_key_id", "", "The AWS Access Key ID to use to authenticate to the S3 bucket, if using the S3 blob store.")
	flags.String("blob_store_aws_s3_secret_key", "", "The AWS Secret Key to use to authenticate to the S3 bucket, if using the S3 blob store.")
	flags.String("blob_store_aws_s3_endpoint", "", "Overrides the S3 endpoint, for S3 compatible stores.")
	flags.String("file_public_url_prefix", "/v1/files/", "The url prefix that uploaded files are downloaded from.")

	// Logout
	flags.String("logout_redis_address", "", "The host:port of the redis server logged out tokens are kept in. Tokens are kept in memory if not set.")
	flags.String("logout_redis_password", "", "The redis password.")
	flags.Int("logout_redis_db", 0, "The redis database number.")

	// Lost112
	flags.Bool("lost112_import_enabled", false, "True to periodically import found items from Lost112.")
	flags.Duration("lost112_import_interval", lost112.DefaultImportInterval, "How often found items are imported from Lost112.")
	flags.String("lost112_feed_url", "", "The url of the Lost112 found item feed.")

	// Train congestion
	flags.String("train_congestion_api_url", train.DefaultCongestionAPIURL, "The url of the real time train congestion API.")
	flags.String("train_congestion_app_key", "", "The app key presented to the train congestion API.")

	// Misc
	flags.Int64("community_hot_post_views", models.DefaultHotPostViews, "The number of views that makes a community post hot.")
	flags.String("log_levels", "", fmt.Sprintf("A comma separated list of name=level pairs where name is the name of the logger and level is one of: %s", logger.ListLogLevels()))

	err := flags.Parse(args)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	err = v.BindPFlags(flags)
	if err != nil {
		return nil, fmt.Errorf("error binding flags: %w", err)
	}
	if configFile := v.GetString("config_file"); configFile != "" {
		v.SetConfigFile(configFile)
		err = v.ReadInConfig()
		if err != nil {
			return nil, fmt.Errorf("error loading config file (%s): %w", configFile, err)
		}
	}

	config := &ServerConfig{}

	// Database
	config.DatabaseConfig = store.DatabaseConfig{
		ConnectionString:   store.DatabaseConnectionString(v.GetString("database_connection_string")),
		Driver:             store.DBDriver(v.GetString("database_driver")),
		MaxIdleConnections: v.GetInt("database_max_idle_connections"),
		MaxOpenConnections: v.GetInt("database_max_open_connections"),
	}

	// App API
	config.AppAPIConfig.Address = v.GetString("api_server_address")
	config.AppAPIConfig.ReadHeaderTimeout = v.GetDuration("api_server_read_header_timeout")
	config.AppAPIConfig.ShutdownTimeout = v.GetDuration("api_server_shutdown_timeout")
	if v.GetBool("api_server_tls") {
		certDir := v.GetString("api_server_certificate_directory")
		config.AppAPIConfig.TLSConfig = &server.TLSConfig{
			CertificateFile:                    certificates.CertificateFile(filepath.Join(certDir, DefaultServerCertFile)),
			PrivateKeyFile:                     certificates.PrivateKeyFile(filepath.Join(certDir, DefaultServerPrivateKeyFile)),
			AutoCreateCertificate:              server.AutoCreateServerCertificate(v.GetBool("api_server_auto_create_certificate")),
			AutoCreatedCertificateHost:         config.AppAPIConfig.GetAddressHost(),
			AutoCreatedCertificateOrganization: "ahachul",
		}
	}
	config.CORSAllowedOrigins = splitList(v.GetString("api_server_cors_allowed_origins"))
	config.AdminMemberIDs, err = parseMemberIDs(v.GetString("api_server_admin_member_ids"))
	if err != nil {
		return nil, fmt.Errorf("error parsing --api_server_admin_member_ids: %w", err)
	}

	// Sessions
	sessionAuthenticationKey, err := parse256BitKey(v.GetString("api_server_session_authentication_key"))
	if err != nil {
		return nil, fmt.Errorf("--api_server_session_authentication_key %w", err)
	}
	sessionEncryptionKey, err := parse256BitKey(v.GetString("api_server_session_encryption_key"))
	if err != nil {
		return nil, fmt.Errorf("--api_server_session_encryption_key %w", err)
	}
	config.AuthenticationConfig = server.AuthenticationConfig{
		SessionAuthenticationKey: server.SessionAuthenticationKey(sessionAuthenticationKey),
		SessionEncryptionKey:     server.SessionEncryptionKey(sessionEncryptionKey),
		UseSameSiteNoneMode:      server.UseSameSiteNoneMode(v.GetBool("dev_api_server_use_same_site_none_mode")),
		InsecureCookies:          v.GetBool("dev_api_server_insecure_cookies"),
	}

	// JWT
	config.JWTConfig = credential.JWTConfig{
		SecretKey:          v.GetString("jwt_secret_key"),
		Issuer:             v.GetString("jwt_issuer"),
		AccessTokenExpiry:  v.GetDuration("jwt_access_token_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt_refresh_token_expiry"),
	}
	if len(config.JWTConfig.SecretKey) < 32 {
		return nil, errors.New("--jwt_secret_key must be at least 32 characters")
	}

	// OAuth
	config.OAuthConfig = OAuthConfig{
		Kakao:           clientConfigFromViper(v, "kakao"),
		KakaoEndpoints:  endpointsFromViper(v, "kakao"),
		Google:          clientConfigFromViper(v, "google"),
		GoogleEndpoints: endpointsFromViper(v, "google"),
		Apple: oauth.AppleConfig{
			ClientConfig:   clientConfigFromViper(v, "apple"),
			TeamID:         v.GetString("oauth_apple_team_id"),
			KeyID:          v.GetString("oauth_apple_key_id"),
			PrivateKeyFile: certificates.PrivateKeyFile(v.GetString("oauth_apple_private_key_file")),
		},
		AppleEndpoints: endpointsFromViper(v, "apple"),
	}

	// Outbound HTTP
	config.HTTPClientConfig = httpclient.DefaultConfig()
	config.HTTPClientConfig.Timeout = v.GetDuration("http_client_timeout")
	config.HTTPClientConfig.RetryMax = v.GetInt("http_client_retry_max")

	// Blob Storage
	config.BlobStoreConfig = BlobStoreConfig{
		BlobStoreType:     v.GetString("blob_store_type"),
		LocalBlobStoreDir: v.GetString("blob_store_local_directory"),
		S3BlobStoreConfig: blob.S3BlobStoreConfig{
			BucketName:      v.GetString("blob_store_aws_s3_bucket_name"),
			Region:          v.GetString("blob_store_aws_s3_region"),
			AccessKeyID:     v.GetString("blob_store_aws_s3_access_key_id"),
			SecretAccessKey: v.GetString("blob_store_aws_s3_secret_key"),
			Endpoint:        v.GetString("blob_store_aws_s3_endpoint"),
		},
	}
	config.PublicURLPrefix = file.PublicURLPrefix(v.GetString("file_public_url_prefix"))

	// Logout
	config.RedisConfig = logout.RedisConfig{
		Address:  v.GetString("logout_redis_address"),
		Password: v.GetString("logout_redis_password"),
		DB:       v.GetInt("logout_redis_db"),
	}

	// Lost112
	config.Lost112Config = Lost112Config{
		ClientConfig:   lost112.ClientConfig{FeedURL: v.GetString("lost112_feed_url")},
		ImportInterval: lost112.ImportInterval(v.GetDuration("lost112_import_interval")),
		ImportEnabled:  v.GetBool("lost112_import_enabled"),
	}
	if config.Lost112Config.ImportEnabled && config.Lost112Config.ClientConfig.FeedURL == "" {
		return nil, errors.New("--lost112_feed_url must be set when --lost112_import_enabled is true")
	}

	// Train congestion
	config.CongestionConfig = train.CongestionClientConfig{
		APIURL: v.GetString("train_congestion_api_url"),
		AppKey: v.GetString("train_congestion_app_key"),
	}

	// Misc
	config.HotPostViews = community.HotPostViews(v.GetInt64("community_hot_post_views"))
	config.LogLevels = logger.LogLevelConfig(v.GetString("log_levels"))

	return config, nil
}

func clientConfigFromViper(v *viper.Viper, provider string) oauth.ClientConfig {
	prefix := "oauth_" + provider + "_"
	return oauth.ClientConfig{
		ClientID:     v.GetString(prefix + "client_id"),
		ClientSecret: v.GetString(prefix + "client_secret"),
		RedirectURL:  v.GetString(prefix + "redirect_url"),
		RedirectPath: v.GetString(prefix + "redirect_path"),
		Scopes:       splitList(v.GetString(prefix + "scopes")),
	}
}

func endpointsFromViper(v *viper.Viper, provider string) ProviderEndpoints {
	prefix := "oauth_" + provider + "_"
	return ProviderEndpoints{
		AuthURL:     v.GetString(prefix + "auth_url"),
		TokenURL:    v.GetString(prefix + "token_url"),
		UserInfoURL: v.GetString(prefix + "user_info_url"),
	}
}

// splitList splits a comma separated list, dropping empty entries.
func splitList(s string) []string {
	var list []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			list = append(list, part)
		}
	}
	return list
}

func parseMemberIDs(s string) (middleware.AdminMemberIDs, error) {
	var ids middleware.AdminMemberIDs
	for _, part := range splitList(s) {
		id, err := models.ParseResourceID(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, models.MemberIDFromResourceID(id))
	}
	return ids, nil
}

func parse256BitKey(s string) ([32]byte, error) {
	var key [32]byte
	if len(s) != 32 {
		return key, errors.New("must be 256 Bit (32 Bytes)")
	}
	copy(key[:], s)
	return key, nil
}
