package server_test

import (
	"testing"

	"github.com/ahachul/ahachul-backend/common/httpclient"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/api/rest/server"
	"github.com/ahachul/ahachul-backend/server/app"
	"github.com/ahachul/ahachul-backend/server/services/blob"
	"github.com/ahachul/ahachul-backend/server/services/community"
	"github.com/ahachul/ahachul-backend/server/services/credential"
	"github.com/ahachul/ahachul-backend/server/services/file"
	"github.com/ahachul/ahachul-backend/server/services/lost112"
)

const testJWTSecretKey = "test-jwt-secret-key-of-32-chars!"

func TestConfig(t *testing.T) *app.ServerConfig {
	// Store blobs in a temporary directory
	blobDir := t.TempDir()

	test256bitKeyStr := "abcdefghijklmnopqrstuvwxyz123456"
	var test256bitKey [32]byte
	copy(test256bitKey[:], test256bitKeyStr)

	return &app.ServerConfig{
		AppAPIConfig: server.AppAPIServerConfig{
			HTTPServerConfig: server.HTTPServerConfig{
				Address: "", // Test is expected to use httptest server which picks its own address
			},
		},
		AuthenticationConfig: server.AuthenticationConfig{
			SessionAuthenticationKey: test256bitKey,
			SessionEncryptionKey:     test256bitKey,
			UseSameSiteNoneMode:      false,
			InsecureCookies:          true, // the test server speaks plain HTTP
		},
		CORSAllowedOrigins: server.CORSAllowedOrigins{"*"},
		JWTConfig: credential.JWTConfig{
			SecretKey:          testJWTSecretKey,
			Issuer:             credential.DefaultJWTIssuer,
			AccessTokenExpiry:  credential.DefaultAccessTokenExpiry,
			RefreshTokenExpiry: credential.DefaultRefreshTokenExpiry,
		},
		HTTPClientConfig: httpclient.DefaultConfig(),
		BlobStoreConfig: app.BlobStoreConfig{
			BlobStoreType:     blob.LocalBlobStoreType.String(),
			LocalBlobStoreDir: blobDir,
		},
		PublicURLPrefix: file.PublicURLPrefix("/v1/files/"),
		Lost112Config: app.Lost112Config{
			ImportInterval: lost112.ImportInterval(lost112.DefaultImportInterval),
			ImportEnabled:  false,
		},
		HotPostViews: community.HotPostViews(models.DefaultHotPostViews),
		LogLevels:    "",
	}
}
