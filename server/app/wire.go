//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/google/wire"

	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/server/api/rest/server"
	"github.com/ahachul/ahachul-backend/server/services/lost112"
	"github.com/ahachul/ahachul-backend/server/services/train"
	"github.com/ahachul/ahachul-backend/server/store"
	"github.com/ahachul/ahachul-backend/server/store/migrations"
)

func New(ctx context.Context, config *ServerConfig) (*Server, func(), error) {
	panic(wire.Build(
		NewServer,
		wire.FieldsOf(new(*ServerConfig), "AppAPIConfig", "AuthenticationConfig", "CORSAllowedOrigins", "AdminMemberIDs", "DatabaseConfig", "JWTConfig", "OAuthConfig", "HTTPClientConfig", "BlobStoreConfig", "PublicURLPrefix", "RedisConfig", "Lost112Config", "CongestionConfig", "HotPostViews", "LogLevels"),
		wire.FieldsOf(new(Lost112Config), "ClientConfig", "ImportInterval"),
		store.NewDatabase,
		migrations.NewServerGolangMigrateRunner,
		wire.Bind(new(store.MigrationRunner), new(*migrations.GolangMigrateRunner)),

		StoreSet,
		ServiceSet,

		BlobStoreFactory,
		LogoutServiceFactory,
		MakeProviderRegistry,
		MakeHTTPClient,
		lost112.NewClient,
		wire.Bind(new(lost112.ItemSource), new(*lost112.Client)),
		lost112.NewImportTimer,
		train.NewCongestionClient,
		wire.Bind(new(train.CarPercentageSource), new(*train.CongestionClient)),

		APISet,
		server.RealHTTPServerFactory,

		logger.NewLogRegistry,
		logger.MakeLogrusLogFactoryStdOut,
		clock.New,
	))
}
