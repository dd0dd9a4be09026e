//go:build wireinject
// +build wireinject

package server_test

import (
	"github.com/benbjohnson/clock"
	"github.com/google/wire"

	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/server/api/rest/server"
	"github.com/ahachul/ahachul-backend/server/api/rest/server/servertest"
	"github.com/ahachul/ahachul-backend/server/app"
	"github.com/ahachul/ahachul-backend/server/services"
	"github.com/ahachul/ahachul-backend/server/services/logout"
	"github.com/ahachul/ahachul-backend/server/services/lost112"
	"github.com/ahachul/ahachul-backend/server/services/train"
	"github.com/ahachul/ahachul-backend/server/store/store_test"
)

func New(config *app.ServerConfig) (*TestServer, func(), error) {
	panic(wire.Build(
		NewTestServer,
		wire.FieldsOf(new(*app.ServerConfig), "AppAPIConfig", "AuthenticationConfig", "CORSAllowedOrigins", "AdminMemberIDs", "JWTConfig", "BlobStoreConfig", "PublicURLPrefix", "HotPostViews", "LogLevels"),
		store_test.Connect,

		app.StoreSet,
		app.ServiceSet,

		app.BlobStoreFactory,
		logout.NewMemoryLogoutService,
		wire.Bind(new(services.LogoutService), new(*logout.MemoryLogoutService)),
		MakeFakeProviderRegistry,
		NewFakeItemSource,
		wire.Bind(new(lost112.ItemSource), new(*FakeItemSource)),
		NewFakeCarPercentageSource,
		wire.Bind(new(train.CarPercentageSource), new(*FakeCarPercentageSource)),

		app.APISet,
		servertest.HTTPTestServerFactory,

		logger.NewLogRegistry,
		logger.MakeLogrusLogFactoryStdOut,
		clock.New,
	))
}
