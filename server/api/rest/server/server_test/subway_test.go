package api_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/api/rest/documents"
	"github.com/ahachul/ahachul-backend/server/api/rest/routes"
	"github.com/ahachul/ahachul-backend/server/app/server_test"
)

func TestSubwayAPI(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()
	app.AppAPIServer.Start()
	defer app.AppAPIServer.Stop(ctx)

	line, station := server_test.CreateSubwayLine(t, ctx, app, "2호선")
	app.FakeCarPercentageSource.Set("2", "2240", []int{10, 60, 180})
	client := newTestClient(t, app, "")

	var lines []*documents.SubwayLine
	require.Equal(t, http.StatusOK, client.do(http.MethodGet, "/v1/subway-lines", nil, &lines))
	require.Len(t, lines, 1)
	require.Equal(t, line.ID, lines[0].ID)
	require.Len(t, lines[0].Stations, 1)
	require.Equal(t, station.ID, lines[0].Stations[0].ID)

	congestion := &documents.TrainCongestion{}
	path := fmt.Sprintf("/v1/trains/congestions?stationId=%s&trainNo=2240", station.ID)
	require.Equal(t, http.StatusOK, client.do(http.MethodGet, path, nil, congestion))
	require.Equal(t, "2240", congestion.TrainNo)
	require.Len(t, congestion.Congestion, 3)
	require.Equal(t, models.CongestionVeryCongested, congestion.Congestion[2].Congestion)

	status, code := client.errorCode(http.MethodGet, fmt.Sprintf("/v1/trains/congestions?stationId=%s", station.ID), nil)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "InvalidQueryParameter", code)
}

func TestRootDocument(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()
	app.AppAPIServer.Start()
	defer app.AppAPIServer.Stop(ctx)

	root := map[string]string{}
	require.Equal(t, http.StatusOK, newTestClient(t, app, "").do(http.MethodGet, "/v1/", nil, &root))
	rctx := server_test.NewTestServerRequestContext(app)
	require.Equal(t, routes.MakeLostPostsLink(rctx), root["lost_posts_url"])
	require.Equal(t, app.AppAPIServer.GetServerURL()+"/v1/lost-posts", root["lost_posts_url"])
}
