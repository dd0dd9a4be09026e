package train_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/app/server_test"
)

func TestGetCongestion(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()

	_, station := server_test.CreateSubwayLine(t, ctx, app, "2호선")
	_, otherStation := server_test.CreateSubwayLine(t, ctx, app, "신분당선")
	app.FakeCarPercentageSource.Set("2", "2240", []int{20, 100, 230})

	congestion, err := app.TrainService.GetCongestion(ctx, station.ID, " 2240 ")
	require.NoError(t, err)
	require.Equal(t, "2240", congestion.TrainNo)
	require.Equal(t, station.ID, congestion.StationID)
	require.Len(t, congestion.Congestion, 3)
	require.Equal(t, models.CongestionSmooth, congestion.Congestion[0].Congestion)
	require.Equal(t, models.CongestionCongested, congestion.Congestion[1].Congestion)
	require.Equal(t, models.CongestionVeryCongested, congestion.Congestion[2].Congestion)

	_, err = app.TrainService.GetCongestion(ctx, station.ID, "")
	require.True(t, gerror.IsInvalidArgument(err))

	_, err = app.TrainService.GetCongestion(ctx, otherStation.ID, "2240")
	require.True(t, gerror.IsInvalidSubwayLine(err))

	_, err = app.TrainService.GetCongestion(ctx, station.ID, "9999")
	require.True(t, gerror.IsNotFound(err))
}
