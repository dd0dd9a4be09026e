package subway_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/app/server_test"
)

func seedData() []*models.SubwayLineWithStations {
	now := models.NewTime(time.Now())
	return []*models.SubwayLineWithStations{
		{
			SubwayLine: models.NewSubwayLine(now, "2호선", "1577-1234", "METROPOLITAN"),
			Stations: []*models.Station{
				models.NewStation(now, models.SubwayLineID{}, "강남", 222),
				models.NewStation(now, models.SubwayLineID{}, "역삼", 221),
			},
		},
		{
			SubwayLine: models.NewSubwayLine(now, "3호선", "1577-1234", "METROPOLITAN"),
			Stations: []*models.Station{
				models.NewStation(now, models.SubwayLineID{}, "교대", 330),
			},
		},
	}
}

func TestSubwaySeed(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()

	linesCreated, stationsCreated, err := app.SubwayService.Seed(ctx, seedData())
	require.NoError(t, err)
	require.Equal(t, 2, linesCreated)
	require.Equal(t, 3, stationsCreated)

	// Seeding the same data again creates nothing
	linesCreated, stationsCreated, err = app.SubwayService.Seed(ctx, seedData())
	require.NoError(t, err)
	require.Equal(t, 0, linesCreated)
	require.Equal(t, 0, stationsCreated)

	lines, err := app.SubwayService.ListLines(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	stationCounts := map[string]int{}
	for _, line := range lines {
		for _, station := range line.Stations {
			require.Equal(t, line.ID, station.SubwayLineID)
		}
		stationCounts[line.Name] = len(line.Stations)
	}
	require.Equal(t, map[string]int{"2호선": 2, "3호선": 1}, stationCounts)
}

func TestSubwayReadLine(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()

	line, station := server_test.CreateSubwayLine(t, ctx, app, "")
	read, err := app.SubwayService.ReadLine(ctx, nil, line.ID)
	require.NoError(t, err)
	require.Equal(t, line.Name, read.Name)

	readStation, err := app.SubwayService.ReadStation(ctx, nil, station.ID)
	require.NoError(t, err)
	require.Equal(t, line.ID, readStation.SubwayLineID)

	_, err = app.SubwayService.ReadLine(ctx, nil, models.SubwayLineIDFromResourceID(line.ID.ResourceID+1000))
	require.True(t, gerror.IsInvalidSubwayLine(err))
}
