package lost112_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/app/server_test"
	"github.com/ahachul/ahachul-backend/server/services/lost112"
)

func TestLost112Import(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()

	line, _ := server_test.CreateSubwayLine(t, ctx, app, "2호선")
	category := server_test.CreateCategory(t, ctx, app, "지갑")

	app.FakeItemSource.SetItems([]*lost112.Item{
		{
			Title:         "검정 지갑",
			Content:       "강남역에서 습득",
			ReceivedDate:  "2023-08-01 09:30:00",
			Storage:       "강남역 유실물센터",
			StorageNumber: "02-1234-5678",
			Category:      "지갑",
			SubwayLine:    "2호선",
			PageURL:       "https://www.lost112.go.kr/find/1",
		},
		{
			Title:        "검정 지갑",
			ReceivedDate: "2023-08-01",
			PageURL:      "https://www.lost112.go.kr/find/1",
		},
		{
			Title:        "우산",
			ReceivedDate: "2023-08-02",
			Category:     "우산",
			SubwayLine:   "9호선",
			PageURL:      "https://www.lost112.go.kr/find/2",
		},
		{
			Title:        "No page",
			ReceivedDate: "2023-08-02",
		},
		{
			Title:        "Bad date",
			ReceivedDate: "yesterday",
			PageURL:      "https://www.lost112.go.kr/find/3",
		},
	})

	created, err := app.Lost112Service.Import(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, created)

	existing, err := app.LostPostStore.ListExistingPageURLs(ctx, nil, []string{
		"https://www.lost112.go.kr/find/1",
		"https://www.lost112.go.kr/find/2",
		"https://www.lost112.go.kr/find/3",
	})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"https://www.lost112.go.kr/find/1", "https://www.lost112.go.kr/find/2"}, existing)

	posts, _, err := app.LostPostStore.Search(ctx, nil, &models.LostPostSearch{
		LostType:     models.LostTypeAcquire,
		SubwayLineID: &line.ID,
		Pagination:   models.NewPagination(10, nil),
	})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "검정 지갑", posts[0].Title)
	require.Equal(t, category.ID, *posts[0].CategoryID)
	require.Equal(t, models.LostOriginLost112, posts[0].Origin)
	// 09:30 in Korea is 00:30 UTC
	require.Equal(t, 0, posts[0].ReceivedDate.UTC().Hour())

	t.Run("ImportIsIdempotent", func(t *testing.T) {
		created, err := app.Lost112Service.Import(ctx)
		require.NoError(t, err)
		require.Equal(t, 0, created)
	})

	t.Run("LongTitleIsTruncated", func(t *testing.T) {
		app.FakeItemSource.SetItems([]*lost112.Item{{
			Title:        strings.Repeat("가", 120),
			ReceivedDate: "2023-09-01",
			PageURL:      "https://www.lost112.go.kr/find/4",
		}})
		created, err := app.Lost112Service.Import(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, created)

		posts, _, err := app.LostPostStore.Search(ctx, nil, &models.LostPostSearch{
			LostType:   models.LostTypeAcquire,
			Pagination: models.NewPagination(1, nil),
		})
		require.NoError(t, err)
		require.Len(t, posts, 1)
		require.Equal(t, strings.Repeat("가", 97)+"...", posts[0].Title)
	})

	t.Run("SourceError", func(t *testing.T) {
		app.FakeItemSource.SetError(errors.New("feed unavailable"))
		_, err := app.Lost112Service.Import(ctx)
		require.Error(t, err)
	})
}
