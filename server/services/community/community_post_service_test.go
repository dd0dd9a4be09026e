package community_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/app/server_test"
	"github.com/ahachul/ahachul-backend/server/dto"
)

func TestCommunityPostLifecycle(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()

	writer := server_test.CreateMember(t, ctx, app, "writer")
	stranger := server_test.CreateMember(t, ctx, app, "stranger")
	line, _ := server_test.CreateSubwayLine(t, ctx, app, "")

	post, err := app.CommunityPostService.Create(ctx, writer.ID, &dto.CreateCommunityPost{
		SubwayLineID: line.ID,
		Title:        "Aircon is broken on car 4",
		Content:      "Bring a fan",
		Category:     models.CommunityCategoryIssue,
	})
	require.NoError(t, err)
	require.Equal(t, models.CommunityPostStatusCreated, post.Status)

	t.Run("ReadCountsViews", func(t *testing.T) {
		detail, err := app.CommunityPostService.Read(ctx, post.ID)
		require.NoError(t, err)
		require.Equal(t, int64(1), detail.Views)
		require.Equal(t, "writer", *detail.WriterNickname)
		detail, err = app.CommunityPostService.Read(ctx, post.ID)
		require.NoError(t, err)
		require.Equal(t, int64(2), detail.Views)
	})

	t.Run("SearchIncludesWriter", func(t *testing.T) {
		summaries, token, err := app.CommunityPostService.Search(ctx, &models.CommunityPostSearch{
			SubwayLineID: &line.ID,
			Pagination:   models.NewPagination(10, nil),
		})
		require.NoError(t, err)
		require.Nil(t, token)
		require.Len(t, summaries, 1)
		require.Equal(t, "writer", summaries[0].Writer.GetNickname())
	})

	t.Run("KeywordWildcardsMatchLiterally", func(t *testing.T) {
		for _, keyword := range []string{"%", "_"} {
			summaries, _, err := app.CommunityPostService.Search(ctx, &models.CommunityPostSearch{
				Keyword:    keyword,
				Pagination: models.NewPagination(10, nil),
			})
			require.NoError(t, err)
			require.Empty(t, summaries, "keyword %q", keyword)
		}
		summaries, _, err := app.CommunityPostService.Search(ctx, &models.CommunityPostSearch{
			Keyword:    "car 4",
			Pagination: models.NewPagination(10, nil),
		})
		require.NoError(t, err)
		require.Len(t, summaries, 1)
	})

	t.Run("InvalidCategory", func(t *testing.T) {
		category := models.CommunityCategory("GOSSIP")
		_, _, err := app.CommunityPostService.Search(ctx, &models.CommunityPostSearch{
			Category:   &category,
			Pagination: models.NewPagination(10, nil),
		})
		require.True(t, gerror.IsInvalidArgument(err))
	})

	t.Run("OnlyWriterCanChange", func(t *testing.T) {
		title := "Hijacked"
		_, err := app.CommunityPostService.Update(ctx, stranger.ID, post.ID, &models.CommunityPostUpdate{Title: &title})
		require.True(t, gerror.IsForbidden(err))
		_, err = app.CommunityPostService.Delete(ctx, stranger.ID, post.ID)
		require.True(t, gerror.IsForbidden(err))
	})

	t.Run("Update", func(t *testing.T) {
		title := "Aircon fixed"
		category := models.CommunityCategoryFree
		updated, err := app.CommunityPostService.Update(ctx, writer.ID, post.ID, &models.CommunityPostUpdate{Title: &title, Category: &category})
		require.NoError(t, err)
		require.Equal(t, title, updated.Title)
		require.Equal(t, category, updated.Category)
	})

	t.Run("Delete", func(t *testing.T) {
		_, err := app.CommunityPostService.Delete(ctx, writer.ID, post.ID)
		require.NoError(t, err)
		_, err = app.CommunityPostService.Read(ctx, post.ID)
		require.True(t, gerror.IsPostNotFound(err))
		summaries, _, err := app.CommunityPostService.Search(ctx, &models.CommunityPostSearch{Pagination: models.NewPagination(10, nil)})
		require.NoError(t, err)
		require.Empty(t, summaries)
	})
}

func TestCommunityHotPosts(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()

	writer := server_test.CreateMember(t, ctx, app, "writer")
	line, _ := server_test.CreateSubwayLine(t, ctx, app, "")
	hot := server_test.CreateCommunityPost(t, ctx, app, writer.ID, line.ID, "hot")
	server_test.CreateCommunityPost(t, ctx, app, writer.ID, line.ID, "cold")
	for i := 0; i < models.DefaultHotPostViews; i++ {
		require.NoError(t, app.CommunityPostStore.IncrementViews(ctx, nil, hot.ID))
	}

	summaries, _, err := app.CommunityPostService.SearchHot(ctx, nil, models.NewPagination(10, nil))
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, hot.ID, summaries[0].ID)

	summaries, _, err = app.CommunityPostService.SearchHot(ctx, &line.ID, models.NewPagination(10, nil))
	require.NoError(t, err)
	require.Len(t, summaries, 1)
}

func TestCommunityPostPagination(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()

	writer := server_test.CreateMember(t, ctx, app, "writer")
	line, _ := server_test.CreateSubwayLine(t, ctx, app, "")
	created := map[models.CommunityPostID]bool{}
	for i := 0; i < 7; i++ {
		post := server_test.CreateCommunityPost(t, ctx, app, writer.ID, line.ID, "")
		created[post.ID] = true
	}

	pagination := models.NewPagination(3, nil)
	seen := map[models.CommunityPostID]bool{}
	var pageSizes []int
	for {
		summaries, token, err := app.CommunityPostService.Search(ctx, &models.CommunityPostSearch{Pagination: pagination})
		require.NoError(t, err)
		pageSizes = append(pageSizes, len(summaries))
		for _, summary := range summaries {
			require.False(t, seen[summary.ID], "post %s returned twice", summary.ID)
			seen[summary.ID] = true
		}
		if token == nil {
			break
		}
		pagination.PageToken = token
	}
	require.Equal(t, []int{3, 3, 1}, pageSizes)
	require.Equal(t, created, seen)
}
