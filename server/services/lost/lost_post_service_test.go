package lost_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/app/server_test"
	"github.com/ahachul/ahachul-backend/server/dto"
	"github.com/ahachul/ahachul-backend/server/services/lost"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func strPtr(s string) *string {
	return &s
}

func TestLostPostLifecycle(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()

	writer := server_test.CreateMember(t, ctx, app, "writer")
	stranger := server_test.CreateMember(t, ctx, app, "stranger")
	line, _ := server_test.CreateSubwayLine(t, ctx, app, "")
	server_test.CreateCategory(t, ctx, app, "wallet")

	post, images, err := app.LostPostService.Create(ctx, writer.ID, &dto.CreateLostPost{
		SubwayLineID: line.ID,
		CategoryName: strPtr("wallet"),
		Title:        "Lost my wallet",
		Content:      "Brown, near exit 3",
		LostType:     models.LostTypeLost,
		Images: []*dto.FileUpload{
			{FileName: "wallet.png", Reader: bytes.NewReader(pngHeader)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, models.LostStatusProgress, post.Status)
	require.Equal(t, models.LostOriginApp, post.Origin)
	require.Len(t, images, 1)
	require.True(t, strings.HasPrefix(images[0].ImageURL, "/v1/files/lost-posts/"), images[0].ImageURL)
	require.True(t, strings.HasSuffix(images[0].ImageURL, ".png"), images[0].ImageURL)

	detail, err := app.LostPostService.Read(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, "wallet", *detail.CategoryName)
	require.Equal(t, "writer", *detail.WriterNickname)
	require.Len(t, detail.Images, 1)
	require.Empty(t, detail.Recommends)

	t.Run("SearchShowsFirstImage", func(t *testing.T) {
		summaries, token, err := app.LostPostService.Search(ctx, &dto.SearchLostPosts{
			LostType:   models.LostTypeLost,
			Pagination: models.NewPagination(10, nil),
		})
		require.NoError(t, err)
		require.Nil(t, token)
		require.Len(t, summaries, 1)
		require.Equal(t, images[0].ImageURL, *summaries[0].ImageURL)
	})

	t.Run("UnknownCategoryMatchesNothing", func(t *testing.T) {
		summaries, token, err := app.LostPostService.Search(ctx, &dto.SearchLostPosts{
			LostType:     models.LostTypeLost,
			CategoryName: strPtr("umbrella"),
			Pagination:   models.NewPagination(10, nil),
		})
		require.NoError(t, err)
		require.Nil(t, token)
		require.Empty(t, summaries)
	})

	t.Run("InvalidLostType", func(t *testing.T) {
		_, _, err := app.LostPostService.Search(ctx, &dto.SearchLostPosts{
			LostType:   "MISPLACED",
			Pagination: models.NewPagination(10, nil),
		})
		require.True(t, gerror.IsInvalidArgument(err))
	})

	t.Run("RejectNonImage", func(t *testing.T) {
		_, _, err := app.LostPostService.Create(ctx, writer.ID, &dto.CreateLostPost{
			SubwayLineID: line.ID,
			Title:        "Lost notes",
			LostType:     models.LostTypeLost,
			Images: []*dto.FileUpload{
				{FileName: "notes.txt", Reader: strings.NewReader("just some text")},
			},
		})
		require.True(t, gerror.IsUnsupportedFileType(err))
	})

	t.Run("UnknownLine", func(t *testing.T) {
		_, _, err := app.LostPostService.Create(ctx, writer.ID, &dto.CreateLostPost{
			SubwayLineID: models.SubwayLineIDFromResourceID(9999),
			Title:        "Lost umbrella",
			LostType:     models.LostTypeLost,
		})
		require.True(t, gerror.IsInvalidSubwayLine(err))
	})

	t.Run("OnlyWriterCanChange", func(t *testing.T) {
		_, err := app.LostPostService.Update(ctx, stranger.ID, post.ID, &dto.UpdateLostPost{Title: strPtr("Mine now")})
		require.True(t, gerror.IsForbidden(err))
		_, err = app.LostPostService.UpdateStatus(ctx, stranger.ID, post.ID, models.LostStatusComplete)
		require.True(t, gerror.IsForbidden(err))
		_, err = app.LostPostService.Delete(ctx, stranger.ID, post.ID)
		require.True(t, gerror.IsForbidden(err))
	})

	t.Run("FailedUpdateKeepsImage", func(t *testing.T) {
		_, err := app.LostPostService.Update(ctx, writer.ID, post.ID, &dto.UpdateLostPost{
			Title:         strPtr("Swap the photo"),
			RemoveFileIDs: []models.LostPostFileID{images[0].ImageID},
			Images: []*dto.FileUpload{
				{FileName: "notes.txt", Reader: strings.NewReader("just some text")},
			},
		})
		require.True(t, gerror.IsUnsupportedFileType(err))

		imgs, err := app.FileService.ListLostPostImages(ctx, nil, post.ID)
		require.NoError(t, err)
		require.Len(t, imgs, 1)
		reader, err := app.FileService.OpenBlob(ctx, strings.TrimPrefix(imgs[0].ImageURL, "/v1/files/"))
		require.NoError(t, err)
		data, err := io.ReadAll(reader)
		reader.Close()
		require.NoError(t, err)
		require.Equal(t, pngHeader, data)

		detail, err := app.LostPostService.Read(ctx, post.ID)
		require.NoError(t, err)
		require.Equal(t, "Lost my wallet", detail.Title)
	})

	t.Run("UpdateAndRemoveImage", func(t *testing.T) {
		updated, err := app.LostPostService.Update(ctx, writer.ID, post.ID, &dto.UpdateLostPost{
			Title:         strPtr("Found it, thanks"),
			RemoveFileIDs: []models.LostPostFileID{images[0].ImageID},
		})
		require.NoError(t, err)
		require.Equal(t, "Found it, thanks", updated.Title)
		imgs, err := app.FileService.ListLostPostImages(ctx, nil, post.ID)
		require.NoError(t, err)
		require.Empty(t, imgs)
		_, err = app.FileService.OpenBlob(ctx, strings.TrimPrefix(images[0].ImageURL, "/v1/files/"))
		require.True(t, gerror.IsNotFound(err))
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		updated, err := app.LostPostService.UpdateStatus(ctx, writer.ID, post.ID, models.LostStatusComplete)
		require.NoError(t, err)
		require.Equal(t, models.LostStatusComplete, updated.Status)
		_, err = app.LostPostService.UpdateStatus(ctx, writer.ID, post.ID, "DONE")
		require.True(t, gerror.IsInvalidArgument(err))
	})

	t.Run("Delete", func(t *testing.T) {
		_, err := app.LostPostService.Delete(ctx, writer.ID, post.ID)
		require.NoError(t, err)
		_, err = app.LostPostService.Read(ctx, post.ID)
		require.True(t, gerror.IsPostNotFound(err))
		_, err = app.LostPostService.Delete(ctx, writer.ID, post.ID)
		require.True(t, gerror.IsPostNotFound(err))
	})
}

func TestImportedPostStatusIsFixed(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()

	member := server_test.CreateMember(t, ctx, app, "someone")
	line, _ := server_test.CreateSubwayLine(t, ctx, app, "")
	now := models.NewTime(time.Now())
	imported := models.NewImportedLostPost(now, now, &line.ID, nil, "Umbrella", "", "", "", "https://www.lost112.go.kr/find/1", "")
	require.NoError(t, app.LostPostStore.Create(ctx, nil, imported))

	_, err = app.LostPostService.UpdateStatus(ctx, member.ID, imported.ID, models.LostStatusComplete)
	require.True(t, gerror.IsInvalidArgument(err))
}

func TestRecommend(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()

	member := server_test.CreateMember(t, ctx, app, "rider")
	line, _ := server_test.CreateSubwayLine(t, ctx, app, "")
	otherLine, _ := server_test.CreateSubwayLine(t, ctx, app, "")
	wallet := server_test.CreateCategory(t, ctx, app, "wallet")
	phone := server_test.CreateCategory(t, ctx, app, "phone")

	post := server_test.CreateLostPost(t, ctx, app, member.ID, line.ID, wallet.ID, "my wallet")
	sameCategory := map[models.LostPostID]bool{}
	for i := 0; i < 2; i++ {
		p := server_test.CreateLostPost(t, ctx, app, member.ID, line.ID, wallet.ID, "")
		sameCategory[p.ID] = true
	}
	otherCategory := map[models.LostPostID]bool{}
	for i := 0; i < 3; i++ {
		p := server_test.CreateLostPost(t, ctx, app, member.ID, line.ID, phone.ID, "")
		otherCategory[p.ID] = true
	}
	server_test.CreateLostPost(t, ctx, app, member.ID, otherLine.ID, wallet.ID, "")

	t.Run("SameCategoryFirstThenFallback", func(t *testing.T) {
		recommended, err := app.LostPostService.Recommend(ctx, nil, post, 4)
		require.NoError(t, err)
		require.Len(t, recommended, 4)
		require.True(t, sameCategory[recommended[0].ID])
		require.True(t, sameCategory[recommended[1].ID])
		require.True(t, otherCategory[recommended[2].ID])
		require.True(t, otherCategory[recommended[3].ID])
	})

	t.Run("SameCategoryFillsRequest", func(t *testing.T) {
		recommended, err := app.LostPostService.Recommend(ctx, nil, post, 2)
		require.NoError(t, err)
		require.Len(t, recommended, 2)
		for _, r := range recommended {
			require.True(t, sameCategory[r.ID])
		}
	})

	t.Run("FewerThanRequested", func(t *testing.T) {
		recommended, err := app.LostPostService.Recommend(ctx, nil, post, lost.RecommendSize)
		require.NoError(t, err)
		require.Len(t, recommended, 5)
		for _, r := range recommended {
			require.NotEqual(t, post.ID, r.ID)
			require.Equal(t, line.ID, *r.SubwayLineID)
		}
	})

	t.Run("NoCategory", func(t *testing.T) {
		uncategorised := *post
		uncategorised.CategoryID = nil
		recommended, err := app.LostPostService.Recommend(ctx, nil, &uncategorised, 4)
		require.NoError(t, err)
		require.NotNil(t, recommended)
		require.Empty(t, recommended)
	})
}
