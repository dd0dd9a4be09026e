package file_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/app/server_test"
	"github.com/ahachul/ahachul-backend/server/dto"
)

var jpegHeader = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01}

func TestLostPostImages(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()

	writer := server_test.CreateMember(t, ctx, app, "writer")
	line, _ := server_test.CreateSubwayLine(t, ctx, app, "")
	category := server_test.CreateCategory(t, ctx, app, "Bag")
	post := server_test.CreateLostPost(t, ctx, app, writer.ID, line.ID, category.ID, "")

	images, err := app.FileService.UploadLostPostImages(ctx, nil, post.ID, []*dto.FileUpload{
		{FileName: "first.jpg", Reader: bytes.NewReader(jpegHeader)},
		{FileName: "second.jpg", Reader: bytes.NewReader(jpegHeader)},
	})
	require.NoError(t, err)
	require.Len(t, images, 2)

	first, err := app.FileService.FirstLostPostImageURL(ctx, nil, post.ID)
	require.NoError(t, err)
	require.NotNil(t, first)
	require.Equal(t, images[0].ImageURL, *first)

	t.Run("OpenBlob", func(t *testing.T) {
		key := strings.TrimPrefix(images[0].ImageURL, "/v1/files/")
		require.True(t, strings.HasPrefix(key, "lost-posts/"), key)
		reader, err := app.FileService.OpenBlob(ctx, key)
		require.NoError(t, err)
		defer reader.Close()
		data, err := io.ReadAll(reader)
		require.NoError(t, err)
		require.Equal(t, jpegHeader, data)
	})

	t.Run("OpenBlobOutsideLostPosts", func(t *testing.T) {
		for _, key := range []string{"members/1.jpg", "lost-posts/../secrets", "lost-posts"} {
			_, err := app.FileService.OpenBlob(ctx, key)
			require.True(t, gerror.IsNotFound(err), key)
		}
	})

	t.Run("RejectMixedUpload", func(t *testing.T) {
		_, err := app.FileService.UploadLostPostImages(ctx, nil, post.ID, []*dto.FileUpload{
			{FileName: "third.jpg", Reader: bytes.NewReader(jpegHeader)},
			{FileName: "notes.txt", Reader: strings.NewReader("just some text")},
		})
		require.True(t, gerror.IsUnsupportedFileType(err))
		listed, err := app.FileService.ListLostPostImages(ctx, nil, post.ID)
		require.NoError(t, err)
		require.Len(t, listed, 2)
	})

	t.Run("Delete", func(t *testing.T) {
		err := app.FileService.DeleteLostPostImages(ctx, nil, post.ID, []models.LostPostFileID{images[0].ImageID})
		require.NoError(t, err)
		listed, err := app.FileService.ListLostPostImages(ctx, nil, post.ID)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		require.Equal(t, images[1].ImageID, listed[0].ImageID)

		key := strings.TrimPrefix(images[0].ImageURL, "/v1/files/")
		_, err = app.FileService.OpenBlob(ctx, key)
		require.True(t, gerror.IsNotFound(err))
	})
}
