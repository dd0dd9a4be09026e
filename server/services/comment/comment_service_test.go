package comment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/app/server_test"
	"github.com/ahachul/ahachul-backend/server/dto"
)

func TestCommentLifecycle(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()

	writer := server_test.CreateMember(t, ctx, app, "writer")
	commenter := server_test.CreateMember(t, ctx, app, "commenter")
	line, _ := server_test.CreateSubwayLine(t, ctx, app, "")
	post := server_test.CreateCommunityPost(t, ctx, app, writer.ID, line.ID, "")
	other := server_test.CreateCommunityPost(t, ctx, app, writer.ID, line.ID, "other")

	comment, err := app.CommentService.Create(ctx, commenter.ID, &dto.CreateComment{
		PostType: models.PostTypeCommunity,
		PostID:   post.ID.ResourceID,
		Content:  "  Same here  ",
	})
	require.NoError(t, err)
	require.Equal(t, "Same here", comment.Content)

	t.Run("Reply", func(t *testing.T) {
		reply, err := app.CommentService.Create(ctx, writer.ID, &dto.CreateComment{
			PostType:       models.PostTypeCommunity,
			PostID:         post.ID.ResourceID,
			UpperCommentID: &comment.ID,
			Content:        "Thanks",
		})
		require.NoError(t, err)
		require.Equal(t, comment.ID, *reply.UpperCommentID)
	})

	t.Run("ReplyOnDifferentPost", func(t *testing.T) {
		_, err := app.CommentService.Create(ctx, writer.ID, &dto.CreateComment{
			PostType:       models.PostTypeCommunity,
			PostID:         other.ID.ResourceID,
			UpperCommentID: &comment.ID,
			Content:        "Wrong thread",
		})
		require.True(t, gerror.IsInvalidArgument(err))
	})

	t.Run("EmptyContent", func(t *testing.T) {
		_, err := app.CommentService.Create(ctx, writer.ID, &dto.CreateComment{
			PostType: models.PostTypeCommunity,
			PostID:   post.ID.ResourceID,
			Content:  "   ",
		})
		require.True(t, gerror.IsValidationFailed(err))
	})

	t.Run("UnknownPostType", func(t *testing.T) {
		_, err := app.CommentService.Create(ctx, writer.ID, &dto.CreateComment{
			PostType: models.PostType("NOTICE"),
			PostID:   post.ID.ResourceID,
			Content:  "Hello",
		})
		require.True(t, gerror.IsInvalidArgument(err))
	})

	t.Run("MissingPost", func(t *testing.T) {
		_, err := app.CommentService.Create(ctx, writer.ID, &dto.CreateComment{
			PostType: models.PostTypeLost,
			PostID:   post.ID.ResourceID + 1000,
			Content:  "Hello",
		})
		require.True(t, gerror.IsPostNotFound(err))
	})

	t.Run("OnlyWriterCanChange", func(t *testing.T) {
		_, err := app.CommentService.Update(ctx, writer.ID, comment.ID, "Edited")
		require.True(t, gerror.IsForbidden(err))
		_, err = app.CommentService.Delete(ctx, writer.ID, comment.ID)
		require.True(t, gerror.IsForbidden(err))
	})

	t.Run("Update", func(t *testing.T) {
		updated, err := app.CommentService.Update(ctx, commenter.ID, comment.ID, "Same here, car 7")
		require.NoError(t, err)
		require.Equal(t, "Same here, car 7", updated.Content)
	})

	t.Run("DeletedContentIsBlanked", func(t *testing.T) {
		_, err := app.CommentService.Delete(ctx, commenter.ID, comment.ID)
		require.NoError(t, err)

		comments, err := app.CommentService.List(ctx, models.PostTypeCommunity, post.ID.ResourceID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		for _, listed := range comments {
			if listed.ID == comment.ID {
				require.True(t, listed.IsDeleted())
				require.Empty(t, listed.Content)
			} else {
				require.Equal(t, "Thanks", listed.Content)
				require.Equal(t, "writer", listed.Writer.GetNickname())
			}
		}

		_, err = app.CommentService.Update(ctx, commenter.ID, comment.ID, "Back again")
		require.True(t, gerror.IsNotFound(err))
	})
}

func TestCommentOnDeletedPost(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()

	writer := server_test.CreateMember(t, ctx, app, "writer")
	line, _ := server_test.CreateSubwayLine(t, ctx, app, "")
	category := server_test.CreateCategory(t, ctx, app, "Wallet")
	lostPost := server_test.CreateLostPost(t, ctx, app, writer.ID, line.ID, category.ID, "")
	communityPost := server_test.CreateCommunityPost(t, ctx, app, writer.ID, line.ID, "")

	_, err = app.CommentService.Create(ctx, writer.ID, &dto.CreateComment{
		PostType: models.PostTypeLost,
		PostID:   lostPost.ID.ResourceID,
		Content:  "Still looking",
	})
	require.NoError(t, err)
	count, err := app.CommentService.Count(ctx, nil, models.PostTypeLost, lostPost.ID.ResourceID)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	_, err = app.LostPostService.Delete(ctx, writer.ID, lostPost.ID)
	require.NoError(t, err)
	_, err = app.CommunityPostService.Delete(ctx, writer.ID, communityPost.ID)
	require.NoError(t, err)

	_, err = app.CommentService.Create(ctx, writer.ID, &dto.CreateComment{
		PostType: models.PostTypeLost,
		PostID:   lostPost.ID.ResourceID,
		Content:  "Found it",
	})
	require.True(t, gerror.IsPostNotFound(err))
	_, err = app.CommentService.Create(ctx, writer.ID, &dto.CreateComment{
		PostType: models.PostTypeCommunity,
		PostID:   communityPost.ID.ResourceID,
		Content:  "Hello",
	})
	require.True(t, gerror.IsPostNotFound(err))
}
