package comment

import (
	"context"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/dto"
	"github.com/ahachul/ahachul-backend/server/store"
)

type CommentService struct {
	db                 *store.DB
	commentStore       store.CommentStore
	lostPostStore      store.LostPostStore
	communityPostStore store.CommunityPostStore
	clk                clock.Clock
	logger.Log
}

func NewCommentService(
	db *store.DB,
	commentStore store.CommentStore,
	lostPostStore store.LostPostStore,
	communityPostStore store.CommunityPostStore,
	clk clock.Clock,
	logFactory logger.LogFactory,
) *CommentService {
	return &CommentService{
		db:                 db,
		commentStore:       commentStore,
		lostPostStore:      lostPostStore,
		communityPostStore: communityPostStore,
		clk:                clk,
		Log:                logFactory("CommentService"),
	}
}

func (s *CommentService) List(ctx context.Context, postType models.PostType, postID models.ResourceID) ([]*models.CommentWithWriter, error) {
	if !postType.Valid() {
		return nil, gerror.NewErrInvalidArgument("Unknown post type").EDetail("post_type", postType)
	}
	comments, err := s.commentStore.ListByPost(ctx, nil, postType, postID)
	if err != nil {
		return nil, errors.Wrap(err, "error listing comments")
	}
	for _, comment := range comments {
		if comment.IsDeleted() {
			comment.Content = ""
		}
	}
	return comments, nil
}

func (s *CommentService) Count(ctx context.Context, txOrNil *store.Tx, postType models.PostType, postID models.ResourceID) (int, error) {
	return s.commentStore.CountByPost(ctx, txOrNil, postType, postID)
}

func (s *CommentService) Create(ctx context.Context, me models.MemberID, create *dto.CreateComment) (*models.Comment, error) {
	if !create.PostType.Valid() {
		return nil, gerror.NewErrInvalidArgument("Unknown post type").EDetail("post_type", create.PostType)
	}
	content := strings.TrimSpace(create.Content)
	if content == "" {
		return nil, gerror.NewErrValidationFailed("Comment content must be set")
	}
	var comment *models.Comment
	err := s.db.WithTx(ctx, nil, func(tx *store.Tx) error {
		err := s.checkPostVisible(ctx, tx, create.PostType, create.PostID)
		if err != nil {
			return err
		}
		if create.UpperCommentID != nil {
			upper, err := s.commentStore.Read(ctx, tx, *create.UpperCommentID)
			if err != nil {
				if gerror.IsNotFound(err) {
					return gerror.NewErrInvalidArgument("Unknown upper comment").EDetail("upper_comment_id", *create.UpperCommentID)
				}
				return err
			}
			if upper.PostType != create.PostType || upper.PostID != create.PostID {
				return gerror.NewErrInvalidArgument("Upper comment belongs to a different post").
					EDetail("upper_comment_id", *create.UpperCommentID)
			}
		}
		comment = models.NewComment(models.NewTime(s.clk.Now()), create.PostType, create.PostID, create.UpperCommentID, me, content)
		return s.commentStore.Create(ctx, tx, comment)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, me models.MemberID, id models.CommentID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, gerror.NewErrValidationFailed("Comment content must be set")
	}
	var comment *models.Comment
	err := s.db.WithTx(ctx, nil, func(tx *store.Tx) error {
		var err error
		comment, err = s.readWritten(ctx, tx, me, id)
		if err != nil {
			return err
		}
		comment.Content = content
		comment.UpdatedAt = models.NewTime(s.clk.Now())
		return s.commentStore.Update(ctx, tx, comment)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, me models.MemberID, id models.CommentID) (*models.Comment, error) {
	var comment *models.Comment
	err := s.db.WithTx(ctx, nil, func(tx *store.Tx) error {
		var err error
		comment, err = s.readWritten(ctx, tx, me, id)
		if err != nil {
			return err
		}
		comment.Status = models.CommentStatusDeleted
		comment.UpdatedAt = models.NewTime(s.clk.Now())
		return s.commentStore.Update(ctx, tx, comment)
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) readWritten(ctx context.Context, txOrNil *store.Tx, me models.MemberID, id models.CommentID) (*models.Comment, error) {
	comment, err := s.commentStore.Read(ctx, txOrNil, id)
	if err != nil {
		return nil, err
	}
	if comment.IsDeleted() {
		return nil, gerror.NewErrNotFound("Comment not found").IDetail("comment_id", id)
	}
	if comment.MemberID != me {
		return nil, gerror.NewErrForbidden("Only the writer can change a comment").IDetail("comment_id", id)
	}
	return comment, nil
}

// checkPostVisible returns gerror.ErrPostNotFound unless the post exists and can be read.
func (s *CommentService) checkPostVisible(ctx context.Context, txOrNil *store.Tx, postType models.PostType, postID models.ResourceID) error {
	var visible bool
	switch postType {
	case models.PostTypeLost:
		post, err := s.lostPostStore.Read(ctx, txOrNil, models.LostPostIDFromResourceID(postID))
		if err != nil && !gerror.IsNotFound(err) {
			return err
		}
		visible = err == nil && !post.IsDeleted()
	case models.PostTypeCommunity:
		post, err := s.communityPostStore.Read(ctx, txOrNil, models.CommunityPostIDFromResourceID(postID))
		if err != nil && !gerror.IsNotFound(err) {
			return err
		}
		visible = err == nil && post.IsVisible()
	}
	if !visible {
		return gerror.NewErrPostNotFound().IDetail("post_type", postType).IDetail("post_id", postID)
	}
	return nil
}
