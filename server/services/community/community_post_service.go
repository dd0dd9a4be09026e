package community

import (
	"context"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/dto"
	"github.com/ahachul/ahachul-backend/server/services"
	"github.com/ahachul/ahachul-backend/server/store"
)

// HotPostViews is the number of views that makes a post show up in the hot listing.
type HotPostViews int64

type CommunityPostService struct {
	db                 *store.DB
	communityPostStore store.CommunityPostStore
	memberStore        store.MemberStore
	commentStore       store.CommentStore
	subwayService      services.SubwayService
	hotPostViews       HotPostViews
	clk                clock.Clock
	logger.Log
}

func NewCommunityPostService(
	db *store.DB,
	communityPostStore store.CommunityPostStore,
	memberStore store.MemberStore,
	commentStore store.CommentStore,
	subwayService services.SubwayService,
	hotPostViews HotPostViews,
	clk clock.Clock,
	logFactory logger.LogFactory,
) *CommunityPostService {
	if hotPostViews <= 0 {
		hotPostViews = models.DefaultHotPostViews
	}
	return &CommunityPostService{
		db:                 db,
		communityPostStore: communityPostStore,
		memberStore:        memberStore,
		commentStore:       commentStore,
		subwayService:      subwayService,
		hotPostViews:       hotPostViews,
		clk:                clk,
		Log:                logFactory("CommunityPostService"),
	}
}

func (s *CommunityPostService) Search(ctx context.Context, search *models.CommunityPostSearch) ([]*dto.CommunityPostSummary, *models.PageToken, error) {
	err := search.Pagination.Validate()
	if err != nil {
		return nil, nil, err
	}
	if search.Category != nil && !search.Category.Valid() {
		return nil, nil, gerror.NewErrInvalidArgument("Unknown category").EDetail("category", *search.Category)
	}
	search.Keyword = strings.TrimSpace(search.Keyword)
	results, token, err := s.communityPostStore.Search(ctx, nil, search)
	if err != nil {
		return nil, nil, errors.Wrap(err, "error searching community posts")
	}
	summaries := make([]*dto.CommunityPostSummary, 0, len(results))
	for _, result := range results {
		count, err := s.commentStore.CountByPost(ctx, nil, models.PostTypeCommunity, result.ID.ResourceID)
		if err != nil {
			return nil, nil, errors.Wrap(err, "error counting comments")
		}
		summaries = append(summaries, &dto.CommunityPostSummary{CommunityPostSearchResult: result, CommentCount: count})
	}
	return summaries, token, nil
}

func (s *CommunityPostService) SearchHot(ctx context.Context, subwayLineID *models.SubwayLineID, pagination models.Pagination) ([]*dto.CommunityPostSummary, *models.PageToken, error) {
	return s.Search(ctx, &models.CommunityPostSearch{
		SubwayLineID: subwayLineID,
		MinViews:     int64(s.hotPostViews),
		Pagination:   pagination,
	})
}

func (s *CommunityPostService) Read(ctx context.Context, id models.CommunityPostID) (*dto.CommunityPostDetail, error) {
	var post *models.CommunityPost
	err := s.db.WithTx(ctx, nil, func(tx *store.Tx) error {
		var err error
		post, err = s.readVisible(ctx, tx, id)
		if err != nil {
			return err
		}
		err = s.communityPostStore.IncrementViews(ctx, tx, post.ID)
		if err != nil {
			return errors.Wrap(err, "error counting view")
		}
		post.Views++
		return nil
	})
	if err != nil {
		return nil, err
	}
	detail := &dto.CommunityPostDetail{CommunityPost: post}
	writer, err := s.memberStore.Read(ctx, nil, post.MemberID)
	if err != nil && !gerror.IsNotFound(err) {
		return nil, errors.Wrap(err, "error reading writer")
	}
	if err == nil {
		detail.WriterNickname = writer.Nickname
	}
	detail.CommentCount, err = s.commentStore.CountByPost(ctx, nil, models.PostTypeCommunity, post.ID.ResourceID)
	if err != nil {
		return nil, errors.Wrap(err, "error counting comments")
	}
	return detail, nil
}

func (s *CommunityPostService) Create(ctx context.Context, me models.MemberID, create *dto.CreateCommunityPost) (*models.CommunityPost, error) {
	var post *models.CommunityPost
	err := s.db.WithTx(ctx, nil, func(tx *store.Tx) error {
		line, err := s.subwayService.ReadLine(ctx, tx, create.SubwayLineID)
		if err != nil {
			return err
		}
		post = models.NewCommunityPost(models.NewTime(s.clk.Now()), me, line.ID, create.Title, create.Content, create.Category)
		err = post.Validate()
		if err != nil {
			return gerror.NewErrValidationFailed(err.Error())
		}
		return s.communityPostStore.Create(ctx, tx, post)
	})
	if err != nil {
		return nil, err
	}
	s.Infof("Member %s created community post %s", me, post.ID)
	return post, nil
}

func (s *CommunityPostService) Update(ctx context.Context, me models.MemberID, id models.CommunityPostID, update *models.CommunityPostUpdate) (*models.CommunityPost, error) {
	var post *models.CommunityPost
	err := s.db.WithTx(ctx, nil, func(tx *store.Tx) error {
		var err error
		post, err = s.readWritten(ctx, tx, me, id)
		if err != nil {
			return err
		}
		if update.Title != nil {
			post.Title = *update.Title
		}
		if update.Content != nil {
			post.Content = *update.Content
		}
		if update.Category != nil {
			post.Category = *update.Category
		}
		err = post.Validate()
		if err != nil {
			return gerror.NewErrValidationFailed(err.Error())
		}
		post.UpdatedAt = models.NewTime(s.clk.Now())
		return s.communityPostStore.Update(ctx, tx, post)
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *CommunityPostService) Delete(ctx context.Context, me models.MemberID, id models.CommunityPostID) (*models.CommunityPost, error) {
	var post *models.CommunityPost
	err := s.db.WithTx(ctx, nil, func(tx *store.Tx) error {
		var err error
		post, err = s.readWritten(ctx, tx, me, id)
		if err != nil {
			return err
		}
		post.Status = models.CommunityPostStatusDeleted
		post.UpdatedAt = models.NewTime(s.clk.Now())
		return s.communityPostStore.Update(ctx, tx, post)
	})
	if err != nil {
		return nil, err
	}
	s.Infof("Member %s deleted community post %s", me, post.ID)
	return post, nil
}

func (s *CommunityPostService) Block(ctx context.Context, txOrNil *store.Tx, id models.CommunityPostID) error {
	return s.db.WithTx(ctx, txOrNil, func(tx *store.Tx) error {
		post, err := s.communityPostStore.Read(ctx, tx, id)
		if err != nil {
			return err
		}
		if post.Status == models.CommunityPostStatusBlocked {
			return nil
		}
		post.Status = models.CommunityPostStatusBlocked
		post.UpdatedAt = models.NewTime(s.clk.Now())
		err = s.communityPostStore.Update(ctx, tx, post)
		if err != nil {
			return err
		}
		s.Warnf("Blocked community post %s", post.ID)
		return nil
	})
}

func (s *CommunityPostService) readVisible(ctx context.Context, txOrNil *store.Tx, id models.CommunityPostID) (*models.CommunityPost, error) {
	post, err := s.communityPostStore.Read(ctx, txOrNil, id)
	if err != nil {
		if gerror.IsNotFound(err) {
			return nil, gerror.NewErrPostNotFound().Wrap(err)
		}
		return nil, err
	}
	if !post.IsVisible() {
		return nil, gerror.NewErrPostNotFound().IDetail("community_post_id", id)
	}
	return post, nil
}

func (s *CommunityPostService) readWritten(ctx context.Context, txOrNil *store.Tx, me models.MemberID, id models.CommunityPostID) (*models.CommunityPost, error) {
	post, err := s.readVisible(ctx, txOrNil, id)
	if err != nil {
		return nil, err
	}
	if post.MemberID != me {
		return nil, gerror.NewErrForbidden("Only the writer can change a post").IDetail("community_post_id", id)
	}
	return post, nil
}
