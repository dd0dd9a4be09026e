package lost

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

// RecommendSize is the number of similar posts shown alongside a lost post.
const RecommendSize = 12

type LostPostService struct {
	db            *store.DB
	lostPostStore store.LostPostStore
	categoryStore store.CategoryStore
	memberStore   store.MemberStore
	commentStore  store.CommentStore
	subwayService services.SubwayService
	fileService   services.FileService
	clk           clock.Clock
	logger.Log
}

func NewLostPostService(
	db *store.DB,
	lostPostStore store.LostPostStore,
	categoryStore store.CategoryStore,
	memberStore store.MemberStore,
	commentStore store.CommentStore,
	subwayService services.SubwayService,
	fileService services.FileService,
	clk clock.Clock,
	logFactory logger.LogFactory,
) *LostPostService {
	return &LostPostService{
		db:            db,
		lostPostStore: lostPostStore,
		categoryStore: categoryStore,
		memberStore:   memberStore,
		commentStore:  commentStore,
		subwayService: subwayService,
		fileService:   fileService,
		clk:           clk,
		Log:           logFactory("LostPostService"),
	}
}

func (s *LostPostService) Search(ctx context.Context, search *dto.SearchLostPosts) ([]*dto.LostPostSummary, *models.PageToken, error) {
	err := search.Pagination.Validate()
	if err != nil {
		return nil, nil, err
	}
	if !search.LostType.Valid() {
		return nil, nil, gerror.NewErrInvalidArgument("Unknown lost type").EDetail("lost_type", search.LostType)
	}
	storeSearch := &models.LostPostSearch{
		LostType:     search.LostType,
		SubwayLineID: search.SubwayLineID,
		Keyword:      strings.TrimSpace(search.Keyword),
		Pagination:   search.Pagination,
	}
	if search.CategoryName != nil && *search.CategoryName != "" {
		category, err := s.categoryStore.ReadByName(ctx, nil, *search.CategoryName)
		if err != nil {
			if gerror.IsNotFound(err) {
				return []*dto.LostPostSummary{}, nil, nil
			}
			return nil, nil, err
		}
		storeSearch.CategoryID = &category.ID
	}
	posts, token, err := s.lostPostStore.Search(ctx, nil, storeSearch)
	if err != nil {
		return nil, nil, errors.Wrap(err, "error searching lost posts")
	}
	summaries, err := newSummarizer(s).summarize(ctx, posts)
	if err != nil {
		return nil, nil, err
	}
	return summaries, token, nil
}

func (s *LostPostService) Read(ctx context.Context, id models.LostPostID) (*dto.LostPostDetail, error) {
	post, err := s.readVisible(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	images, err := s.fileService.ListLostPostImages(ctx, nil, post.ID)
	if err != nil {
		return nil, err
	}
	recommended, err := s.Recommend(ctx, nil, post, RecommendSize)
	if err != nil {
		return nil, errors.Wrap(err, "error recommending lost posts")
	}
	summarizer := newSummarizer(s)
	recommends, err := summarizer.summarize(ctx, recommended)
	if err != nil {
		return nil, err
	}
	summary, err := summarizer.summarizeOne(ctx, post)
	if err != nil {
		return nil, err
	}
	return &dto.LostPostDetail{
		LostPost:       post,
		WriterNickname: summary.WriterNickname,
		CategoryName:   summary.CategoryName,
		CommentCount:   summary.CommentCount,
		Images:         images,
		Recommends:     recommends,
	}, nil
}

func (s *LostPostService) Create(ctx context.Context, me models.MemberID, create *dto.CreateLostPost) (*models.LostPost, []*models.Image, error) {
	var (
		post   *models.LostPost
		images []*models.Image
	)
	err := s.db.WithTx(ctx, nil, func(tx *store.Tx) error {
		line, err := s.subwayService.ReadLine(ctx, tx, create.SubwayLineID)
		if err != nil {
			return err
		}
		categoryID, err := s.resolveCategory(ctx, tx, create.CategoryName)
		if err != nil {
			return err
		}
		post = models.NewLostPost(
			models.NewTime(s.clk.Now()),
			me,
			&line.ID,
			categoryID,
			create.Title,
			create.Content,
			create.LostType,
			create.Storage,
			create.StorageNumber,
		)
		err = post.Validate()
		if err != nil {
			return gerror.NewErrValidationFailed(err.Error())
		}
		err = s.lostPostStore.Create(ctx, tx, post)
		if err != nil {
			return errors.Wrap(err, "error creating lost post")
		}
		images, err = s.fileService.UploadLostPostImages(ctx, tx, post.ID, create.Images)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	s.Infof("Member %s created lost post %s", me, post.ID)
	return post, images, nil
}

func (s *LostPostService) Update(ctx context.Context, me models.MemberID, id models.LostPostID, update *dto.UpdateLostPost) (*models.LostPost, error) {
	var post *models.LostPost
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
		if update.Status != nil {
			post.Status = *update.Status
		}
		if update.SubwayLineID != nil {
			line, err := s.subwayService.ReadLine(ctx, tx, *update.SubwayLineID)
			if err != nil {
				return err
			}
			post.SubwayLineID = &line.ID
		}
		if update.CategoryName != nil {
			post.CategoryID, err = s.resolveCategory(ctx, tx, update.CategoryName)
			if err != nil {
				return err
			}
		}
		err = post.Validate()
		if err != nil {
			return gerror.NewErrValidationFailed(err.Error())
		}
		post.UpdatedAt = models.NewTime(s.clk.Now())
		err = s.lostPostStore.Update(ctx, tx, post)
		if err != nil {
			return errors.Wrap(err, "error updating lost post")
		}
		err = s.fileService.DeleteLostPostImages(ctx, tx, post.ID, update.RemoveFileIDs)
		if err != nil {
			return err
		}
		_, err = s.fileService.UploadLostPostImages(ctx, tx, post.ID, update.Images)
		return err
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *LostPostService) UpdateStatus(ctx context.Context, me models.MemberID, id models.LostPostID, status models.LostStatus) (*models.LostPost, error) {
	if !status.Valid() {
		return nil, gerror.NewErrInvalidArgument("Unknown status").EDetail("status", status)
	}
	var post *models.LostPost
	err := s.db.WithTx(ctx, nil, func(tx *store.Tx) error {
		var err error
		post, err = s.readVisible(ctx, tx, id)
		if err != nil {
			return err
		}
		if post.IsFromLost112() {
			return gerror.NewErrInvalidArgument("The status of imported posts cannot be changed")
		}
		if !post.IsWrittenBy(me) {
			return gerror.NewErrForbidden("Only the writer can change a post")
		}
		post.Status = status
		post.UpdatedAt = models.NewTime(s.clk.Now())
		return s.lostPostStore.Update(ctx, tx, post)
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *LostPostService) Delete(ctx context.Context, me models.MemberID, id models.LostPostID) (*models.LostPost, error) {
	var post *models.LostPost
	err := s.db.WithTx(ctx, nil, func(tx *store.Tx) error {
		var err error
		post, err = s.readWritten(ctx, tx, me, id)
		if err != nil {
			return err
		}
		post.Type = models.LostPostTypeDeleted
		post.UpdatedAt = models.NewTime(s.clk.Now())
		return s.lostPostStore.Update(ctx, tx, post)
	})
	if err != nil {
		return nil, err
	}
	s.Infof("Member %s deleted lost post %s", me, post.ID)
	return post, nil
}

func (s *LostPostService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categoryStore.ListAll(ctx, nil)
}

// readVisible reads a post, treating deleted posts as missing.
func (s *LostPostService) readVisible(ctx context.Context, txOrNil *store.Tx, id models.LostPostID) (*models.LostPost, error) {
	post, err := s.lostPostStore.Read(ctx, txOrNil, id)
	if err != nil {
		if gerror.IsNotFound(err) {
			return nil, gerror.NewErrPostNotFound().Wrap(err)
		}
		return nil, err
	}
	if post.IsDeleted() {
		return nil, gerror.NewErrPostNotFound().IDetail("lost_post_id", id)
	}
	return post, nil
}

// readWritten reads a visible post that must have been written by me.
func (s *LostPostService) readWritten(ctx context.Context, txOrNil *store.Tx, me models.MemberID, id models.LostPostID) (*models.LostPost, error) {
	post, err := s.readVisible(ctx, txOrNil, id)
	if err != nil {
		return nil, err
	}
	if !post.IsWrittenBy(me) {
		return nil, gerror.NewErrForbidden("Only the writer can change a post").IDetail("lost_post_id", id)
	}
	return post, nil
}

// resolveCategory looks up a category by name. A nil or empty name means no category.
func (s *LostPostService) resolveCategory(ctx context.Context, txOrNil *store.Tx, name *string) (*models.CategoryID, error) {
	if name == nil || *name == "" {
		return nil, nil
	}
	category, err := s.categoryStore.ReadByName(ctx, txOrNil, *name)
	if err != nil {
		if gerror.IsNotFound(err) {
			return nil, gerror.NewErrInvalidArgument("Unknown category").EDetail("category_name", *name)
		}
		return nil, err
	}
	return &category.ID, nil
}
