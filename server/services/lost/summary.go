package lost

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/dto"
)

// summarizer decorates posts with the names and counts shown in listings. Members and categories are
// looked up once per summarizer.
type summarizer struct {
	s          *LostPostService
	nicknames  map[models.MemberID]*string
	categories map[models.CategoryID]*string
}

func newSummarizer(s *LostPostService) *summarizer {
	return &summarizer{
		s:          s,
		nicknames:  make(map[models.MemberID]*string),
		categories: make(map[models.CategoryID]*string),
	}
}

func (z *summarizer) summarize(ctx context.Context, posts []*models.LostPost) ([]*dto.LostPostSummary, error) {
	summaries := make([]*dto.LostPostSummary, 0, len(posts))
	for _, post := range posts {
		summary, err := z.summarizeOne(ctx, post)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (z *summarizer) summarizeOne(ctx context.Context, post *models.LostPost) (*dto.LostPostSummary, error) {
	summary := &dto.LostPostSummary{LostPost: post}
	var err error
	if post.MemberID != nil {
		summary.WriterNickname, err = z.nickname(ctx, *post.MemberID)
		if err != nil {
			return nil, err
		}
	}
	if post.CategoryID != nil {
		summary.CategoryName, err = z.categoryName(ctx, *post.CategoryID)
		if err != nil {
			return nil, err
		}
	}
	summary.CommentCount, err = z.s.commentStore.CountByPost(ctx, nil, models.PostTypeLost, post.ID.ResourceID)
	if err != nil {
		return nil, errors.Wrap(err, "error counting comments")
	}
	summary.ImageURL, err = z.s.fileService.FirstLostPostImageURL(ctx, nil, post.ID)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (z *summarizer) nickname(ctx context.Context, id models.MemberID) (*string, error) {
	if nickname, ok := z.nicknames[id]; ok {
		return nickname, nil
	}
	member, err := z.s.memberStore.Read(ctx, nil, id)
	if err != nil && !gerror.IsNotFound(err) {
		return nil, errors.Wrap(err, "error reading writer")
	}
	var nickname *string
	if err == nil {
		nickname = member.Nickname
	}
	z.nicknames[id] = nickname
	return nickname, nil
}

func (z *summarizer) categoryName(ctx context.Context, id models.CategoryID) (*string, error) {
	if name, ok := z.categories[id]; ok {
		return name, nil
	}
	category, err := z.s.categoryStore.Read(ctx, nil, id)
	if err != nil && !gerror.IsNotFound(err) {
		return nil, errors.Wrap(err, "error reading category")
	}
	var name *string
	if err == nil {
		name = &category.Name
	}
	z.categories[id] = name
	return name, nil
}
