package lost

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/store"
)

// Recommend lists up to size posts similar to post, chosen at random. Posts on the same line in the
// same category come first. If there are fewer than size of those the rest are filled from posts on
// the same line in any other category. Posts with no line or no category have no recommendations.
// The post itself and deleted posts are never recommended. Lost and found posts are mixed.
func (s *LostPostService) Recommend(ctx context.Context, txOrNil *store.Tx, post *models.LostPost, size int) ([]*models.LostPost, error) {
	if post.SubwayLineID == nil || post.CategoryID == nil || size <= 0 {
		return []*models.LostPost{}, nil
	}
	recommended, err := s.lostPostStore.ListRandom(ctx, txOrNil, post.ID, *post.SubwayLineID, *post.CategoryID, true, size)
	if err != nil {
		return nil, errors.Wrap(err, "error listing posts in the same category")
	}
	if shortfall := size - len(recommended); shortfall > 0 {
		others, err := s.lostPostStore.ListRandom(ctx, txOrNil, post.ID, *post.SubwayLineID, *post.CategoryID, false, shortfall)
		if err != nil {
			return nil, errors.Wrap(err, "error listing posts in other categories")
		}
		recommended = append(recommended, others...)
	}
	if recommended == nil {
		recommended = []*models.LostPost{}
	}
	return recommended, nil
}
