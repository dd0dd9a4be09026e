package lost112

import (
	"context"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/common/util"
	"github.com/ahachul/ahachul-backend/server/store"
)

// maxTitleLength is the longest title, in characters, kept from an imported item.
const maxTitleLength = 100

// ItemSource provides the found items to import.
type ItemSource interface {
	FetchItems(ctx context.Context) ([]*Item, error)
}

type Lost112Service struct {
	db              *store.DB
	lostPostStore   store.LostPostStore
	subwayLineStore store.SubwayLineStore
	categoryStore   store.CategoryStore
	source          ItemSource
	clk             clock.Clock
	logger.Log
}

func NewLost112Service(
	db *store.DB,
	lostPostStore store.LostPostStore,
	subwayLineStore store.SubwayLineStore,
	categoryStore store.CategoryStore,
	source ItemSource,
	clk clock.Clock,
	logFactory logger.LogFactory,
) *Lost112Service {
	return &Lost112Service{
		db:              db,
		lostPostStore:   lostPostStore,
		subwayLineStore: subwayLineStore,
		categoryStore:   categoryStore,
		source:          source,
		clk:             clk,
		Log:             logFactory("Lost112Service"),
	}
}

func (s *Lost112Service) Import(ctx context.Context) (int, error) {
	items, err := s.source.FetchItems(ctx)
	if err != nil {
		return 0, err
	}
	items = lo.UniqBy(lo.Filter(items, func(item *Item, _ int) bool {
		return strings.TrimSpace(item.PageURL) != ""
	}), func(item *Item) string {
		return item.PageURL
	})
	if len(items) == 0 {
		return 0, nil
	}
	var created int
	err = s.db.WithTx(ctx, nil, func(tx *store.Tx) error {
		pageURLs := lo.Map(items, func(item *Item, _ int) string { return item.PageURL })
		existing, err := s.lostPostStore.ListExistingPageURLs(ctx, tx, pageURLs)
		if err != nil {
			return errors.Wrap(err, "error finding imported items")
		}
		lines, err := s.subwayLineStore.ListAll(ctx, tx)
		if err != nil {
			return errors.Wrap(err, "error listing subway lines")
		}
		categories, err := s.categoryStore.ListAll(ctx, tx)
		if err != nil {
			return errors.Wrap(err, "error listing categories")
		}
		lineIDs := lo.SliceToMap(lines, func(line *models.SubwayLine) (string, models.SubwayLineID) {
			return line.Name, line.ID
		})
		categoryIDs := lo.SliceToMap(categories, func(category *models.Category) (string, models.CategoryID) {
			return category.Name, category.ID
		})
		now := models.NewTime(s.clk.Now())
		var posts []*models.LostPost
		fresh := lo.Reject(items, func(item *Item, _ int) bool {
			return lo.Contains(existing, item.PageURL)
		})
		for _, item := range fresh {
			post, err := s.makePost(now, item, lineIDs, categoryIDs)
			if err != nil {
				s.Warnf("Skipping Lost112 item %s: %v", item.PageURL, err)
				continue
			}
			posts = append(posts, post)
		}
		if len(posts) == 0 {
			return nil
		}
		err = s.lostPostStore.CreateMany(ctx, tx, posts)
		if err != nil {
			return errors.Wrap(err, "error creating imported posts")
		}
		created = len(posts)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if created > 0 {
		s.Infof("Imported %d found items from Lost112", created)
	}
	return created, nil
}

func (s *Lost112Service) makePost(
	now models.Time,
	item *Item,
	lineIDs map[string]models.SubwayLineID,
	categoryIDs map[string]models.CategoryID,
) (*models.LostPost, error) {
	receivedDate, err := item.ParseReceivedDate()
	if err != nil {
		return nil, err
	}
	var lineID *models.SubwayLineID
	if id, ok := lineIDs[strings.TrimSpace(item.SubwayLine)]; ok {
		lineID = &id
	}
	var categoryID *models.CategoryID
	if id, ok := categoryIDs[strings.TrimSpace(item.Category)]; ok {
		categoryID = &id
	}
	post := models.NewImportedLostPost(
		now,
		models.NewTime(receivedDate),
		lineID,
		categoryID,
		util.TruncateStringToMaxLength(strings.TrimSpace(item.Title), maxTitleLength),
		strings.TrimSpace(item.Content),
		strings.TrimSpace(item.Storage),
		strings.TrimSpace(item.StorageNumber),
		item.PageURL,
		strings.TrimSpace(item.ImageURL))
	err = post.Validate()
	if err != nil {
		return nil, err
	}
	return post, nil
}
