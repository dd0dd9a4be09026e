package lost_posts

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/store"
)

func init() {
	_ = models.MutableResource(&models.LostPost{})
	_ = models.KeysetResource(&models.LostPost{})
	store.MustDBModel(&models.LostPost{})
}

type LostPostStore struct {
	table *store.ResourceTable
}

func NewStore(db *store.DB, logFactory logger.LogFactory) *LostPostStore {
	return &LostPostStore{
		table: store.NewResourceTable(db, logFactory, &models.LostPost{}),
	}
}

// Create a new lost post.
func (d *LostPostStore) Create(ctx context.Context, txOrNil *store.Tx, post *models.LostPost) error {
	return d.table.Create(ctx, txOrNil, post)
}

// CreateMany creates all posts with a single statement. The ids of the new posts are not set.
func (d *LostPostStore) CreateMany(ctx context.Context, txOrNil *store.Tx, posts []*models.LostPost) error {
	resources := make([]models.Resource, 0, len(posts))
	for _, post := range posts {
		resources = append(resources, post)
	}
	return d.table.CreateMany(ctx, txOrNil, resources)
}

// Read an existing lost post, looking it up by ID. Deleted posts are returned.
// Returns gerror.ErrNotFound if the post does not exist.
func (d *LostPostStore) Read(ctx context.Context, txOrNil *store.Tx, id models.LostPostID) (*models.LostPost, error) {
	post := &models.LostPost{}
	return post, d.table.ReadByID(ctx, txOrNil, id.ResourceID, post)
}

// Update an existing lost post with optimistic locking. Overrides all previous values using the supplied model.
// Returns gerror.ErrOptimisticLockFailed if there is an optimistic lock mismatch.
func (d *LostPostStore) Update(ctx context.Context, txOrNil *store.Tx, post *models.LostPost) error {
	return d.table.UpdateByID(ctx, txOrNil, post)
}

// Search lists one page of the posts that are not deleted and match search, newest first according to
// the sort key of search.LostType. Returns the token for the next page, or nil if there is none.
func (d *LostPostStore) Search(ctx context.Context, txOrNil *store.Tx, search *models.LostPostSearch) ([]*models.LostPost, *models.PageToken, error) {
	ds := d.selectVisible().Where(goqu.Ex{"lost_post_lost_type": search.LostType})
	if search.SubwayLineID != nil {
		ds = ds.Where(goqu.Ex{"lost_post_subway_line_id": *search.SubwayLineID})
	}
	if search.CategoryID != nil {
		ds = ds.Where(goqu.Ex{"lost_post_category_id": *search.CategoryID})
	}
	if search.Keyword != "" {
		ds = ds.Where(store.ContainsAny(search.Keyword, "lost_post_title", "lost_post_content"))
	}
	var posts []*models.LostPost
	token, err := d.table.ListKeyset(ctx, txOrNil, &posts, ds, search.LostType.SortKey(), search.Pagination)
	if err != nil {
		return nil, nil, err
	}
	return posts, token, nil
}

// ListRandom lists up to limit randomly ordered posts other than excludeID that are not deleted and are on
// the specified subway line. If sameCategory is true only posts in categoryID are listed, otherwise only posts
// in a different category.
func (d *LostPostStore) ListRandom(
	ctx context.Context,
	txOrNil *store.Tx,
	excludeID models.LostPostID,
	subwayLineID models.SubwayLineID,
	categoryID models.CategoryID,
	sameCategory bool,
	limit int,
) ([]*models.LostPost, error) {
	if limit <= 0 {
		return nil, nil
	}
	ds := d.selectVisible().
		Where(goqu.C("lost_post_id").Neq(excludeID)).
		Where(goqu.Ex{"lost_post_subway_line_id": subwayLineID})
	if sameCategory {
		ds = ds.Where(goqu.Ex{"lost_post_category_id": categoryID})
	} else {
		ds = ds.Where(goqu.C("lost_post_category_id").Neq(categoryID))
	}
	ds = ds.Order(goqu.Func("RANDOM").Asc()).Limit(uint(limit))
	var posts []*models.LostPost
	return posts, d.table.ListWhere(ctx, txOrNil, &posts, ds)
}

// ListExistingPageURLs returns the subset of pageURLs that already belong to a post.
func (d *LostPostStore) ListExistingPageURLs(ctx context.Context, txOrNil *store.Tx, pageURLs []string) ([]string, error) {
	if len(pageURLs) == 0 {
		return nil, nil
	}
	ds := d.table.Dialect().From(d.table.TableName()).
		Select(goqu.C("lost_post_page_url")).
		Where(goqu.C("lost_post_page_url").In(pageURLs))
	var existing []string
	err := d.table.ScanVals(ctx, txOrNil, &existing, ds)
	if err != nil {
		return nil, err
	}
	return existing, nil
}

func (d *LostPostStore) selectVisible() *goqu.SelectDataset {
	return d.table.Dialect().From(d.table.TableName()).
		Select(&models.LostPost{}).
		Where(goqu.C("lost_post_type").Neq(models.LostPostTypeDeleted))
}
