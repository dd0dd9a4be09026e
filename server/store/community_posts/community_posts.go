package community_posts

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/store"
)

func init() {
	_ = models.MutableResource(&models.CommunityPost{})
	_ = models.KeysetResource(&models.CommunityPost{})
	store.MustDBModel(&models.CommunityPost{})
}

type CommunityPostStore struct {
	table *store.ResourceTable
}

func NewStore(db *store.DB, logFactory logger.LogFactory) *CommunityPostStore {
	return &CommunityPostStore{
		table: store.NewResourceTable(db, logFactory, &models.CommunityPost{}),
	}
}

func (d *CommunityPostStore) Create(ctx context.Context, txOrNil *store.Tx, post *models.CommunityPost) error {
	return d.table.Create(ctx, txOrNil, post)
}

// Read an existing community post, looking it up by ID. Deleted and blocked posts are returned.
// Returns gerror.ErrNotFound if the post does not exist.
func (d *CommunityPostStore) Read(ctx context.Context, txOrNil *store.Tx, id models.CommunityPostID) (*models.CommunityPost, error) {
	post := &models.CommunityPost{}
	return post, d.table.ReadByID(ctx, txOrNil, id.ResourceID, post)
}

// Update an existing community post with optimistic locking.
// Returns gerror.ErrOptimisticLockFailed if there is an optimistic lock mismatch.
func (d *CommunityPostStore) Update(ctx context.Context, txOrNil *store.Tx, post *models.CommunityPost) error {
	return d.table.UpdateByID(ctx, txOrNil, post)
}

// IncrementViews adds one to the view count of a post without changing its etag.
func (d *CommunityPostStore) IncrementViews(ctx context.Context, txOrNil *store.Tx, id models.CommunityPostID) error {
	updated, err := d.table.UpdateColumns(ctx, txOrNil,
		goqu.Record{"community_post_views": goqu.L("community_post_views + 1")},
		goqu.Ex{"community_post_id": id})
	if err != nil {
		return err
	}
	if updated == 0 {
		return gerror.NewErrNotFound(fmt.Sprintf("community post %s does not exist", id))
	}
	return nil
}

// Search lists one page of visible posts matching search, newest first.
// Returns the token for the next page, or nil if there is none.
func (d *CommunityPostStore) Search(ctx context.Context, txOrNil *store.Tx, search *models.CommunityPostSearch) ([]*models.CommunityPostSearchResult, *models.PageToken, error) {
	ds := d.table.Dialect().From(d.table.TableName()).
		Select(&models.CommunityPostSearchResult{}).
		Join(goqu.T("members"), goqu.On(goqu.Ex{"community_posts.community_post_member_id": goqu.I("members.member_id")})).
		Where(goqu.Ex{"community_post_status": models.CommunityPostStatusCreated})
	if search.Category != nil {
		ds = ds.Where(goqu.Ex{"community_post_category": *search.Category})
	}
	if search.SubwayLineID != nil {
		ds = ds.Where(goqu.Ex{"community_post_subway_line_id": *search.SubwayLineID})
	}
	if search.Keyword != "" {
		ds = ds.Where(store.ContainsAny(search.Keyword, "community_post_title", "community_post_content"))
	}
	if search.MinViews > 0 {
		ds = ds.Where(goqu.C("community_post_views").Gte(search.MinViews))
	}
	var posts []*models.CommunityPostSearchResult
	token, err := d.table.ListKeyset(ctx, txOrNil, &posts, ds, models.SortKeyCreatedAt, search.Pagination)
	if err != nil {
		return nil, nil, err
	}
	return posts, token, nil
}
