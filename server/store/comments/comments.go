package comments

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/store"
)

func init() {
	_ = models.MutableResource(&models.Comment{})
	store.MustDBModel(&models.Comment{})
}

type CommentStore struct {
	table *store.ResourceTable
}

func NewStore(db *store.DB, logFactory logger.LogFactory) *CommentStore {
	return &CommentStore{
		table: store.NewResourceTable(db, logFactory, &models.Comment{}),
	}
}

func (d *CommentStore) Create(ctx context.Context, txOrNil *store.Tx, comment *models.Comment) error {
	return d.table.Create(ctx, txOrNil, comment)
}

// Read an existing comment, looking it up by ID.
// Returns gerror.ErrNotFound if the comment does not exist.
func (d *CommentStore) Read(ctx context.Context, txOrNil *store.Tx, id models.CommentID) (*models.Comment, error) {
	comment := &models.Comment{}
	return comment, d.table.ReadByID(ctx, txOrNil, id.ResourceID, comment)
}

// Update an existing comment with optimistic locking.
// Returns gerror.ErrOptimisticLockFailed if there is an optimistic lock mismatch.
func (d *CommentStore) Update(ctx context.Context, txOrNil *store.Tx, comment *models.Comment) error {
	return d.table.UpdateByID(ctx, txOrNil, comment)
}

// ListByPost lists every comment on a post along with its writer, oldest first. Deleted comments are included.
func (d *CommentStore) ListByPost(ctx context.Context, txOrNil *store.Tx, postType models.PostType, postID models.ResourceID) ([]*models.CommentWithWriter, error) {
	ds := d.table.Dialect().From(d.table.TableName()).
		Select(&models.CommentWithWriter{}).
		Join(goqu.T("members"), goqu.On(goqu.Ex{"comments.comment_member_id": goqu.I("members.member_id")})).
		Where(goqu.Ex{
			"comment_post_type": postType,
			"comment_post_id":   postID,
		}).
		Order(goqu.C("comment_created_at").Asc(), goqu.C("comment_id").Asc())
	var comments []*models.CommentWithWriter
	return comments, d.table.ListWhere(ctx, txOrNil, &comments, ds)
}

// CountByPost counts the comments on a post that have not been deleted.
func (d *CommentStore) CountByPost(ctx context.Context, txOrNil *store.Tx, postType models.PostType, postID models.ResourceID) (int, error) {
	return d.table.Count(ctx, txOrNil, goqu.Ex{
		"comment_post_type": postType,
		"comment_post_id":   postID,
		"comment_status":    goqu.Op{"neq": models.CommentStatusDeleted},
	})
}
