package lost_post_files

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/store"
)

func init() {
	store.MustDBModel(&models.LostPostFile{})
}

type LostPostFileStore struct {
	table *store.ResourceTable
}

func NewStore(db *store.DB, logFactory logger.LogFactory) *LostPostFileStore {
	return &LostPostFileStore{
		table: store.NewResourceTable(db, logFactory, &models.LostPostFile{}),
	}
}

func (d *LostPostFileStore) Create(ctx context.Context, txOrNil *store.Tx, lostPostFile *models.LostPostFile) error {
	return d.table.Create(ctx, txOrNil, lostPostFile)
}

// Read an existing attachment, looking it up by ID.
// Returns gerror.ErrNotFound if the attachment does not exist.
func (d *LostPostFileStore) Read(ctx context.Context, txOrNil *store.Tx, id models.LostPostFileID) (*models.LostPostFile, error) {
	lostPostFile := &models.LostPostFile{}
	return lostPostFile, d.table.ReadByID(ctx, txOrNil, id.ResourceID, lostPostFile)
}

// ListImages lists the attachments of a post along with their files, in the order they were attached.
func (d *LostPostFileStore) ListImages(ctx context.Context, txOrNil *store.Tx, postID models.LostPostID) ([]*models.LostPostImage, error) {
	var images []*models.LostPostImage
	return images, d.table.ListWhere(ctx, txOrNil, &images, d.selectImages(postID))
}

// ReadFirstImage reads the first attachment of a post.
// Returns gerror.ErrNotFound if the post has no attachments.
func (d *LostPostFileStore) ReadFirstImage(ctx context.Context, txOrNil *store.Tx, postID models.LostPostID) (*models.LostPostImage, error) {
	image := &models.LostPostImage{}
	return image, d.table.ReadIn(ctx, txOrNil, image, d.selectImages(postID))
}

// Delete permanently and idempotently deletes an attachment.
func (d *LostPostFileStore) Delete(ctx context.Context, txOrNil *store.Tx, id models.LostPostFileID) error {
	return d.table.DeleteByID(ctx, txOrNil, id.ResourceID)
}

func (d *LostPostFileStore) selectImages(postID models.LostPostID) *goqu.SelectDataset {
	return d.table.Dialect().From(d.table.TableName()).
		Select(&models.LostPostImage{}).
		Join(goqu.T("files"), goqu.On(goqu.Ex{"lost_post_files.lost_post_file_file_id": goqu.I("files.file_id")})).
		Where(goqu.Ex{"lost_post_file_lost_post_id": postID}).
		Order(goqu.C("lost_post_file_id").Asc())
}
