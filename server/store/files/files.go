package files

import (
	"context"

	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/store"
)

func init() {
	store.MustDBModel(&models.File{})
}

type FileStore struct {
	table *store.ResourceTable
}

func NewStore(db *store.DB, logFactory logger.LogFactory) *FileStore {
	return &FileStore{
		table: store.NewResourceTable(db, logFactory, &models.File{}),
	}
}

func (d *FileStore) Create(ctx context.Context, txOrNil *store.Tx, file *models.File) error {
	return d.table.Create(ctx, txOrNil, file)
}

// Read an existing file, looking it up by ID.
// Returns gerror.ErrNotFound if the file does not exist.
func (d *FileStore) Read(ctx context.Context, txOrNil *store.Tx, id models.FileID) (*models.File, error) {
	file := &models.File{}
	return file, d.table.ReadByID(ctx, txOrNil, id.ResourceID, file)
}

// Delete permanently and idempotently deletes a file record.
func (d *FileStore) Delete(ctx context.Context, txOrNil *store.Tx, id models.FileID) error {
	return d.table.DeleteByID(ctx, txOrNil, id.ResourceID)
}
