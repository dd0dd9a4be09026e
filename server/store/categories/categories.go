package categories

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/store"
)

func init() {
	store.MustDBModel(&models.Category{})
}

type CategoryStore struct {
	table *store.ResourceTable
}

func NewStore(db *store.DB, logFactory logger.LogFactory) *CategoryStore {
	return &CategoryStore{
		table: store.NewResourceTableWithTableName(db, logFactory, "categories", &models.Category{}),
	}
}

// Read an existing category, looking it up by ID.
// Returns gerror.ErrNotFound if the category does not exist.
func (d *CategoryStore) Read(ctx context.Context, txOrNil *store.Tx, id models.CategoryID) (*models.Category, error) {
	category := &models.Category{}
	return category, d.table.ReadByID(ctx, txOrNil, id.ResourceID, category)
}

// ReadByName reads an existing category, looking it up by its name.
// Returns gerror.ErrNotFound if the category does not exist.
func (d *CategoryStore) ReadByName(ctx context.Context, txOrNil *store.Tx, name string) (*models.Category, error) {
	category := &models.Category{}
	return category, d.table.ReadWhere(ctx, txOrNil, category, goqu.Ex{"category_name": name})
}

// FindOrCreate creates the category if no category with the same name exists, otherwise returns the
// existing category.
func (d *CategoryStore) FindOrCreate(ctx context.Context, txOrNil *store.Tx, categoryData *models.Category) (*models.Category, bool, error) {
	resource, created, err := d.table.FindOrCreate(ctx, txOrNil,
		func(ctx context.Context, tx *store.Tx) (models.Resource, error) {
			return d.ReadByName(ctx, tx, categoryData.Name)
		},
		func(ctx context.Context, tx *store.Tx) (models.Resource, error) {
			return categoryData, d.table.Create(ctx, tx, categoryData)
		},
	)
	if err != nil {
		return nil, false, err
	}
	return resource.(*models.Category), created, nil
}

// ListAll lists every category ordered by id.
func (d *CategoryStore) ListAll(ctx context.Context, txOrNil *store.Tx) ([]*models.Category, error) {
	var categories []*models.Category
	ds := d.table.Dialect().From(d.table.TableName()).Select(&models.Category{}).
		Order(goqu.C("category_id").Asc())
	return categories, d.table.ListWhere(ctx, txOrNil, &categories, ds)
}
