package subway_lines

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/store"
)

func init() {
	store.MustDBModel(&models.SubwayLine{})
}

type SubwayLineStore struct {
	table *store.ResourceTable
}

func NewStore(db *store.DB, logFactory logger.LogFactory) *SubwayLineStore {
	return &SubwayLineStore{
		table: store.NewResourceTable(db, logFactory, &models.SubwayLine{}),
	}
}

func (d *SubwayLineStore) Create(ctx context.Context, txOrNil *store.Tx, line *models.SubwayLine) error {
	return d.table.Create(ctx, txOrNil, line)
}

// Read an existing subway line, looking it up by ID.
// Returns gerror.ErrNotFound if the line does not exist.
func (d *SubwayLineStore) Read(ctx context.Context, txOrNil *store.Tx, id models.SubwayLineID) (*models.SubwayLine, error) {
	line := &models.SubwayLine{}
	return line, d.table.ReadByID(ctx, txOrNil, id.ResourceID, line)
}

// ReadByName reads an existing subway line, looking it up by its name.
// Returns gerror.ErrNotFound if the line does not exist.
func (d *SubwayLineStore) ReadByName(ctx context.Context, txOrNil *store.Tx, name string) (*models.SubwayLine, error) {
	line := &models.SubwayLine{}
	return line, d.table.ReadWhere(ctx, txOrNil, line, goqu.Ex{"subway_line_name": name})
}

// FindOrCreate creates the line if no line with the same name exists, otherwise returns the existing line.
func (d *SubwayLineStore) FindOrCreate(ctx context.Context, txOrNil *store.Tx, lineData *models.SubwayLine) (*models.SubwayLine, bool, error) {
	resource, created, err := d.table.FindOrCreate(ctx, txOrNil,
		func(ctx context.Context, tx *store.Tx) (models.Resource, error) {
			return d.ReadByName(ctx, tx, lineData.Name)
		},
		func(ctx context.Context, tx *store.Tx) (models.Resource, error) {
			return lineData, d.Create(ctx, tx, lineData)
		},
	)
	if err != nil {
		return nil, false, err
	}
	return resource.(*models.SubwayLine), created, nil
}

// ListAll lists every subway line ordered by id.
func (d *SubwayLineStore) ListAll(ctx context.Context, txOrNil *store.Tx) ([]*models.SubwayLine, error) {
	var lines []*models.SubwayLine
	ds := d.table.Dialect().From(d.table.TableName()).Select(&models.SubwayLine{}).
		Order(goqu.C("subway_line_id").Asc())
	return lines, d.table.ListWhere(ctx, txOrNil, &lines, ds)
}
