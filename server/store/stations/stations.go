package stations

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/store"
)

func init() {
	store.MustDBModel(&models.Station{})
}

type StationStore struct {
	table *store.ResourceTable
}

func NewStore(db *store.DB, logFactory logger.LogFactory) *StationStore {
	return &StationStore{
		table: store.NewResourceTable(db, logFactory, &models.Station{}),
	}
}

func (d *StationStore) Create(ctx context.Context, txOrNil *store.Tx, station *models.Station) error {
	return d.table.Create(ctx, txOrNil, station)
}

// Read an existing station, looking it up by ID.
// Returns gerror.ErrNotFound if the station does not exist.
func (d *StationStore) Read(ctx context.Context, txOrNil *store.Tx, id models.StationID) (*models.Station, error) {
	station := &models.Station{}
	return station, d.table.ReadByID(ctx, txOrNil, id.ResourceID, station)
}

// FindOrCreate creates the station if the line has no station with the same name, otherwise returns the
// existing station.
func (d *StationStore) FindOrCreate(ctx context.Context, txOrNil *store.Tx, stationData *models.Station) (*models.Station, bool, error) {
	resource, created, err := d.table.FindOrCreate(ctx, txOrNil,
		func(ctx context.Context, tx *store.Tx) (models.Resource, error) {
			station := &models.Station{}
			return station, d.table.ReadWhere(ctx, tx, station, goqu.Ex{
				"station_subway_line_id": stationData.SubwayLineID,
				"station_name":           stationData.Name,
			})
		},
		func(ctx context.Context, tx *store.Tx) (models.Resource, error) {
			return stationData, d.Create(ctx, tx, stationData)
		},
	)
	if err != nil {
		return nil, false, err
	}
	return resource.(*models.Station), created, nil
}

// ListAll lists every station ordered by id.
func (d *StationStore) ListAll(ctx context.Context, txOrNil *store.Tx) ([]*models.Station, error) {
	var stations []*models.Station
	ds := d.table.Dialect().From(d.table.TableName()).Select(&models.Station{}).
		Order(goqu.C("station_id").Asc())
	return stations, d.table.ListWhere(ctx, txOrNil, &stations, ds)
}
