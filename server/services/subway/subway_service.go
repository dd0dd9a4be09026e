package subway

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/store"
)

type SubwayService struct {
	db              *store.DB
	subwayLineStore store.SubwayLineStore
	stationStore    store.StationStore
	clk             clock.Clock
	logger.Log
}

func NewSubwayService(
	db *store.DB,
	subwayLineStore store.SubwayLineStore,
	stationStore store.StationStore,
	clk clock.Clock,
	logFactory logger.LogFactory,
) *SubwayService {
	return &SubwayService{
		db:              db,
		subwayLineStore: subwayLineStore,
		stationStore:    stationStore,
		clk:             clk,
		Log:             logFactory("SubwayService"),
	}
}

func (s *SubwayService) ListLines(ctx context.Context) ([]*models.SubwayLineWithStations, error) {
	lines, err := s.subwayLineStore.ListAll(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "error listing subway lines")
	}
	stations, err := s.stationStore.ListAll(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "error listing stations")
	}
	stationsByLine := lo.GroupBy(stations, func(station *models.Station) models.SubwayLineID {
		return station.SubwayLineID
	})
	return lo.Map(lines, func(line *models.SubwayLine, _ int) *models.SubwayLineWithStations {
		return &models.SubwayLineWithStations{
			SubwayLine: line,
			Stations:   lo.Ternary(stationsByLine[line.ID] != nil, stationsByLine[line.ID], []*models.Station{}),
		}
	}), nil
}

func (s *SubwayService) ReadLine(ctx context.Context, txOrNil *store.Tx, id models.SubwayLineID) (*models.SubwayLine, error) {
	line, err := s.subwayLineStore.Read(ctx, txOrNil, id)
	if err != nil {
		if gerror.IsNotFound(err) {
			return nil, gerror.NewErrInvalidSubwayLine().Wrap(err).IDetail("subway_line_id", id)
		}
		return nil, err
	}
	return line, nil
}

func (s *SubwayService) ReadStation(ctx context.Context, txOrNil *store.Tx, id models.StationID) (*models.Station, error) {
	return s.stationStore.Read(ctx, txOrNil, id)
}

func (s *SubwayService) Seed(ctx context.Context, lines []*models.SubwayLineWithStations) (int, int, error) {
	var linesCreated, stationsCreated int
	now := models.NewTime(s.clk.Now())
	err := s.db.WithTx(ctx, nil, func(tx *store.Tx) error {
		linesCreated, stationsCreated = 0, 0
		for _, lineData := range lines {
			lineData.CreatedAt = now
			line, created, err := s.subwayLineStore.FindOrCreate(ctx, tx, lineData.SubwayLine)
			if err != nil {
				return errors.Wrapf(err, "error seeding subway line %q", lineData.Name)
			}
			if created {
				linesCreated++
			}
			for _, stationData := range lineData.Stations {
				stationData.CreatedAt = now
				stationData.SubwayLineID = line.ID
				_, created, err := s.stationStore.FindOrCreate(ctx, tx, stationData)
				if err != nil {
					return errors.Wrapf(err, "error seeding station %q", stationData.Name)
				}
				if created {
					stationsCreated++
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	s.Infof("Seeded %d subway lines and %d stations", linesCreated, stationsCreated)
	return linesCreated, stationsCreated, nil
}
