package train

import (
	"context"
	"strings"
	"unicode"

	"github.com/samber/lo"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/services"
)

// congestionLines are the line numbers the congestion API has data for.
var congestionLines = []string{"2", "3"}

// CarPercentageSource is the source of train congestion data.
type CarPercentageSource interface {
	GetCarPercentages(ctx context.Context, lineNumber string, trainNo string) ([]int, error)
}

type TrainService struct {
	subwayService services.SubwayService
	source        CarPercentageSource
	logger.Log
}

func NewTrainService(subwayService services.SubwayService, source CarPercentageSource, logFactory logger.LogFactory) *TrainService {
	return &TrainService{
		subwayService: subwayService,
		source:        source,
		Log:           logFactory("TrainService"),
	}
}

func (s *TrainService) GetCongestion(ctx context.Context, stationID models.StationID, trainNo string) (*models.TrainCongestion, error) {
	trainNo = strings.TrimSpace(trainNo)
	if trainNo == "" {
		return nil, gerror.NewErrInvalidArgument("Train number must be set")
	}
	station, err := s.subwayService.ReadStation(ctx, nil, stationID)
	if err != nil {
		return nil, err
	}
	line, err := s.subwayService.ReadLine(ctx, nil, station.SubwayLineID)
	if err != nil {
		return nil, err
	}
	lineNumber := LineNumber(line.Name)
	if !lo.Contains(congestionLines, lineNumber) {
		return nil, gerror.NewErrInvalidSubwayLine().IDetail("subway_line", line.Name)
	}
	percentages, err := s.source.GetCarPercentages(ctx, lineNumber, trainNo)
	if err != nil {
		return nil, err
	}
	return &models.TrainCongestion{
		TrainNo:    trainNo,
		StationID:  station.ID,
		Congestion: CarCongestions(percentages),
	}, nil
}

// LineNumber returns the leading digits of a line name, e.g. "2" for "2호선".
func LineNumber(lineName string) string {
	end := strings.IndexFunc(lineName, func(r rune) bool { return !unicode.IsDigit(r) })
	if end < 0 {
		return lineName
	}
	return lineName[:end]
}
