package server

import (
	"net/http"
	"strings"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/api/rest/documents"
	"github.com/ahachul/ahachul-backend/server/services"
)

type SubwayAPI struct {
	subwayService services.SubwayService
	trainService  services.TrainService
	*APIBase
}

func NewSubwayAPI(
	subwayService services.SubwayService,
	trainService services.TrainService,
	logFactory logger.LogFactory,
) *SubwayAPI {
	return &SubwayAPI{
		subwayService: subwayService,
		trainService:  trainService,
		APIBase:       NewAPIBase(logFactory("SubwayAPI")),
	}
}

func (a *SubwayAPI) ListLines(w http.ResponseWriter, r *http.Request) {
	lines, err := a.subwayService.ListLines(r.Context())
	if err != nil {
		a.Error(w, r, err)
		return
	}
	a.JSON(w, r, documents.MakeSubwayLines(lines))
}

// GetTrainCongestion reports how full each car of a train is, read from the stationId and trainNo query parameters.
func (a *SubwayAPI) GetTrainCongestion(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	id, err := models.ParseResourceID(query.Get("stationId"))
	if err != nil || !id.Valid() {
		a.Error(w, r, gerror.NewErrInvalidQueryParameter("error decoding stationId"))
		return
	}
	trainNo := strings.TrimSpace(query.Get("trainNo"))
	if trainNo == "" {
		a.Error(w, r, gerror.NewErrInvalidQueryParameter("trainNo is required"))
		return
	}
	congestion, err := a.trainService.GetCongestion(r.Context(), models.StationIDFromResourceID(id), trainNo)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	a.JSON(w, r, documents.MakeTrainCongestion(congestion))
}
