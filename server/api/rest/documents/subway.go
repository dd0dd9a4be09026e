package documents

import "github.com/ahachul/ahachul-backend/common/models"

type Station struct {
	ID       models.StationID `json:"id"`
	Name     string           `json:"name"`
	Identity int64            `json:"identity"`
}

type SubwayLine struct {
	ID          models.SubwayLineID `json:"id"`
	Name        string              `json:"name"`
	PhoneNumber string              `json:"phone_number"`
	RegionType  string              `json:"region_type"`
	Stations    []*Station          `json:"stations"`
}

func MakeSubwayLines(lines []*models.SubwayLineWithStations) []*SubwayLine {
	docs := make([]*SubwayLine, 0, len(lines))
	for _, line := range lines {
		doc := &SubwayLine{
			ID:          line.ID,
			Name:        line.Name,
			PhoneNumber: line.PhoneNumber,
			RegionType:  line.RegionType,
			Stations:    make([]*Station, 0, len(line.Stations)),
		}
		for _, station := range line.Stations {
			doc.Stations = append(doc.Stations, &Station{ID: station.ID, Name: station.Name, Identity: station.Identity})
		}
		docs = append(docs, doc)
	}
	return docs
}

type TrainCongestion struct {
	TrainNo    string                  `json:"train_no"`
	StationID  models.StationID        `json:"station_id"`
	Congestion []*models.CarCongestion `json:"congestions"`
}

func MakeTrainCongestion(congestion *models.TrainCongestion) *TrainCongestion {
	return &TrainCongestion{
		TrainNo:    congestion.TrainNo,
		StationID:  congestion.StationID,
		Congestion: congestion.Congestion,
	}
}
