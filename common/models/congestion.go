package models

type Congestion string

const (
	CongestionSmooth        Congestion = "SMOOTH"
	CongestionModerate      Congestion = "MODERATE"
	CongestionCongested     Congestion = "CONGESTED"
	CongestionVeryCongested Congestion = "VERY_CONGESTED"
)

// CongestionFromPercentage classifies how full a train car is. Cars can exceed 100%.
func CongestionFromPercentage(percentage int) Congestion {
	switch {
	case percentage < 35:
		return CongestionSmooth
	case percentage < 80:
		return CongestionModerate
	case percentage < 130:
		return CongestionCongested
	default:
		return CongestionVeryCongested
	}
}

// CarCongestion is the congestion of a single car, numbered from 1 at the front of the train.
type CarCongestion struct {
	SectionNo  int        `json:"section_no"`
	Congestion Congestion `json:"congestion"`
}

type TrainCongestion struct {
	TrainNo    string           `json:"train_no"`
	StationID  StationID        `json:"station_id"`
	Congestion []*CarCongestion `json:"congestion"`
}
