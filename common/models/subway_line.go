package models

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

type SubwayLineMetadata struct {
	ID        SubwayLineID `json:"id" goqu:"skipinsert,skipupdate" db:"subway_line_id"`
	CreatedAt Time         `json:"created_at" goqu:"skipupdate" db:"subway_line_created_at"`
}

type SubwayLine struct {
	SubwayLineMetadata
	Name        string `json:"name" db:"subway_line_name"`
	PhoneNumber string `json:"phone_number" db:"subway_line_phone_number"`
	RegionType  string `json:"region_type" db:"subway_line_region_type"`
}

func NewSubwayLine(now Time, name string, phoneNumber string, regionType string) *SubwayLine {
	return &SubwayLine{
		SubwayLineMetadata: SubwayLineMetadata{CreatedAt: now},
		Name:               name,
		PhoneNumber:        phoneNumber,
		RegionType:         regionType,
	}
}

func (m *SubwayLine) GetKind() ResourceKind {
	return SubwayLineResourceKind
}

func (m *SubwayLine) GetCreatedAt() Time {
	return m.CreatedAt
}

func (m *SubwayLine) GetID() ResourceID {
	return m.ID.ResourceID
}

func (m *SubwayLine) SetID(id ResourceID) {
	m.ID = SubwayLineIDFromResourceID(id)
}

func (m *SubwayLine) Validate() error {
	var result *multierror.Error
	if m.CreatedAt.IsZero() {
		result = multierror.Append(result, errors.New("error created at must be set"))
	}
	if m.Name == "" {
		result = multierror.Append(result, errors.New("error name must be set"))
	}
	return result.ErrorOrNil()
}

// SubwayLineWithStations is a subway line along with every station on it, ordered by station id.
type SubwayLineWithStations struct {
	*SubwayLine
	Stations []*Station `json:"stations"`
}
