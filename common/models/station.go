package models

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

type StationMetadata struct {
	ID        StationID `json:"id" goqu:"skipinsert,skipupdate" db:"station_id"`
	CreatedAt Time      `json:"created_at" goqu:"skipupdate" db:"station_created_at"`
}

type Station struct {
	StationMetadata
	SubwayLineID SubwayLineID `json:"subway_line_id" db:"station_subway_line_id"`
	Name         string       `json:"name" db:"station_name"`
	// Identity is the station code used by external transit APIs.
	Identity int64 `json:"identity" db:"station_identity"`
}

func NewStation(now Time, subwayLineID SubwayLineID, name string, identity int64) *Station {
	return &Station{
		StationMetadata: StationMetadata{CreatedAt: now},
		SubwayLineID:    subwayLineID,
		Name:            name,
		Identity:        identity,
	}
}

func (m *Station) GetKind() ResourceKind {
	return StationResourceKind
}

func (m *Station) GetCreatedAt() Time {
	return m.CreatedAt
}

func (m *Station) GetID() ResourceID {
	return m.ID.ResourceID
}

func (m *Station) SetID(id ResourceID) {
	m.ID = StationIDFromResourceID(id)
}

func (m *Station) Validate() error {
	var result *multierror.Error
	if m.CreatedAt.IsZero() {
		result = multierror.Append(result, errors.New("error created at must be set"))
	}
	if !m.SubwayLineID.Valid() {
		result = multierror.Append(result, errors.New("error subway line id must be set"))
	}
	if m.Name == "" {
		result = multierror.Append(result, errors.New("error name must be set"))
	}
	return result.ErrorOrNil()
}
