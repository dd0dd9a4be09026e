package models

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

type ComplaintType string

const (
	ComplaintTypeEnvironmental    ComplaintType = "ENVIRONMENTAL_COMPLAINT"
	ComplaintTypeTemperature      ComplaintType = "TEMPERATURE_CONTROL"
	ComplaintTypeDisorderly       ComplaintType = "DISORDERLY_CONDUCT"
	ComplaintTypeAnnouncement     ComplaintType = "ANNOUNCEMENT"
	ComplaintTypeEmergencyPatient ComplaintType = "EMERGENCY_PATIENT"
	ComplaintTypeViolence         ComplaintType = "VIOLENCE"
	ComplaintTypeSexualHarassment ComplaintType = "SEXUAL_HARASSMENT"
)

func (c ComplaintType) Valid() bool {
	switch c {
	case ComplaintTypeEnvironmental, ComplaintTypeTemperature, ComplaintTypeDisorderly, ComplaintTypeAnnouncement,
		ComplaintTypeEmergencyPatient, ComplaintTypeViolence, ComplaintTypeSexualHarassment:
		return true
	}
	return false
}

type ComplaintMessageMetadata struct {
	ID        ComplaintMessageID `json:"id" goqu:"skipinsert,skipupdate" db:"complaint_message_id"`
	CreatedAt Time               `json:"created_at" goqu:"skipupdate" db:"complaint_message_created_at"`
}

// ComplaintMessage is a complaint sent by a passenger about conditions on a train.
type ComplaintMessage struct {
	ComplaintMessageMetadata
	MemberID         MemberID      `json:"member_id" db:"complaint_message_member_id"`
	ComplaintType    ComplaintType `json:"complaint_type" db:"complaint_message_complaint_type"`
	ShortContentType string        `json:"short_content_type" db:"complaint_message_short_content_type"`
	Content          string        `json:"content" db:"complaint_message_content"`
	PhoneNumber      string        `json:"phone_number" db:"complaint_message_phone_number"`
	TrainNo          string        `json:"train_no" db:"complaint_message_train_no"`
	Location         int           `json:"location" db:"complaint_message_location"`
	SubwayLineID     SubwayLineID  `json:"subway_line_id" db:"complaint_message_subway_line_id"`
}

func NewComplaintMessage(
	now Time,
	memberID MemberID,
	complaintType ComplaintType,
	shortContentType string,
	content string,
	phoneNumber string,
	trainNo string,
	location int,
	subwayLineID SubwayLineID,
) *ComplaintMessage {
	return &ComplaintMessage{
		ComplaintMessageMetadata: ComplaintMessageMetadata{CreatedAt: now},
		MemberID:                 memberID,
		ComplaintType:            complaintType,
		ShortContentType:         shortContentType,
		Content:                  content,
		PhoneNumber:              phoneNumber,
		TrainNo:                  trainNo,
		Location:                 location,
		SubwayLineID:             subwayLineID,
	}
}

func (m *ComplaintMessage) GetKind() ResourceKind {
	return ComplaintMessageResourceKind
}

func (m *ComplaintMessage) GetCreatedAt() Time {
	return m.CreatedAt
}

func (m *ComplaintMessage) GetID() ResourceID {
	return m.ID.ResourceID
}

func (m *ComplaintMessage) SetID(id ResourceID) {
	m.ID = ComplaintMessageIDFromResourceID(id)
}

func (m *ComplaintMessage) GetSortValue(kind SortKeyKind) Time {
	return m.CreatedAt
}

func (m *ComplaintMessage) Validate() error {
	var result *multierror.Error
	if m.CreatedAt.IsZero() {
		result = multierror.Append(result, errors.New("error created at must be set"))
	}
	if !m.MemberID.Valid() {
		result = multierror.Append(result, errors.New("error member id must be set"))
	}
	if !m.ComplaintType.Valid() {
		result = multierror.Append(result, errors.Errorf("error unknown complaint type: %q", m.ComplaintType))
	}
	if !m.SubwayLineID.Valid() {
		result = multierror.Append(result, errors.New("error subway line id must be set"))
	}
	if m.TrainNo == "" {
		result = multierror.Append(result, errors.New("error train number must be set"))
	}
	return result.ErrorOrNil()
}
