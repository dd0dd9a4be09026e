package models

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// MinReportCount is the number of reports that blocks a post, and the number of reported posts
// after which an admin may suspend the writer.
const MinReportCount = 3

type ReportMetadata struct {
	ID        ReportID `json:"id" goqu:"skipinsert,skipupdate" db:"report_id"`
	CreatedAt Time     `json:"created_at" goqu:"skipupdate" db:"report_created_at"`
}

type Report struct {
	ReportMetadata
	SourceMemberID MemberID        `json:"source_member_id" db:"report_source_member_id"`
	TargetMemberID MemberID        `json:"target_member_id" db:"report_target_member_id"`
	TargetPostID   CommunityPostID `json:"target_post_id" db:"report_target_post_id"`
}

func NewReport(now Time, source MemberID, target MemberID, postID CommunityPostID) *Report {
	return &Report{
		ReportMetadata: ReportMetadata{CreatedAt: now},
		SourceMemberID: source,
		TargetMemberID: target,
		TargetPostID:   postID,
	}
}

func (m *Report) GetKind() ResourceKind {
	return ReportResourceKind
}

func (m *Report) GetCreatedAt() Time {
	return m.CreatedAt
}

func (m *Report) GetID() ResourceID {
	return m.ID.ResourceID
}

func (m *Report) SetID(id ResourceID) {
	m.ID = ReportIDFromResourceID(id)
}

func (m *Report) Validate() error {
	var result *multierror.Error
	if m.CreatedAt.IsZero() {
		result = multierror.Append(result, errors.New("error created at must be set"))
	}
	if !m.SourceMemberID.Valid() {
		result = multierror.Append(result, errors.New("error source member id must be set"))
	}
	if !m.TargetMemberID.Valid() {
		result = multierror.Append(result, errors.New("error target member id must be set"))
	}
	if !m.TargetPostID.Valid() {
		result = multierror.Append(result, errors.New("error target post id must be set"))
	}
	if m.SourceMemberID == m.TargetMemberID {
		result = multierror.Append(result, errors.New("error members can not report themselves"))
	}
	return result.ErrorOrNil()
}
