package models

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

type LostType string

const (
	LostTypeLost    LostType = "LOST"
	LostTypeAcquire LostType = "ACQUIRE"
)

func (t LostType) Valid() bool {
	return t == LostTypeLost || t == LostTypeAcquire
}

// SortKey returns the column that orders lost posts of this type. Found items are ordered by the
// date they were handed in, lost items by the date the post was written.
func (t LostType) SortKey() SortKeyKind {
	if t == LostTypeAcquire {
		return SortKeyReceivedDate
	}
	return SortKeyCreatedAt
}

type LostStatus string

const (
	LostStatusProgress LostStatus = "PROGRESS"
	LostStatusComplete LostStatus = "COMPLETE"
)

func (s LostStatus) Valid() bool {
	return s == LostStatusProgress || s == LostStatusComplete
}

type LostOrigin string

const (
	LostOriginApp     LostOrigin = "APP"
	LostOriginLost112 LostOrigin = "LOST112"
)

type LostPostType string

const (
	LostPostTypeCreated LostPostType = "CREATED"
	LostPostTypeDeleted LostPostType = "DELETED"
)

// LostPostCreatedBySystem is recorded as the author of posts imported by a background job.
const LostPostCreatedBySystem = "SYSTEM"

type LostPostMetadata struct {
	ID        LostPostID `json:"id" goqu:"skipinsert,skipupdate" db:"lost_post_id"`
	CreatedAt Time       `json:"created_at" goqu:"skipupdate" db:"lost_post_created_at"`
	UpdatedAt Time       `json:"updated_at" db:"lost_post_updated_at"`
	ETag      ETag       `json:"etag" db:"lost_post_etag" hash:"ignore"`
}

type LostPost struct {
	LostPostMetadata
	MemberID              *MemberID     `json:"member_id" db:"lost_post_member_id"`
	SubwayLineID          *SubwayLineID `json:"subway_line_id" db:"lost_post_subway_line_id"`
	CategoryID            *CategoryID   `json:"category_id" db:"lost_post_category_id"`
	Title                 string        `json:"title" db:"lost_post_title"`
	Content               string        `json:"content" db:"lost_post_content"`
	Status                LostStatus    `json:"status" db:"lost_post_status"`
	Origin                LostOrigin    `json:"origin" db:"lost_post_origin"`
	Type                  LostPostType  `json:"type" db:"lost_post_type"`
	LostType              LostType      `json:"lost_type" db:"lost_post_lost_type"`
	Storage               string        `json:"storage" db:"lost_post_storage"`
	StorageNumber         string        `json:"storage_number" db:"lost_post_storage_number"`
	PageURL               string        `json:"page_url" db:"lost_post_page_url"`
	ReceivedDate          Time          `json:"received_date" db:"lost_post_received_date"`
	ExternalSourceFileURL string        `json:"external_source_file_url" db:"lost_post_external_source_file_url"`
	CreatedBy             string        `json:"created_by" db:"lost_post_created_by"`
}

// NewLostPost makes a post written by a member through the app. Both of its sort dates are now.
func NewLostPost(
	now Time,
	memberID MemberID,
	subwayLineID *SubwayLineID,
	categoryID *CategoryID,
	title string,
	content string,
	lostType LostType,
	storage string,
	storageNumber string,
) *LostPost {
	return &LostPost{
		LostPostMetadata: LostPostMetadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
		MemberID:      &memberID,
		SubwayLineID:  subwayLineID,
		CategoryID:    categoryID,
		Title:         title,
		Content:       content,
		Status:        LostStatusProgress,
		Origin:        LostOriginApp,
		Type:          LostPostTypeCreated,
		LostType:      lostType,
		Storage:       storage,
		StorageNumber: storageNumber,
		ReceivedDate:  now,
		CreatedBy:     memberID.String(),
	}
}

// NewImportedLostPost makes a found-item post from the Lost112 portal.
func NewImportedLostPost(
	now Time,
	receivedDate Time,
	subwayLineID *SubwayLineID,
	categoryID *CategoryID,
	title string,
	content string,
	storage string,
	storageNumber string,
	pageURL string,
	externalSourceFileURL string,
) *LostPost {
	return &LostPost{
		LostPostMetadata: LostPostMetadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
		SubwayLineID:          subwayLineID,
		CategoryID:            categoryID,
		Title:                 title,
		Content:               content,
		Status:                LostStatusProgress,
		Origin:                LostOriginLost112,
		Type:                  LostPostTypeCreated,
		LostType:              LostTypeAcquire,
		Storage:               storage,
		StorageNumber:         storageNumber,
		PageURL:               pageURL,
		ReceivedDate:          receivedDate,
		ExternalSourceFileURL: externalSourceFileURL,
		CreatedBy:             LostPostCreatedBySystem,
	}
}

func (m *LostPost) GetKind() ResourceKind {
	return LostPostResourceKind
}

func (m *LostPost) GetCreatedAt() Time {
	return m.CreatedAt
}

func (m *LostPost) GetID() ResourceID {
	return m.ID.ResourceID
}

func (m *LostPost) SetID(id ResourceID) {
	m.ID = LostPostIDFromResourceID(id)
}

func (m *LostPost) GetUpdatedAt() Time {
	return m.UpdatedAt
}

func (m *LostPost) SetUpdatedAt(t Time) {
	m.UpdatedAt = t
}

func (m *LostPost) GetETag() ETag {
	return m.ETag
}

func (m *LostPost) SetETag(eTag ETag) {
	m.ETag = eTag
}

func (m *LostPost) GetSortValue(kind SortKeyKind) Time {
	if kind == SortKeyReceivedDate {
		return m.ReceivedDate
	}
	return m.CreatedAt
}

// Date is the date shown for the post, which is also the value it is ordered by.
func (m *LostPost) Date() Time {
	return m.GetSortValue(m.LostType.SortKey())
}

func (m *LostPost) IsFromLost112() bool {
	return m.Origin == LostOriginLost112
}

func (m *LostPost) IsDeleted() bool {
	return m.Type == LostPostTypeDeleted
}

// IsWrittenBy returns true if the post was written by the specified member. Imported posts have no writer.
func (m *LostPost) IsWrittenBy(memberID MemberID) bool {
	return m.MemberID != nil && *m.MemberID == memberID
}

func (m *LostPost) Validate() error {
	var result *multierror.Error
	if m.CreatedAt.IsZero() {
		result = multierror.Append(result, errors.New("error created at must be set"))
	}
	if m.UpdatedAt.IsZero() {
		result = multierror.Append(result, errors.New("error updated at must be set"))
	}
	if m.ReceivedDate.IsZero() {
		result = multierror.Append(result, errors.New("error received date must be set"))
	}
	if m.Title == "" {
		result = multierror.Append(result, errors.New("error title must be set"))
	}
	if !m.LostType.Valid() {
		result = multierror.Append(result, errors.Errorf("error unknown lost type: %q", m.LostType))
	}
	if !m.Status.Valid() {
		result = multierror.Append(result, errors.Errorf("error unknown status: %q", m.Status))
	}
	if m.Origin != LostOriginApp && m.Origin != LostOriginLost112 {
		result = multierror.Append(result, errors.Errorf("error unknown origin: %q", m.Origin))
	}
	if m.Origin == LostOriginApp && m.MemberID == nil {
		result = multierror.Append(result, errors.New("error member id must be set for posts written in the app"))
	}
	if m.Type != LostPostTypeCreated && m.Type != LostPostTypeDeleted {
		result = multierror.Append(result, errors.Errorf("error unknown type: %q", m.Type))
	}
	if m.CreatedBy == "" {
		result = multierror.Append(result, errors.New("error created by must be set"))
	}
	return result.ErrorOrNil()
}

// LostPostSearch filters a listing of lost posts. LostType is required and selects the sort key.
type LostPostSearch struct {
	LostType     LostType
	SubwayLineID *SubwayLineID
	CategoryID   *CategoryID
	Keyword      string
	Pagination   Pagination
}

// LostPostUpdate holds the fields a writer can change. Nil fields are left unchanged.
type LostPostUpdate struct {
	Title        *string
	Content      *string
	Status       *LostStatus
	SubwayLineID *SubwayLineID
	CategoryID   *CategoryID
}
