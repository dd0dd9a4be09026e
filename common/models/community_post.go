package models

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

type CommunityCategory string

const (
	CommunityCategoryFree    CommunityCategory = "FREE"
	CommunityCategoryInsight CommunityCategory = "INSIGHT"
	CommunityCategoryIssue   CommunityCategory = "ISSUE"
	CommunityCategoryHumor   CommunityCategory = "HUMOR"
)

func (c CommunityCategory) Valid() bool {
	switch c {
	case CommunityCategoryFree, CommunityCategoryInsight, CommunityCategoryIssue, CommunityCategoryHumor:
		return true
	}
	return false
}

type RegionType string

const RegionTypeMetropolitan RegionType = "METROPOLITAN"

type CommunityPostStatus string

const (
	CommunityPostStatusCreated CommunityPostStatus = "CREATED"
	CommunityPostStatusDeleted CommunityPostStatus = "DELETED"
	CommunityPostStatusBlocked CommunityPostStatus = "BLOCKED"
)

// DefaultHotPostViews is the number of views that makes a post show up in the hot listing.
const DefaultHotPostViews = 10

type CommunityPostMetadata struct {
	ID        CommunityPostID `json:"id" goqu:"skipinsert,skipupdate" db:"community_post_id"`
	CreatedAt Time            `json:"created_at" goqu:"skipupdate" db:"community_post_created_at"`
	UpdatedAt Time            `json:"updated_at" db:"community_post_updated_at"`
	ETag      ETag            `json:"etag" db:"community_post_etag" hash:"ignore"`
}

type CommunityPost struct {
	CommunityPostMetadata
	MemberID     MemberID            `json:"member_id" db:"community_post_member_id"`
	SubwayLineID SubwayLineID        `json:"subway_line_id" db:"community_post_subway_line_id"`
	Title        string              `json:"title" db:"community_post_title"`
	Content      string              `json:"content" db:"community_post_content"`
	Category     CommunityCategory   `json:"category" db:"community_post_category"`
	Region       RegionType          `json:"region" db:"community_post_region"`
	Views        int64               `json:"views" db:"community_post_views" hash:"ignore"`
	Status       CommunityPostStatus `json:"status" db:"community_post_status"`
	CreatedBy    string              `json:"created_by" db:"community_post_created_by"`
}

func NewCommunityPost(
	now Time,
	memberID MemberID,
	subwayLineID SubwayLineID,
	title string,
	content string,
	category CommunityCategory,
) *CommunityPost {
	return &CommunityPost{
		CommunityPostMetadata: CommunityPostMetadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
		MemberID:     memberID,
		SubwayLineID: subwayLineID,
		Title:        title,
		Content:      content,
		Category:     category,
		Region:       RegionTypeMetropolitan,
		Status:       CommunityPostStatusCreated,
		CreatedBy:    memberID.String(),
	}
}

func (m *CommunityPost) GetKind() ResourceKind {
	return CommunityPostResourceKind
}

func (m *CommunityPost) GetCreatedAt() Time {
	return m.CreatedAt
}

func (m *CommunityPost) GetID() ResourceID {
	return m.ID.ResourceID
}

func (m *CommunityPost) SetID(id ResourceID) {
	m.ID = CommunityPostIDFromResourceID(id)
}

func (m *CommunityPost) GetUpdatedAt() Time {
	return m.UpdatedAt
}

func (m *CommunityPost) SetUpdatedAt(t Time) {
	m.UpdatedAt = t
}

func (m *CommunityPost) GetETag() ETag {
	return m.ETag
}

func (m *CommunityPost) SetETag(eTag ETag) {
	m.ETag = eTag
}

func (m *CommunityPost) GetSortValue(kind SortKeyKind) Time {
	return m.CreatedAt
}

// IsVisible is false once a post has been deleted by its writer or blocked after being reported.
func (m *CommunityPost) IsVisible() bool {
	return m.Status == CommunityPostStatusCreated
}

func (m *CommunityPost) Validate() error {
	var result *multierror.Error
	if m.CreatedAt.IsZero() {
		result = multierror.Append(result, errors.New("error created at must be set"))
	}
	if m.UpdatedAt.IsZero() {
		result = multierror.Append(result, errors.New("error updated at must be set"))
	}
	if !m.MemberID.Valid() {
		result = multierror.Append(result, errors.New("error member id must be set"))
	}
	if !m.SubwayLineID.Valid() {
		result = multierror.Append(result, errors.New("error subway line id must be set"))
	}
	if m.Title == "" {
		result = multierror.Append(result, errors.New("error title must be set"))
	}
	if !m.Category.Valid() {
		result = multierror.Append(result, errors.Errorf("error unknown category: %q", m.Category))
	}
	switch m.Status {
	case CommunityPostStatusCreated, CommunityPostStatusDeleted, CommunityPostStatusBlocked:
	default:
		result = multierror.Append(result, errors.Errorf("error unknown status: %q", m.Status))
	}
	return result.ErrorOrNil()
}

// CommunityPostSearch filters a listing of community posts, newest first.
type CommunityPostSearch struct {
	Category     *CommunityCategory
	SubwayLineID *SubwayLineID
	Keyword      string
	// MinViews restricts the listing to posts viewed at least this many times, or no restriction if zero.
	MinViews   int64
	Pagination Pagination
}

// CommunityPostSearchResult is a community post along with its writer.
type CommunityPostSearchResult struct {
	*CommunityPost
	Writer *Member `db:"members"`
}

type CommunityPostUpdate struct {
	Title    *string
	Content  *string
	Category *CommunityCategory
}
