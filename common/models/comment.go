package models

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// PostType identifies the kind of post a comment was left on.
type PostType string

const (
	PostTypeCommunity PostType = "COMMUNITY"
	PostTypeLost      PostType = "LOST"
)

func (t PostType) Valid() bool {
	return t == PostTypeCommunity || t == PostTypeLost
}

type CommentStatus string

const (
	CommentStatusCreated CommentStatus = "CREATED"
	CommentStatusDeleted CommentStatus = "DELETED"
)

type CommentMetadata struct {
	ID        CommentID `json:"id" goqu:"skipinsert,skipupdate" db:"comment_id"`
	CreatedAt Time      `json:"created_at" goqu:"skipupdate" db:"comment_created_at"`
	UpdatedAt Time      `json:"updated_at" db:"comment_updated_at"`
	ETag      ETag      `json:"etag" db:"comment_etag" hash:"ignore"`
}

type Comment struct {
	CommentMetadata
	PostType       PostType      `json:"post_type" db:"comment_post_type"`
	PostID         ResourceID    `json:"post_id" db:"comment_post_id"`
	UpperCommentID *CommentID    `json:"upper_comment_id" db:"comment_upper_comment_id"`
	MemberID       MemberID      `json:"member_id" db:"comment_member_id"`
	Content        string        `json:"content" db:"comment_content"`
	Status         CommentStatus `json:"status" db:"comment_status"`
}

func NewComment(now Time, postType PostType, postID ResourceID, upperCommentID *CommentID, memberID MemberID, content string) *Comment {
	return &Comment{
		CommentMetadata: CommentMetadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
		PostType:       postType,
		PostID:         postID,
		UpperCommentID: upperCommentID,
		MemberID:       memberID,
		Content:        content,
		Status:         CommentStatusCreated,
	}
}

func (m *Comment) GetKind() ResourceKind {
	return CommentResourceKind
}

func (m *Comment) GetCreatedAt() Time {
	return m.CreatedAt
}

func (m *Comment) GetID() ResourceID {
	return m.ID.ResourceID
}

func (m *Comment) SetID(id ResourceID) {
	m.ID = CommentIDFromResourceID(id)
}

func (m *Comment) GetUpdatedAt() Time {
	return m.UpdatedAt
}

func (m *Comment) SetUpdatedAt(t Time) {
	m.UpdatedAt = t
}

func (m *Comment) GetETag() ETag {
	return m.ETag
}

func (m *Comment) SetETag(eTag ETag) {
	m.ETag = eTag
}

func (m *Comment) IsDeleted() bool {
	return m.Status == CommentStatusDeleted
}

func (m *Comment) Validate() error {
	var result *multierror.Error
	if m.CreatedAt.IsZero() {
		result = multierror.Append(result, errors.New("error created at must be set"))
	}
	if !m.PostType.Valid() {
		result = multierror.Append(result, errors.Errorf("error unknown post type: %q", m.PostType))
	}
	if !m.PostID.Valid() {
		result = multierror.Append(result, errors.New("error post id must be set"))
	}
	if m.UpperCommentID != nil && !m.UpperCommentID.Valid() {
		result = multierror.Append(result, errors.New("error upper comment id must be valid if set"))
	}
	if !m.MemberID.Valid() {
		result = multierror.Append(result, errors.New("error member id must be set"))
	}
	if m.Content == "" && !m.IsDeleted() {
		result = multierror.Append(result, errors.New("error content must be set"))
	}
	return result.ErrorOrNil()
}

// CommentWithWriter is a comment along with the member who wrote it.
type CommentWithWriter struct {
	*Comment
	Writer *Member `db:"members"`
}
