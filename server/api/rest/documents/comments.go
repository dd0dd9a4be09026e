package documents

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/api/rest/routes"
	"github.com/ahachul/ahachul-backend/server/dto"
)

type Comment struct {
	baseResourceDocument
	ID             models.CommentID     `json:"id"`
	UpperCommentID *models.CommentID    `json:"upper_comment_id"`
	Content        string               `json:"content"`
	Status         models.CommentStatus `json:"status"`
	CreatedAt      models.Time          `json:"created_at"`
	Writer         *string              `json:"writer"`
}

func MakeComment(rctx routes.RequestContext, comment *models.Comment) *Comment {
	return &Comment{
		baseResourceDocument: baseResourceDocument{URL: routes.MakeCommentLink(rctx, comment.ID)},
		ID:                   comment.ID,
		UpperCommentID:       comment.UpperCommentID,
		Content:              comment.Content,
		Status:               comment.Status,
		CreatedAt:            comment.CreatedAt,
	}
}

func MakeComments(rctx routes.RequestContext, comments []*models.CommentWithWriter) []*Comment {
	docs := make([]*Comment, 0, len(comments))
	for _, comment := range comments {
		doc := MakeComment(rctx, comment.Comment)
		if comment.Writer != nil {
			doc.Writer = comment.Writer.Nickname
		}
		docs = append(docs, doc)
	}
	return docs
}

// ListCommentsRequest is read from the query string.
type ListCommentsRequest struct {
	PostType models.PostType
	PostID   models.ResourceID
}

func (d *ListCommentsRequest) FromQuery(values url.Values) error {
	d.PostType = models.PostType(strings.ToUpper(values.Get("postType")))
	if !d.PostType.Valid() {
		return gerror.NewErrInvalidQueryParameter("postType must be COMMUNITY or LOST")
	}
	id, err := models.ParseResourceID(values.Get("postId"))
	if err != nil || !id.Valid() {
		return gerror.NewErrInvalidQueryParameter("error decoding postId")
	}
	d.PostID = id
	return nil
}

type CreateCommentRequest struct {
	PostType       models.PostType   `json:"post_type" validate:"required,oneof=COMMUNITY LOST"`
	PostID         models.ResourceID `json:"post_id" validate:"required"`
	UpperCommentID *models.CommentID `json:"upper_comment_id"`
	Content        string            `json:"content" validate:"required"`
}

func (d *CreateCommentRequest) Bind(r *http.Request) error {
	return Validate(d)
}

func (d *CreateCommentRequest) ToDTO() *dto.CreateComment {
	return &dto.CreateComment{
		PostType:       d.PostType,
		PostID:         d.PostID,
		UpperCommentID: d.UpperCommentID,
		Content:        d.Content,
	}
}

type PatchCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

func (d *PatchCommentRequest) Bind(r *http.Request) error {
	return Validate(d)
}
