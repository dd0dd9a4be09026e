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

type CommunityPostSummary struct {
	baseResourceDocument
	ID           models.CommunityPostID   `json:"id"`
	Title        string                   `json:"title"`
	Content      string                   `json:"content"`
	Category     models.CommunityCategory `json:"category"`
	Views        int64                    `json:"views"`
	CommentCount int                      `json:"comment_count"`
	SubwayLineID models.SubwayLineID      `json:"subway_line_id"`
	Region       models.RegionType        `json:"region"`
	CreatedAt    models.Time              `json:"created_at"`
	CreatedBy    string                   `json:"created_by"`
	Writer       *string                  `json:"writer"`
}

func MakeCommunityPostSummaries(rctx routes.RequestContext, summaries []*dto.CommunityPostSummary) []*CommunityPostSummary {
	docs := make([]*CommunityPostSummary, 0, len(summaries))
	for _, summary := range summaries {
		doc := &CommunityPostSummary{
			baseResourceDocument: baseResourceDocument{URL: routes.MakeCommunityPostLink(rctx, summary.ID)},
			ID:                   summary.ID,
			Title:                summary.Title,
			Content:              summary.Content,
			Category:             summary.Category,
			Views:                summary.Views,
			CommentCount:         summary.CommentCount,
			SubwayLineID:         summary.SubwayLineID,
			Region:               summary.Region,
			CreatedAt:            summary.CreatedAt,
			CreatedBy:            summary.CreatedBy,
		}
		if summary.Writer != nil {
			doc.Writer = summary.Writer.Nickname
		}
		docs = append(docs, doc)
	}
	return docs
}

type CommunityPost struct {
	baseResourceDocument
	*models.CommunityPost
	Writer       *string `json:"writer"`
	CommentCount int     `json:"comment_count"`
}

func MakeCommunityPost(rctx routes.RequestContext, post *models.CommunityPost) *CommunityPost {
	return &CommunityPost{
		baseResourceDocument: baseResourceDocument{URL: routes.MakeCommunityPostLink(rctx, post.ID)},
		CommunityPost:        post,
	}
}

func MakeCommunityPostDetail(rctx routes.RequestContext, detail *dto.CommunityPostDetail) *CommunityPost {
	doc := MakeCommunityPost(rctx, detail.CommunityPost)
	doc.Writer = detail.WriterNickname
	doc.CommentCount = detail.CommentCount
	return doc
}

// SearchCommunityPostsRequest is read from the query string.
type SearchCommunityPostsRequest struct {
	PageRequest
	Category     *models.CommunityCategory
	SubwayLineID *models.SubwayLineID
	Keyword      string
}

func (d *SearchCommunityPostsRequest) FromQuery(values url.Values) error {
	err := d.PageRequest.FromQuery(values)
	if err != nil {
		return err
	}
	if categoryStr := values.Get("categoryType"); categoryStr != "" {
		category := models.CommunityCategory(strings.ToUpper(categoryStr))
		if !category.Valid() {
			return gerror.NewErrInvalidQueryParameter("Unknown categoryType").EDetail("categoryType", categoryStr)
		}
		d.Category = &category
	}
	if lineStr := values.Get("subwayLineId"); lineStr != "" {
		id, err := models.ParseResourceID(lineStr)
		if err != nil {
			return gerror.NewErrInvalidQueryParameter("error decoding subwayLineId").Wrap(err)
		}
		lineID := models.SubwayLineIDFromResourceID(id)
		d.SubwayLineID = &lineID
	}
	d.Keyword = strings.TrimSpace(values.Get("content"))
	return nil
}

func (d *SearchCommunityPostsRequest) ToModel() *models.CommunityPostSearch {
	return &models.CommunityPostSearch{
		Category:     d.Category,
		SubwayLineID: d.SubwayLineID,
		Keyword:      d.Keyword,
		Pagination:   d.Pagination,
	}
}

type CreateCommunityPostRequest struct {
	Title        string                   `json:"title" validate:"required,max=100"`
	Content      string                   `json:"content" validate:"required"`
	CategoryType models.CommunityCategory `json:"category_type" validate:"required,oneof=FREE INSIGHT ISSUE HUMOR"`
	SubwayLineID models.SubwayLineID      `json:"subway_line_id"`
}

func (d *CreateCommunityPostRequest) Bind(r *http.Request) error {
	if !d.SubwayLineID.Valid() {
		return gerror.NewErrValidationFailed("subway_line_id is required").EDetail("field", "subway_line_id")
	}
	return Validate(d)
}

func (d *CreateCommunityPostRequest) ToDTO() *dto.CreateCommunityPost {
	return &dto.CreateCommunityPost{
		SubwayLineID: d.SubwayLineID,
		Title:        d.Title,
		Content:      d.Content,
		Category:     d.CategoryType,
	}
}

type PatchCommunityPostRequest struct {
	Title        *string                   `json:"title" validate:"omitempty,min=1,max=100"`
	Content      *string                   `json:"content" validate:"omitempty,min=1"`
	CategoryType *models.CommunityCategory `json:"category_type" validate:"omitempty,oneof=FREE INSIGHT ISSUE HUMOR"`
}

func (d *PatchCommunityPostRequest) Bind(r *http.Request) error {
	if d.Title == nil && d.Content == nil && d.CategoryType == nil {
		return gerror.NewErrValidationFailed("At least one of title, content and category_type must be specified")
	}
	return Validate(d)
}

func (d *PatchCommunityPostRequest) ToModel() *models.CommunityPostUpdate {
	return &models.CommunityPostUpdate{
		Title:    d.Title,
		Content:  d.Content,
		Category: d.CategoryType,
	}
}
