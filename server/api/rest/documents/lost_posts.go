package documents

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/api/rest/routes"
	"github.com/ahachul/ahachul-backend/server/dto"
)

const (
	// MaxUploadMemory is the part of a multipart request held in memory; the rest spills to temporary files.
	MaxUploadMemory = 32 << 20
	// multipartContentField holds the JSON request document in a multipart request.
	multipartContentField = "content"
	// multipartFilesField holds the uploaded images in a multipart request.
	multipartFilesField = "files"
)

type LostPostSummary struct {
	baseResourceDocument
	ID            models.LostPostID    `json:"id"`
	Title         string               `json:"title"`
	Content       string               `json:"content"`
	Writer        *string              `json:"writer"`
	CreatedAt     models.Time          `json:"created_at"`
	ReceivedDate  models.Time          `json:"received_date"`
	SubwayLineID  *models.SubwayLineID `json:"subway_line_id"`
	CommentCount  int                  `json:"comment_count"`
	ImageURL      *string              `json:"image_url"`
	CategoryName  *string              `json:"category_name"`
	Status        models.LostStatus    `json:"status"`
	LostType      models.LostType      `json:"lost_type"`
	IsFromLost112 bool                 `json:"is_from_lost112"`
}

func MakeLostPostSummary(rctx routes.RequestContext, summary *dto.LostPostSummary) *LostPostSummary {
	return &LostPostSummary{
		baseResourceDocument: baseResourceDocument{URL: routes.MakeLostPostLink(rctx, summary.ID)},
		ID:                   summary.ID,
		Title:                summary.Title,
		Content:              summary.Content,
		Writer:               summary.WriterNickname,
		CreatedAt:            summary.CreatedAt,
		ReceivedDate:         summary.ReceivedDate,
		SubwayLineID:         summary.SubwayLineID,
		CommentCount:         summary.CommentCount,
		ImageURL:             summary.ImageURL,
		CategoryName:         summary.CategoryName,
		Status:               summary.Status,
		LostType:             summary.LostType,
		IsFromLost112:        summary.IsFromLost112(),
	}
}

func MakeLostPostSummaries(rctx routes.RequestContext, summaries []*dto.LostPostSummary) []*LostPostSummary {
	docs := make([]*LostPostSummary, 0, len(summaries))
	for _, summary := range summaries {
		docs = append(docs, MakeLostPostSummary(rctx, summary))
	}
	return docs
}

type LostPost struct {
	baseResourceDocument
	ID                    models.LostPostID    `json:"id"`
	Title                 string               `json:"title"`
	Content               string               `json:"content"`
	Writer                *string              `json:"writer"`
	CreatedBy             string               `json:"created_by"`
	CreatedAt             models.Time          `json:"created_at"`
	ReceivedDate          models.Time          `json:"received_date"`
	SubwayLineID          *models.SubwayLineID `json:"subway_line_id"`
	CommentCount          int                  `json:"comment_count"`
	Status                models.LostStatus    `json:"status"`
	LostType              models.LostType      `json:"lost_type"`
	Storage               string               `json:"storage"`
	StorageNumber         string               `json:"storage_number"`
	PageURL               string               `json:"page_url"`
	IsFromLost112         bool                 `json:"is_from_lost112"`
	ExternalSourceFileURL string               `json:"external_source_file_url"`
	CategoryName          *string              `json:"category_name"`
	Images                []*models.Image      `json:"images"`
	RecommendPosts        []*LostPostSummary   `json:"recommend_posts"`
}

func MakeLostPost(rctx routes.RequestContext, detail *dto.LostPostDetail) *LostPost {
	images := detail.Images
	if images == nil {
		images = []*models.Image{}
	}
	return &LostPost{
		baseResourceDocument:  baseResourceDocument{URL: routes.MakeLostPostLink(rctx, detail.ID)},
		ID:                    detail.ID,
		Title:                 detail.Title,
		Content:               detail.Content,
		Writer:                detail.WriterNickname,
		CreatedBy:             detail.CreatedBy,
		CreatedAt:             detail.CreatedAt,
		ReceivedDate:          detail.ReceivedDate,
		SubwayLineID:          detail.SubwayLineID,
		CommentCount:          detail.CommentCount,
		Status:                detail.Status,
		LostType:              detail.LostType,
		Storage:               detail.Storage,
		StorageNumber:         detail.StorageNumber,
		PageURL:               detail.PageURL,
		IsFromLost112:         detail.IsFromLost112(),
		ExternalSourceFileURL: detail.ExternalSourceFileURL,
		CategoryName:          detail.CategoryName,
		Images:                images,
		RecommendPosts:        MakeLostPostSummaries(rctx, detail.Recommends),
	}
}

// SavedLostPost is returned after a post is created or changed.
type SavedLostPost struct {
	baseResourceDocument
	*models.LostPost
	Images []*models.Image `json:"images,omitempty"`
}

func MakeSavedLostPost(rctx routes.RequestContext, post *models.LostPost, images []*models.Image) *SavedLostPost {
	return &SavedLostPost{
		baseResourceDocument: baseResourceDocument{URL: routes.MakeLostPostLink(rctx, post.ID)},
		LostPost:             post,
		Images:               images,
	}
}

// SearchLostPostsRequest is read from the query string.
type SearchLostPostsRequest struct {
	PageRequest
	LostType     models.LostType
	SubwayLineID *models.SubwayLineID
	Category     *string
	Keyword      string
}

func (d *SearchLostPostsRequest) FromQuery(values url.Values) error {
	err := d.PageRequest.FromQuery(values)
	if err != nil {
		return err
	}
	d.LostType = models.LostType(strings.ToUpper(values.Get("lostType")))
	if !d.LostType.Valid() {
		return gerror.NewErrInvalidQueryParameter("lostType must be LOST or ACQUIRE")
	}
	if lineStr := values.Get("subwayLineId"); lineStr != "" {
		id, err := models.ParseResourceID(lineStr)
		if err != nil {
			return gerror.NewErrInvalidQueryParameter("error decoding subwayLineId").Wrap(err)
		}
		lineID := models.SubwayLineIDFromResourceID(id)
		d.SubwayLineID = &lineID
	}
	if category := strings.TrimSpace(values.Get("category")); category != "" {
		d.Category = &category
	}
	d.Keyword = strings.TrimSpace(values.Get("keyword"))
	return nil
}

func (d *SearchLostPostsRequest) ToDTO() *dto.SearchLostPosts {
	return &dto.SearchLostPosts{
		LostType:     d.LostType,
		SubwayLineID: d.SubwayLineID,
		CategoryName: d.Category,
		Keyword:      d.Keyword,
		Pagination:   d.Pagination,
	}
}

type CreateLostPostRequest struct {
	Title         string              `json:"title" validate:"required,max=100"`
	Content       string              `json:"content" validate:"required"`
	SubwayLineID  models.SubwayLineID `json:"subway_line_id"`
	LostType      models.LostType     `json:"lost_type" validate:"required,oneof=LOST ACQUIRE"`
	CategoryName  *string             `json:"category_name"`
	Storage       string              `json:"storage"`
	StorageNumber string              `json:"storage_number"`
}

func (d *CreateLostPostRequest) Bind(r *http.Request) error {
	if !d.SubwayLineID.Valid() {
		return gerror.NewErrValidationFailed("subway_line_id is required").EDetail("field", "subway_line_id")
	}
	return Validate(d)
}

func (d *CreateLostPostRequest) ToDTO(images []*dto.FileUpload) *dto.CreateLostPost {
	return &dto.CreateLostPost{
		SubwayLineID:  d.SubwayLineID,
		CategoryName:  d.CategoryName,
		Title:         d.Title,
		Content:       d.Content,
		LostType:      d.LostType,
		Storage:       d.Storage,
		StorageNumber: d.StorageNumber,
		Images:        images,
	}
}

type PatchLostPostRequest struct {
	Title         *string                 `json:"title" validate:"omitempty,min=1,max=100"`
	Content       *string                 `json:"content" validate:"omitempty,min=1"`
	SubwayLineID  *models.SubwayLineID    `json:"subway_line_id"`
	CategoryName  *string                 `json:"category_name"`
	Status        *models.LostStatus      `json:"status" validate:"omitempty,oneof=PROGRESS COMPLETE"`
	RemoveFileIDs []models.LostPostFileID `json:"remove_file_ids"`
}

func (d *PatchLostPostRequest) Bind(r *http.Request) error {
	return Validate(d)
}

func (d *PatchLostPostRequest) ToDTO(images []*dto.FileUpload) *dto.UpdateLostPost {
	return &dto.UpdateLostPost{
		Title:         d.Title,
		Content:       d.Content,
		SubwayLineID:  d.SubwayLineID,
		CategoryName:  d.CategoryName,
		Status:        d.Status,
		Images:        images,
		RemoveFileIDs: d.RemoveFileIDs,
	}
}

type PatchLostPostStatusRequest struct {
	Status models.LostStatus `json:"status" validate:"required,oneof=PROGRESS COMPLETE"`
}

func (d *PatchLostPostStatusRequest) Bind(r *http.Request) error {
	return Validate(d)
}

type LostCategory struct {
	ID   models.CategoryID `json:"id"`
	Name string            `json:"name"`
}

func MakeLostCategories(categories []*models.Category) []*LostCategory {
	docs := make([]*LostCategory, 0, len(categories))
	for _, category := range categories {
		docs = append(docs, &LostCategory{ID: category.ID, Name: category.Name})
	}
	return docs
}

// BindMultipart reads a request made of a JSON document in the "content" part and images in the "files" part.
// Requests that are not multipart are read as a plain JSON body with no images. The returned function closes
// the uploaded files and must be called once the request has been handled.
func BindMultipart(r *http.Request, doc interface{ Bind(r *http.Request) error }) ([]*dto.FileUpload, func(), error) {
	noop := func() {}
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		err := json.NewDecoder(r.Body).Decode(doc)
		if err != nil {
			return nil, noop, gerror.NewErrValidationFailed("Request body is not valid JSON").Wrap(err)
		}
		return nil, noop, doc.Bind(r)
	}
	err := r.ParseMultipartForm(MaxUploadMemory)
	if err != nil {
		return nil, noop, gerror.NewErrValidationFailed("Malformed multipart request").Wrap(err)
	}
	content := r.FormValue(multipartContentField)
	if content == "" {
		return nil, noop, gerror.NewErrValidationFailed("Request is missing its content part")
	}
	err = json.Unmarshal([]byte(content), doc)
	if err != nil {
		return nil, noop, gerror.NewErrValidationFailed("Request content is not valid JSON").Wrap(err)
	}
	err = doc.Bind(r)
	if err != nil {
		return nil, noop, err
	}
	var (
		uploads []*dto.FileUpload
		opened  []multipart.File
	)
	cleanup := func() {
		for _, f := range opened {
			f.Close()
		}
		r.MultipartForm.RemoveAll()
	}
	for _, header := range r.MultipartForm.File[multipartFilesField] {
		f, err := header.Open()
		if err != nil {
			cleanup()
			return nil, noop, errors.Wrapf(err, "error opening upload %q", header.Filename)
		}
		opened = append(opened, f)
		uploads = append(uploads, &dto.FileUpload{FileName: header.Filename, Reader: f})
	}
	return uploads, cleanup, nil
}
