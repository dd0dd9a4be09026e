package dto

import (
	"io"

	"github.com/ahachul/ahachul-backend/common/models"
)

// FileUpload is an uploaded file whose contents have not been stored yet.
type FileUpload struct {
	FileName string
	Reader   io.Reader
}

type SearchLostPosts struct {
	LostType     models.LostType
	SubwayLineID *models.SubwayLineID
	// CategoryName restricts results to a category. An unknown name matches nothing.
	CategoryName *string
	Keyword      string
	Pagination   models.Pagination
}

// LostPostSummary is a post as it appears in search results and recommendations.
type LostPostSummary struct {
	*models.LostPost
	WriterNickname *string
	CategoryName   *string
	CommentCount   int
	// ImageURL is the url of the first image of the post, or nil if it has none.
	ImageURL *string
}

type LostPostDetail struct {
	*models.LostPost
	WriterNickname *string
	CategoryName   *string
	CommentCount   int
	Images         []*models.Image
	Recommends     []*LostPostSummary
}

type CreateLostPost struct {
	SubwayLineID  models.SubwayLineID
	CategoryName  *string
	Title         string
	Content       string
	LostType      models.LostType
	Storage       string
	StorageNumber string
	Images        []*FileUpload
}

type UpdateLostPost struct {
	Title         *string
	Content       *string
	SubwayLineID  *models.SubwayLineID
	CategoryName  *string
	Status        *models.LostStatus
	Images        []*FileUpload
	RemoveFileIDs []models.LostPostFileID
}
