package dto

import (
	"github.com/ahachul/ahachul-backend/common/models"
)

type CommunityPostSummary struct {
	*models.CommunityPostSearchResult
	CommentCount int
}

type CommunityPostDetail struct {
	*models.CommunityPost
	WriterNickname *string
	CommentCount   int
}

type CreateCommunityPost struct {
	SubwayLineID models.SubwayLineID
	Title        string
	Content      string
	Category     models.CommunityCategory
}

type CreateComment struct {
	PostType       models.PostType
	PostID         models.ResourceID
	UpperCommentID *models.CommentID
	Content        string
}

type SendComplaint struct {
	ComplaintType    models.ComplaintType
	ShortContentType string
	Content          string
	PhoneNumber      string
	TrainNo          string
	Location         int
	SubwayLineID     models.SubwayLineID
}
