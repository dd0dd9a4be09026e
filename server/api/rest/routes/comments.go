package routes

import (
	"fmt"

	"github.com/ahachul/ahachul-backend/common/models"
)

func MakeCommentsLink(rctx RequestContext) string {
	return fmt.Sprintf("%s/v1/comments", rctx.BaseURL())
}

func MakeCommentLink(rctx RequestContext, commentID models.CommentID) string {
	return fmt.Sprintf("%s/%s", MakeCommentsLink(rctx), commentID)
}
