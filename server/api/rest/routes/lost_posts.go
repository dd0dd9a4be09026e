package routes

import (
	"fmt"

	"github.com/ahachul/ahachul-backend/common/models"
)

func MakeLostPostsLink(rctx RequestContext) string {
	return fmt.Sprintf("%s/v1/lost-posts", rctx.BaseURL())
}

func MakeLostPostLink(rctx RequestContext, postID models.LostPostID) string {
	return fmt.Sprintf("%s/%s", MakeLostPostsLink(rctx), postID)
}

func MakeLostCategoriesLink(rctx RequestContext) string {
	return fmt.Sprintf("%s/v1/lost-categories", rctx.BaseURL())
}
