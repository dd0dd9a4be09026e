package routes

import (
	"fmt"

	"github.com/ahachul/ahachul-backend/common/models"
)

func MakeCommunityPostsLink(rctx RequestContext) string {
	return fmt.Sprintf("%s/v1/community-posts", rctx.BaseURL())
}

func MakeCommunityHotPostsLink(rctx RequestContext) string {
	return fmt.Sprintf("%s/v1/community-hot-posts", rctx.BaseURL())
}

func MakeCommunityPostLink(rctx RequestContext, postID models.CommunityPostID) string {
	return fmt.Sprintf("%s/%s", MakeCommunityPostsLink(rctx), postID)
}
