package server

import (
	"net/http"

	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/server/api/rest/documents"
	"github.com/ahachul/ahachul-backend/server/api/rest/routes"
)

var rootDocumentPaths = map[string]func(ctx routes.RequestContext) string{
	"redirect_url_url":        routes.MakeRedirectURLLink,
	"login_url":               routes.MakeLoginLink,
	"members_url":             routes.MakeMembersLink,
	"subway_lines_url":        routes.MakeSubwayLinesLink,
	"lost_posts_url":          routes.MakeLostPostsLink,
	"lost_categories_url":     routes.MakeLostCategoriesLink,
	"community_posts_url":     routes.MakeCommunityPostsLink,
	"community_hot_posts_url": routes.MakeCommunityHotPostsLink,
	"comments_url":            routes.MakeCommentsLink,
	"complaint_messages_url":  routes.MakeComplaintMessagesLink,
}

type RootAPI struct {
	*APIBase
}

func NewRootAPI(logFactory logger.LogFactory) *RootAPI {
	return &RootAPI{
		APIBase: NewAPIBase(logFactory("RootAPI")),
	}
}

func (a *RootAPI) GetRootDocument(w http.ResponseWriter, r *http.Request) {
	res := make(documents.GetRootDocumentResponse)
	for name, fn := range rootDocumentPaths {
		res[name] = fn(routes.RequestCtx(r))
	}
	a.JSON(w, r, res)
}
