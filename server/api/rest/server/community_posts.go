package server

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/api/rest/documents"
	"github.com/ahachul/ahachul-backend/server/api/rest/routes"
	"github.com/ahachul/ahachul-backend/server/services"
)

type CommunityPostAPI struct {
	communityPostService services.CommunityPostService
	*APIBase
}

func NewCommunityPostAPI(communityPostService services.CommunityPostService, logFactory logger.LogFactory) *CommunityPostAPI {
	return &CommunityPostAPI{
		communityPostService: communityPostService,
		APIBase:              NewAPIBase(logFactory("CommunityPostAPI")),
	}
}

func (a *CommunityPostAPI) Search(w http.ResponseWriter, r *http.Request) {
	req := &documents.SearchCommunityPostsRequest{}
	err := req.FromQuery(r.URL.Query())
	if err != nil {
		a.Error(w, r, err)
		return
	}
	summaries, next, err := a.communityPostService.Search(r.Context(), req.ToModel())
	if err != nil {
		a.Error(w, r, err)
		return
	}
	rctx := routes.RequestCtx(r)
	docs := documents.MakeCommunityPostSummaries(rctx, summaries)
	a.JSON(w, r, documents.NewPageResponse(a.PageLink(r, routes.MakeCommunityPostsLink(rctx)), docs, next))
}

// SearchHot lists posts that have been viewed often, optionally on one subway line.
func (a *CommunityPostAPI) SearchHot(w http.ResponseWriter, r *http.Request) {
	req := &documents.SearchCommunityPostsRequest{}
	err := req.FromQuery(r.URL.Query())
	if err != nil {
		a.Error(w, r, err)
		return
	}
	summaries, next, err := a.communityPostService.SearchHot(r.Context(), req.SubwayLineID, req.Pagination)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	rctx := routes.RequestCtx(r)
	docs := documents.MakeCommunityPostSummaries(rctx, summaries)
	a.JSON(w, r, documents.NewPageResponse(a.PageLink(r, routes.MakeCommunityHotPostsLink(rctx)), docs, next))
}

func (a *CommunityPostAPI) Get(w http.ResponseWriter, r *http.Request) {
	postID, err := a.communityPostID(r)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	detail, err := a.communityPostService.Read(r.Context(), postID)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	a.GotResource(w, r, documents.MakeCommunityPostDetail(routes.RequestCtx(r), detail))
}

func (a *CommunityPostAPI) Create(w http.ResponseWriter, r *http.Request) {
	req := &documents.CreateCommunityPostRequest{}
	err := render.Bind(r, req)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	post, err := a.communityPostService.Create(r.Context(), a.MustAuthenticatedMemberID(r), req.ToDTO())
	if err != nil {
		a.Error(w, r, err)
		return
	}
	a.CreatedResource(w, r, documents.MakeCommunityPost(routes.RequestCtx(r), post))
}

func (a *CommunityPostAPI) Patch(w http.ResponseWriter, r *http.Request) {
	postID, err := a.communityPostID(r)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	req := &documents.PatchCommunityPostRequest{}
	err = render.Bind(r, req)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	post, err := a.communityPostService.Update(r.Context(), a.MustAuthenticatedMemberID(r), postID, req.ToModel())
	if err != nil {
		a.Error(w, r, err)
		return
	}
	a.UpdatedResource(w, r, documents.MakeCommunityPost(routes.RequestCtx(r), post))
}

func (a *CommunityPostAPI) Delete(w http.ResponseWriter, r *http.Request) {
	postID, err := a.communityPostID(r)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	post, err := a.communityPostService.Delete(r.Context(), a.MustAuthenticatedMemberID(r), postID)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	a.UpdatedResource(w, r, documents.MakeCommunityPost(routes.RequestCtx(r), post))
}

func (a *CommunityPostAPI) communityPostID(r *http.Request) (models.CommunityPostID, error) {
	id, err := a.ResourceID(r, "post_id")
	if err != nil {
		return models.CommunityPostID{}, err
	}
	return models.CommunityPostIDFromResourceID(id), nil
}
