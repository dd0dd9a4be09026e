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

type LostPostAPI struct {
	lostPostService services.LostPostService
	*APIBase
}

func NewLostPostAPI(lostPostService services.LostPostService, logFactory logger.LogFactory) *LostPostAPI {
	return &LostPostAPI{
		lostPostService: lostPostService,
		APIBase:         NewAPIBase(logFactory("LostPostAPI")),
	}
}

func (a *LostPostAPI) Search(w http.ResponseWriter, r *http.Request) {
	req := &documents.SearchLostPostsRequest{}
	err := req.FromQuery(r.URL.Query())
	if err != nil {
		a.Error(w, r, err)
		return
	}
	summaries, next, err := a.lostPostService.Search(r.Context(), req.ToDTO())
	if err != nil {
		a.Error(w, r, err)
		return
	}
	rctx := routes.RequestCtx(r)
	docs := documents.MakeLostPostSummaries(rctx, summaries)
	a.JSON(w, r, documents.NewPageResponse(a.PageLink(r, routes.MakeLostPostsLink(rctx)), docs, next))
}

func (a *LostPostAPI) Get(w http.ResponseWriter, r *http.Request) {
	postID, err := a.lostPostID(r)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	detail, err := a.lostPostService.Read(r.Context(), postID)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	w.Header().Set("ETag", detail.GetETag().String())
	a.JSON(w, r, documents.MakeLostPost(routes.RequestCtx(r), detail))
}

// Create makes a post from a JSON document, optionally sent as the content part of a multipart
// request along with images in the files part.
func (a *LostPostAPI) Create(w http.ResponseWriter, r *http.Request) {
	req := &documents.CreateLostPostRequest{}
	uploads, closeUploads, err := documents.BindMultipart(r, req)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	defer closeUploads()
	post, images, err := a.lostPostService.Create(r.Context(), a.MustAuthenticatedMemberID(r), req.ToDTO(uploads))
	if err != nil {
		a.Error(w, r, err)
		return
	}
	a.CreatedResource(w, r, documents.MakeSavedLostPost(routes.RequestCtx(r), post, images))
}

func (a *LostPostAPI) Patch(w http.ResponseWriter, r *http.Request) {
	postID, err := a.lostPostID(r)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	req := &documents.PatchLostPostRequest{}
	uploads, closeUploads, err := documents.BindMultipart(r, req)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	defer closeUploads()
	post, err := a.lostPostService.Update(r.Context(), a.MustAuthenticatedMemberID(r), postID, req.ToDTO(uploads))
	if err != nil {
		a.Error(w, r, err)
		return
	}
	a.UpdatedResource(w, r, documents.MakeSavedLostPost(routes.RequestCtx(r), post, nil))
}

func (a *LostPostAPI) PatchStatus(w http.ResponseWriter, r *http.Request) {
	postID, err := a.lostPostID(r)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	req := &documents.PatchLostPostStatusRequest{}
	err = render.Bind(r, req)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	post, err := a.lostPostService.UpdateStatus(r.Context(), a.MustAuthenticatedMemberID(r), postID, req.Status)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	a.UpdatedResource(w, r, documents.MakeSavedLostPost(routes.RequestCtx(r), post, nil))
}

func (a *LostPostAPI) Delete(w http.ResponseWriter, r *http.Request) {
	postID, err := a.lostPostID(r)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	post, err := a.lostPostService.Delete(r.Context(), a.MustAuthenticatedMemberID(r), postID)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	a.UpdatedResource(w, r, documents.MakeSavedLostPost(routes.RequestCtx(r), post, nil))
}

func (a *LostPostAPI) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := a.lostPostService.ListCategories(r.Context())
	if err != nil {
		a.Error(w, r, err)
		return
	}
	a.JSON(w, r, documents.MakeLostCategories(categories))
}

func (a *LostPostAPI) lostPostID(r *http.Request) (models.LostPostID, error) {
	id, err := a.ResourceID(r, "post_id")
	if err != nil {
		return models.LostPostID{}, err
	}
	return models.LostPostIDFromResourceID(id), nil
}
