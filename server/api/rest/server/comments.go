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

type CommentAPI struct {
	commentService services.CommentService
	*APIBase
}

func NewCommentAPI(commentService services.CommentService, logFactory logger.LogFactory) *CommentAPI {
	return &CommentAPI{
		commentService: commentService,
		APIBase:        NewAPIBase(logFactory("CommentAPI")),
	}
}

func (a *CommentAPI) List(w http.ResponseWriter, r *http.Request) {
	req := &documents.ListCommentsRequest{}
	err := req.FromQuery(r.URL.Query())
	if err != nil {
		a.Error(w, r, err)
		return
	}
	comments, err := a.commentService.List(r.Context(), req.PostType, req.PostID)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	a.JSON(w, r, documents.MakeComments(routes.RequestCtx(r), comments))
}

func (a *CommentAPI) Create(w http.ResponseWriter, r *http.Request) {
	req := &documents.CreateCommentRequest{}
	err := render.Bind(r, req)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	comment, err := a.commentService.Create(r.Context(), a.MustAuthenticatedMemberID(r), req.ToDTO())
	if err != nil {
		a.Error(w, r, err)
		return
	}
	doc := documents.MakeComment(routes.RequestCtx(r), comment)
	a.Created(w, r, comment.ID.String(), doc.GetLink(), comment.ETag, doc)
}

func (a *CommentAPI) Patch(w http.ResponseWriter, r *http.Request) {
	commentID, err := a.commentID(r)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	req := &documents.PatchCommentRequest{}
	err = render.Bind(r, req)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	comment, err := a.commentService.Update(r.Context(), a.MustAuthenticatedMemberID(r), commentID, req.Content)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	w.Header().Set("ETag", comment.ETag.String())
	a.UpdatedResource(w, r, documents.MakeComment(routes.RequestCtx(r), comment))
}

func (a *CommentAPI) Delete(w http.ResponseWriter, r *http.Request) {
	commentID, err := a.commentID(r)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	comment, err := a.commentService.Delete(r.Context(), a.MustAuthenticatedMemberID(r), commentID)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	a.UpdatedResource(w, r, documents.MakeComment(routes.RequestCtx(r), comment))
}

func (a *CommentAPI) commentID(r *http.Request) (models.CommentID, error) {
	id, err := a.ResourceID(r, "comment_id")
	if err != nil {
		return models.CommentID{}, err
	}
	return models.CommentIDFromResourceID(id), nil
}
