package server

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/server/api/rest/documents"
	"github.com/ahachul/ahachul-backend/server/api/rest/routes"
	"github.com/ahachul/ahachul-backend/server/services"
)

type ComplaintAPI struct {
	complaintService services.ComplaintService
	*APIBase
}

func NewComplaintAPI(complaintService services.ComplaintService, logFactory logger.LogFactory) *ComplaintAPI {
	return &ComplaintAPI{
		complaintService: complaintService,
		APIBase:          NewAPIBase(logFactory("ComplaintAPI")),
	}
}

func (a *ComplaintAPI) Send(w http.ResponseWriter, r *http.Request) {
	req := &documents.SendComplaintRequest{}
	err := render.Bind(r, req)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	message, err := a.complaintService.Send(r.Context(), a.MustAuthenticatedMemberID(r), req.ToDTO())
	if err != nil {
		a.Error(w, r, err)
		return
	}
	a.Created(w, r, message.ID.String(), "", "", message)
}

func (a *ComplaintAPI) ListMine(w http.ResponseWriter, r *http.Request) {
	req := &documents.PageRequest{}
	err := req.FromQuery(r.URL.Query())
	if err != nil {
		a.Error(w, r, err)
		return
	}
	messages, next, err := a.complaintService.ListMine(r.Context(), a.MustAuthenticatedMemberID(r), req.Pagination)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	link := a.PageLink(r, routes.MakeComplaintMessagesLink(routes.RequestCtx(r)))
	a.JSON(w, r, documents.NewPageResponse(link, messages, next))
}
