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

type ReportAPI struct {
	reportService services.ReportService
	*APIBase
}

func NewReportAPI(reportService services.ReportService, logFactory logger.LogFactory) *ReportAPI {
	return &ReportAPI{
		reportService: reportService,
		APIBase:       NewAPIBase(logFactory("ReportAPI")),
	}
}

func (a *ReportAPI) ReportCommunityPost(w http.ResponseWriter, r *http.Request) {
	id, err := a.ResourceID(r, "post_id")
	if err != nil {
		a.Error(w, r, err)
		return
	}
	report, err := a.reportService.ReportCommunityPost(r.Context(), a.MustAuthenticatedMemberID(r), models.CommunityPostIDFromResourceID(id))
	if err != nil {
		a.Error(w, r, err)
		return
	}
	a.Created(w, r, report.ID.String(), "", "", report)
}

// ActionOnMember suspends a member whose posts have been reported too often. Admin only.
func (a *ReportAPI) ActionOnMember(w http.ResponseWriter, r *http.Request) {
	req := &documents.ActionOnMemberRequest{}
	err := render.Bind(r, req)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	member, err := a.reportService.ActionOnMember(r.Context(), req.TargetMemberID)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	a.Infof("Member %s suspended by admin %s", member.ID, a.MustAuthenticatedMemberID(r))
	a.UpdatedResource(w, r, documents.MakeMember(routes.RequestCtx(r), member))
}
