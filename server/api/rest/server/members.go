package server

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/server/api/rest/documents"
	"github.com/ahachul/ahachul-backend/server/api/rest/routes"
	"github.com/ahachul/ahachul-backend/server/services"
)

type MemberAPI struct {
	memberService services.MemberService
	*APIBase
}

func NewMemberAPI(memberService services.MemberService, logFactory logger.LogFactory) *MemberAPI {
	return &MemberAPI{
		memberService: memberService,
		APIBase:       NewAPIBase(logFactory("MemberAPI")),
	}
}

// GetCurrent returns the profile of the authenticated member.
func (a *MemberAPI) GetCurrent(w http.ResponseWriter, r *http.Request) {
	member, err := a.memberService.Read(r.Context(), nil, a.MustAuthenticatedMemberID(r))
	if err != nil {
		a.Error(w, r, err)
		return
	}
	a.GotResource(w, r, documents.MakeMember(routes.RequestCtx(r), member))
}

func (a *MemberAPI) PatchCurrent(w http.ResponseWriter, r *http.Request) {
	req := &documents.PatchMemberRequest{}
	err := render.Bind(r, req)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	member, err := a.memberService.Update(r.Context(), a.MustAuthenticatedMemberID(r), req.ToModel())
	if err != nil {
		a.Error(w, r, err)
		return
	}
	a.UpdatedResource(w, r, documents.MakeMember(routes.RequestCtx(r), member))
}

func (a *MemberAPI) CheckNickname(w http.ResponseWriter, r *http.Request) {
	req := &documents.CheckNicknameRequest{}
	err := render.Bind(r, req)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	available, err := a.memberService.IsNicknameAvailable(r.Context(), a.MustAuthenticatedMemberID(r), req.Nickname)
	if err != nil {
		a.Error(w, r, err)
		return
	}
	a.JSON(w, r, &documents.CheckNicknameResponse{Available: available})
}
