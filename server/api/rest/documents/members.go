package documents

import (
	"net/http"
	"strings"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/api/rest/routes"
)

type Member struct {
	baseResourceDocument
	MemberID models.MemberID `json:"member_id"`
	Nickname *string         `json:"nickname"`
	Email    string          `json:"email"`
	Gender   *models.Gender  `json:"gender"`
	AgeRange *string         `json:"age_range"`
}

func MakeMember(rctx routes.RequestContext, member *models.Member) *Member {
	return &Member{
		baseResourceDocument: baseResourceDocument{URL: routes.MakeMembersLink(rctx)},
		MemberID:             member.ID,
		Nickname:             member.Nickname,
		Email:                member.Email,
		Gender:               member.Gender,
		AgeRange:             member.AgeRange,
	}
}

// PatchMemberRequest changes the profile of the current member. Omitted fields are left unchanged.
type PatchMemberRequest struct {
	Nickname *string        `json:"nickname" validate:"omitempty,min=1,max=10"`
	Gender   *models.Gender `json:"gender" validate:"omitempty,oneof=MALE FEMALE"`
	AgeRange *string        `json:"age_range" validate:"omitempty,max=10"`
}

func (d *PatchMemberRequest) Bind(r *http.Request) error {
	if d.Nickname == nil && d.Gender == nil && d.AgeRange == nil {
		return gerror.NewErrValidationFailed("At least one of nickname, gender and age_range must be specified")
	}
	if d.Nickname != nil {
		trimmed := strings.TrimSpace(*d.Nickname)
		d.Nickname = &trimmed
	}
	return Validate(d)
}

func (d *PatchMemberRequest) ToModel() *models.MemberUpdate {
	return &models.MemberUpdate{
		Nickname: d.Nickname,
		Gender:   d.Gender,
		AgeRange: d.AgeRange,
	}
}

type CheckNicknameRequest struct {
	Nickname string `json:"nickname" validate:"required,max=10"`
}

func (d *CheckNicknameRequest) Bind(r *http.Request) error {
	d.Nickname = strings.TrimSpace(d.Nickname)
	return Validate(d)
}

type CheckNicknameResponse struct {
	Available bool `json:"available"`
}
