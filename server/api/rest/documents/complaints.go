package documents

import (
	"net/http"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/dto"
)

type SendComplaintRequest struct {
	ComplaintType    models.ComplaintType `json:"complaint_type" validate:"required"`
	ShortContentType string               `json:"short_content_type"`
	Content          string               `json:"content" validate:"max=1000"`
	PhoneNumber      string               `json:"phone_number" validate:"max=20"`
	TrainNo          string               `json:"train_no" validate:"required"`
	Location         int                  `json:"location" validate:"gte=0"`
	SubwayLineID     models.SubwayLineID  `json:"subway_line_id"`
}

func (d *SendComplaintRequest) Bind(r *http.Request) error {
	if !d.SubwayLineID.Valid() {
		return gerror.NewErrValidationFailed("subway_line_id is required").EDetail("field", "subway_line_id")
	}
	return Validate(d)
}

func (d *SendComplaintRequest) ToDTO() *dto.SendComplaint {
	return &dto.SendComplaint{
		ComplaintType:    d.ComplaintType,
		ShortContentType: d.ShortContentType,
		Content:          d.Content,
		PhoneNumber:      d.PhoneNumber,
		TrainNo:          d.TrainNo,
		Location:         d.Location,
		SubwayLineID:     d.SubwayLineID,
	}
}

type ActionOnMemberRequest struct {
	TargetMemberID models.MemberID `json:"target_member_id"`
}

func (d *ActionOnMemberRequest) Bind(r *http.Request) error {
	if !d.TargetMemberID.Valid() {
		return gerror.NewErrValidationFailed("target_member_id is required").EDetail("field", "target_member_id")
	}
	return nil
}
