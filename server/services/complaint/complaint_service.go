package complaint

import (
	"context"
	"strings"

	"github.com/benbjohnson/clock"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/dto"
	"github.com/ahachul/ahachul-backend/server/services"
	"github.com/ahachul/ahachul-backend/server/store"
)

type ComplaintService struct {
	db                    *store.DB
	complaintMessageStore store.ComplaintMessageStore
	subwayService         services.SubwayService
	clk                   clock.Clock
	logger.Log
}

func NewComplaintService(
	db *store.DB,
	complaintMessageStore store.ComplaintMessageStore,
	subwayService services.SubwayService,
	clk clock.Clock,
	logFactory logger.LogFactory,
) *ComplaintService {
	return &ComplaintService{
		db:                    db,
		complaintMessageStore: complaintMessageStore,
		subwayService:         subwayService,
		clk:                   clk,
		Log:                   logFactory("ComplaintService"),
	}
}

func (s *ComplaintService) Send(ctx context.Context, me models.MemberID, send *dto.SendComplaint) (*models.ComplaintMessage, error) {
	var message *models.ComplaintMessage
	err := s.db.WithTx(ctx, nil, func(tx *store.Tx) error {
		line, err := s.subwayService.ReadLine(ctx, tx, send.SubwayLineID)
		if err != nil {
			return err
		}
		message = models.NewComplaintMessage(
			models.NewTime(s.clk.Now()),
			me,
			send.ComplaintType,
			strings.TrimSpace(send.ShortContentType),
			strings.TrimSpace(send.Content),
			strings.TrimSpace(send.PhoneNumber),
			strings.TrimSpace(send.TrainNo),
			send.Location,
			line.ID)
		err = message.Validate()
		if err != nil {
			return gerror.NewErrValidationFailed(err.Error())
		}
		return s.complaintMessageStore.Create(ctx, tx, message)
	})
	if err != nil {
		return nil, err
	}
	s.Infof("Member %s sent %s complaint about train %s", me, message.ComplaintType, message.TrainNo)
	return message, nil
}

func (s *ComplaintService) ListMine(ctx context.Context, me models.MemberID, pagination models.Pagination) ([]*models.ComplaintMessage, *models.PageToken, error) {
	err := pagination.Validate()
	if err != nil {
		return nil, nil, err
	}
	return s.complaintMessageStore.ListByMember(ctx, nil, me, pagination)
}
