package report

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/services"
	"github.com/ahachul/ahachul-backend/server/store"
)

type ReportService struct {
	db                   *store.DB
	reportStore          store.ReportStore
	communityPostStore   store.CommunityPostStore
	communityPostService services.CommunityPostService
	memberService        services.MemberService
	clk                  clock.Clock
	logger.Log
}

func NewReportService(
	db *store.DB,
	reportStore store.ReportStore,
	communityPostStore store.CommunityPostStore,
	communityPostService services.CommunityPostService,
	memberService services.MemberService,
	clk clock.Clock,
	logFactory logger.LogFactory,
) *ReportService {
	return &ReportService{
		db:                   db,
		reportStore:          reportStore,
		communityPostStore:   communityPostStore,
		communityPostService: communityPostService,
		memberService:        memberService,
		clk:                  clk,
		Log:                  logFactory("ReportService"),
	}
}

func (s *ReportService) ReportCommunityPost(ctx context.Context, me models.MemberID, postID models.CommunityPostID) (*models.Report, error) {
	var report *models.Report
	err := s.db.WithTx(ctx, nil, func(tx *store.Tx) error {
		post, err := s.communityPostStore.Read(ctx, tx, postID)
		if err != nil {
			if gerror.IsNotFound(err) {
				return gerror.NewErrPostNotFound().Wrap(err)
			}
			return err
		}
		if post.Status == models.CommunityPostStatusDeleted {
			return gerror.NewErrPostNotFound().IDetail("community_post_id", postID)
		}
		if post.MemberID == me {
			return gerror.NewErrInvalidReportRequest()
		}
		exists, err := s.reportStore.Exists(ctx, tx, me, postID)
		if err != nil {
			return errors.Wrap(err, "error checking for previous report")
		}
		if exists {
			return gerror.NewErrDuplicateReportRequest()
		}
		report = models.NewReport(models.NewTime(s.clk.Now()), me, post.MemberID, post.ID)
		err = s.reportStore.Create(ctx, tx, report)
		if err != nil {
			if gerror.IsAlreadyExists(err) {
				return gerror.NewErrDuplicateReportRequest().Wrap(err)
			}
			return err
		}
		count, err := s.reportStore.CountByPost(ctx, tx, post.ID)
		if err != nil {
			return errors.Wrap(err, "error counting reports")
		}
		if count >= models.MinReportCount {
			return s.communityPostService.Block(ctx, tx, post.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Infof("Member %s reported community post %s", me, postID)
	return report, nil
}

func (s *ReportService) ActionOnMember(ctx context.Context, targetMemberID models.MemberID) (*models.Member, error) {
	var member *models.Member
	err := s.db.WithTx(ctx, nil, func(tx *store.Tx) error {
		target, err := s.memberService.Read(ctx, tx, targetMemberID)
		if err != nil {
			return err
		}
		count, err := s.reportStore.CountByTargetMember(ctx, tx, targetMemberID)
		if err != nil {
			return errors.Wrap(err, "error counting reports")
		}
		if count < models.MinReportCount {
			return gerror.NewErrInvalidConditionToBlockMember().IDetail("report_count", count)
		}
		if target.IsSuspended() {
			return gerror.NewErrInvalidReportAction()
		}
		member, err = s.memberService.Suspend(ctx, tx, targetMemberID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}
