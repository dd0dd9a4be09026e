package reports

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/store"
)

func init() {
	store.MustDBModel(&models.Report{})
}

type ReportStore struct {
	table *store.ResourceTable
}

func NewStore(db *store.DB, logFactory logger.LogFactory) *ReportStore {
	return &ReportStore{
		table: store.NewResourceTable(db, logFactory, &models.Report{}),
	}
}

// Create a new report.
// Returns gerror.ErrAlreadyExists if the member has already reported the post.
func (d *ReportStore) Create(ctx context.Context, txOrNil *store.Tx, report *models.Report) error {
	return d.table.Create(ctx, txOrNil, report)
}

func (d *ReportStore) Exists(ctx context.Context, txOrNil *store.Tx, source models.MemberID, postID models.CommunityPostID) (bool, error) {
	return d.table.Exists(ctx, txOrNil, goqu.Ex{
		"report_source_member_id": source,
		"report_target_post_id":   postID,
	})
}

func (d *ReportStore) CountByPost(ctx context.Context, txOrNil *store.Tx, postID models.CommunityPostID) (int, error) {
	return d.table.Count(ctx, txOrNil, goqu.Ex{"report_target_post_id": postID})
}

func (d *ReportStore) CountByTargetMember(ctx context.Context, txOrNil *store.Tx, target models.MemberID) (int, error) {
	return d.table.Count(ctx, txOrNil, goqu.Ex{"report_target_member_id": target})
}
