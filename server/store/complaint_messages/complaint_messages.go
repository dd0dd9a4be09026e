package complaint_messages

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/store"
)

func init() {
	_ = models.KeysetResource(&models.ComplaintMessage{})
	store.MustDBModel(&models.ComplaintMessage{})
}

type ComplaintMessageStore struct {
	table *store.ResourceTable
}

func NewStore(db *store.DB, logFactory logger.LogFactory) *ComplaintMessageStore {
	return &ComplaintMessageStore{
		table: store.NewResourceTable(db, logFactory, &models.ComplaintMessage{}),
	}
}

func (d *ComplaintMessageStore) Create(ctx context.Context, txOrNil *store.Tx, message *models.ComplaintMessage) error {
	return d.table.Create(ctx, txOrNil, message)
}

// ListByMember lists one page of the messages sent by a member, newest first.
// Returns the token for the next page, or nil if there is none.
func (d *ComplaintMessageStore) ListByMember(ctx context.Context, txOrNil *store.Tx, memberID models.MemberID, pagination models.Pagination) ([]*models.ComplaintMessage, *models.PageToken, error) {
	ds := d.table.Dialect().From(d.table.TableName()).
		Select(&models.ComplaintMessage{}).
		Where(goqu.Ex{"complaint_message_member_id": memberID})
	var messages []*models.ComplaintMessage
	token, err := d.table.ListKeyset(ctx, txOrNil, &messages, ds, models.SortKeyCreatedAt, pagination)
	if err != nil {
		return nil, nil, err
	}
	return messages, token, nil
}
