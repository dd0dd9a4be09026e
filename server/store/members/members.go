package members

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/store"
)

func init() {
	_ = models.MutableResource(&models.Member{})
	store.MustDBModel(&models.Member{})
}

type MemberStore struct {
	table *store.ResourceTable
}

func NewStore(db *store.DB, logFactory logger.LogFactory) *MemberStore {
	return &MemberStore{
		table: store.NewResourceTable(db, logFactory, &models.Member{}),
	}
}

// Create a new member.
// Returns store.ErrAlreadyExists if a member with the same provider identity already exists.
func (d *MemberStore) Create(ctx context.Context, txOrNil *store.Tx, member *models.Member) error {
	return d.table.Create(ctx, txOrNil, member)
}

// Read an existing member, looking it up by ID.
// Returns gerror.ErrNotFound if the member does not exist.
func (d *MemberStore) Read(ctx context.Context, txOrNil *store.Tx, id models.MemberID) (*models.Member, error) {
	member := &models.Member{}
	return member, d.table.ReadByID(ctx, txOrNil, id.ResourceID, member)
}

// ReadByProviderUser reads the member that signed up with the specified OAuth provider identity.
// Returns gerror.ErrNotFound if the member does not exist.
func (d *MemberStore) ReadByProviderUser(ctx context.Context, txOrNil *store.Tx, provider models.ProviderType, providerUserID string) (*models.Member, error) {
	member := &models.Member{}
	return member, d.table.ReadWhere(ctx, txOrNil, member, goqu.Ex{
		"member_provider":         provider,
		"member_provider_user_id": providerUserID,
	})
}

// FindOrCreate creates a member if no member with the same provider identity already exists,
// otherwise it reads and returns the existing member.
// Returns the member as it is in the database, and true iff a new member was created.
func (d *MemberStore) FindOrCreate(ctx context.Context, txOrNil *store.Tx, memberData *models.Member) (*models.Member, bool, error) {
	resource, created, err := d.table.FindOrCreate(ctx, txOrNil,
		func(ctx context.Context, tx *store.Tx) (models.Resource, error) {
			return d.ReadByProviderUser(ctx, tx, memberData.Provider, memberData.ProviderUserID)
		},
		func(ctx context.Context, tx *store.Tx) (models.Resource, error) {
			return memberData, d.Create(ctx, tx, memberData)
		},
	)
	if err != nil {
		return nil, false, err
	}
	return resource.(*models.Member), created, nil
}

// Update an existing member with optimistic locking. Overrides all previous values using the supplied model.
// Returns gerror.ErrOptimisticLockFailed if there is an optimistic lock mismatch.
func (d *MemberStore) Update(ctx context.Context, txOrNil *store.Tx, member *models.Member) error {
	return d.table.UpdateByID(ctx, txOrNil, member)
}

// NicknameTaken returns true if a member other than excludeOrNil uses the nickname.
func (d *MemberStore) NicknameTaken(ctx context.Context, txOrNil *store.Tx, nickname string, excludeOrNil *models.MemberID) (bool, error) {
	where := []goqu.Expression{goqu.Ex{"member_nickname": nickname}}
	if excludeOrNil != nil {
		where = append(where, goqu.C("member_id").Neq(*excludeOrNil))
	}
	return d.table.Exists(ctx, txOrNil, where...)
}
