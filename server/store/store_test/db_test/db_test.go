package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/app/server_test"
	"github.com/ahachul/ahachul-backend/server/store"
)

// TestResourceAlreadyExistsThrown tests that MakeStandardDBError provides the correct error code when we attempt to
// create a unique resource that already exists
func TestResourceAlreadyExistsThrown(t *testing.T) {
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.Nil(t, err)
	defer cleanup()

	now := models.NewTime(time.Now())

	// First member creation will pass
	err = app.MemberStore.Create(context.Background(), nil, models.NewMember(now, models.ProviderTypeKakao, "12345", "frank@bar.com"))
	require.Nil(t, err)

	// Second member with the same provider identity should fail with ErrCodeAlreadyExists
	err = app.MemberStore.Create(context.Background(), nil, models.NewMember(now, models.ProviderTypeKakao, "12345", "frank@bar.com"))
	require.NotNil(t, err)
	require.NotNil(t, gerror.ToAlreadyExists(err))

	// The same provider user id on another provider is a different member
	err = app.MemberStore.Create(context.Background(), nil, models.NewMember(now, models.ProviderTypeGoogle, "12345", "frank@bar.com"))
	require.Nil(t, err)
}

// TestResourceNotFoundThrown tests that MakeStandardDBError provides the correct error code when we attempt to
// retrieve a resource that doesn't exist.
func TestResourceNotFoundThrown(t *testing.T) {
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.Nil(t, err)
	defer cleanup()

	_, err = app.MemberStore.Read(context.Background(), nil, models.MemberIDFromResourceID(999))
	require.NotNil(t, err)
	require.NotNil(t, gerror.ToNotFound(err))
}

// TestOptimisticLocking tests that an update made with a stale etag is rejected.
func TestOptimisticLocking(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.Nil(t, err)
	defer cleanup()

	member := server_test.CreateMember(t, ctx, app, "first")
	stale, err := app.MemberStore.Read(ctx, nil, member.ID)
	require.Nil(t, err)

	nickname := "second"
	member.Nickname = &nickname
	require.Nil(t, app.MemberStore.Update(ctx, nil, member))

	nickname = "third"
	stale.Nickname = &nickname
	err = app.MemberStore.Update(ctx, nil, stale)
	require.True(t, gerror.IsOptimisticLockFailed(err))
}

// TestTransactionRollback tests that writes made in a failed transaction are not kept.
func TestTransactionRollback(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.Nil(t, err)
	defer cleanup()

	var created *models.Member
	err = app.DB.WithTx(ctx, nil, func(tx *store.Tx) error {
		created = models.NewMember(models.NewTime(time.Now()), models.ProviderTypeApple, "rollback", "")
		err := app.MemberStore.Create(ctx, tx, created)
		require.Nil(t, err)
		return gerror.NewErrInvalidArgument("abort")
	})
	require.True(t, gerror.IsInvalidArgument(err))

	_, err = app.MemberStore.ReadByProviderUser(ctx, nil, models.ProviderTypeApple, "rollback")
	require.True(t, gerror.IsNotFound(err))
}

// TestTransactionHooks tests that commit and rollback hooks run once, only for the outcome of the
// outermost transaction.
func TestTransactionHooks(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.Nil(t, err)
	defer cleanup()

	var committed, rolledBack int
	register := func(tx *store.Tx) {
		tx.OnCommit(func() { committed++ })
		tx.OnRollback(func() { rolledBack++ })
	}

	err = app.DB.WithTx(ctx, nil, func(tx *store.Tx) error {
		// Hooks registered by a nested call wait for the outer transaction
		return app.DB.WithTx(ctx, tx, func(tx *store.Tx) error {
			register(tx)
			require.Equal(t, 0, committed)
			return nil
		})
	})
	require.Nil(t, err)
	require.Equal(t, 1, committed)
	require.Equal(t, 0, rolledBack)

	failure := gerror.NewErrInvalidArgument("failed")
	err = app.DB.WithTx(ctx, nil, func(tx *store.Tx) error {
		err := app.DB.WithTx(ctx, tx, func(tx *store.Tx) error {
			register(tx)
			return nil
		})
		require.Nil(t, err)
		return failure
	})
	require.Equal(t, failure, err)
	require.Equal(t, 1, committed)
	require.Equal(t, 1, rolledBack)
}
