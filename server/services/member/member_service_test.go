package member_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/app/server_test"
)

func TestMemberUpdate(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()

	member := server_test.CreateMember(t, ctx, app, "")
	server_test.CreateMember(t, ctx, app, "taken")
	require.True(t, member.IsNeedAdditionalUserInfo())

	nickname := " rider "
	gender := models.GenderFemale
	ageRange := "20"
	updated, err := app.MemberService.Update(ctx, member.ID, &models.MemberUpdate{
		Nickname: &nickname,
		Gender:   &gender,
		AgeRange: &ageRange,
	})
	require.NoError(t, err)
	require.Equal(t, "rider", updated.GetNickname())
	require.False(t, updated.IsNeedAdditionalUserInfo())

	t.Run("KeepOwnNickname", func(t *testing.T) {
		same := "rider"
		_, err := app.MemberService.Update(ctx, member.ID, &models.MemberUpdate{Nickname: &same})
		require.NoError(t, err)
	})

	t.Run("NicknameTaken", func(t *testing.T) {
		taken := "taken"
		_, err := app.MemberService.Update(ctx, member.ID, &models.MemberUpdate{Nickname: &taken})
		require.True(t, gerror.IsAlreadyExists(err))
	})

	t.Run("NicknameTooLong", func(t *testing.T) {
		long := "지하철타는사람입니다요"
		_, err := app.MemberService.Update(ctx, member.ID, &models.MemberUpdate{Nickname: &long})
		require.True(t, gerror.IsValidationFailed(err))
	})

	t.Run("NicknameBlank", func(t *testing.T) {
		blank := "  "
		_, err := app.MemberService.Update(ctx, member.ID, &models.MemberUpdate{Nickname: &blank})
		require.True(t, gerror.IsValidationFailed(err))
	})

	t.Run("UnknownGender", func(t *testing.T) {
		other := models.Gender("OTHER")
		_, err := app.MemberService.Update(ctx, member.ID, &models.MemberUpdate{Gender: &other})
		require.True(t, gerror.IsValidationFailed(err))
	})
}

func TestMemberNicknameAvailable(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()

	me := server_test.CreateMember(t, ctx, app, "mine")
	server_test.CreateMember(t, ctx, app, "theirs")

	for nickname, expected := range map[string]bool{
		"mine":   true,
		"theirs": false,
		"free":   true,
		"   ":    false,
	} {
		available, err := app.MemberService.IsNicknameAvailable(ctx, me.ID, nickname)
		require.NoError(t, err)
		require.Equal(t, expected, available, "nickname %q", nickname)
	}
}

func TestMemberSuspend(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()

	member := server_test.CreateMember(t, ctx, app, "rider")
	suspended, err := app.MemberService.Suspend(ctx, nil, member.ID)
	require.NoError(t, err)
	require.True(t, suspended.IsSuspended())

	// Suspending again is a no-op
	again, err := app.MemberService.Suspend(ctx, nil, member.ID)
	require.NoError(t, err)
	require.Equal(t, suspended.ETag, again.ETag)
}
