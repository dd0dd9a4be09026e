package server_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ahachul/ahachul-backend/common/models"
)

// CreateMember creates a new active member signed up with Kakao, for use during a test.
// If nickname is blank the member is left without one.
func CreateMember(t *testing.T, ctx context.Context, app *TestServer, nickname string) *models.Member {
	providerUserID := uuid.New().String()
	member := models.NewMember(models.NewTime(time.Now()), models.ProviderTypeKakao, providerUserID, fmt.Sprintf("%s@example.com", providerUserID))
	if nickname != "" {
		member.Nickname = &nickname
	}
	err := app.MemberStore.Create(ctx, nil, member)
	require.NoError(t, err)
	return member
}

// AccessToken issues an access token for the member, to be sent as a bearer token.
func AccessToken(t *testing.T, app *TestServer, memberID models.MemberID) string {
	token, _, err := app.CredentialService.IssueAccessToken(memberID)
	require.NoError(t, err)
	return token
}

// CreateSubwayLine creates a subway line with a single station, for use during a test.
// If name is blank a unique name is generated.
func CreateSubwayLine(t *testing.T, ctx context.Context, app *TestServer, name string) (*models.SubwayLine, *models.Station) {
	if name == "" {
		name = fmt.Sprintf("line-%s", uuid.New().String()[:8])
	}
	now := models.NewTime(time.Now())
	line := models.NewSubwayLine(now, name, "02-6110-1234", "METROPOLITAN")
	err := app.SubwayLineStore.Create(ctx, nil, line)
	require.NoError(t, err)

	station := models.NewStation(now, line.ID, fmt.Sprintf("%s station", name), 201)
	err = app.StationStore.Create(ctx, nil, station)
	require.NoError(t, err)
	return line, station
}

// CreateCategory finds or creates a lost item category, for use during a test.
func CreateCategory(t *testing.T, ctx context.Context, app *TestServer, name string) *models.Category {
	category, _, err := app.CategoryStore.FindOrCreate(ctx, nil, models.NewCategory(models.NewTime(time.Now()), name))
	require.NoError(t, err)
	return category
}

// CreateLostPost creates a lost post written by the member, for use during a test.
func CreateLostPost(
	t *testing.T,
	ctx context.Context,
	app *TestServer,
	memberID models.MemberID,
	lineID models.SubwayLineID,
	categoryID models.CategoryID,
	title string,
) *models.LostPost {
	if title == "" {
		title = "Lost wallet"
	}
	post := models.NewLostPost(
		models.NewTime(time.Now()),
		memberID,
		&lineID,
		&categoryID,
		title,
		"Black leather wallet",
		models.LostTypeLost,
		"",
		"",
	)
	err := app.LostPostStore.Create(ctx, nil, post)
	require.NoError(t, err)
	return post
}

// CreateCommunityPost creates a free talk post written by the member, for use during a test.
func CreateCommunityPost(
	t *testing.T,
	ctx context.Context,
	app *TestServer,
	memberID models.MemberID,
	lineID models.SubwayLineID,
	title string,
) *models.CommunityPost {
	if title == "" {
		title = "Crowded this morning"
	}
	post := models.NewCommunityPost(
		models.NewTime(time.Now()),
		memberID,
		lineID,
		title,
		"Line was packed",
		models.CommunityCategoryFree,
	)
	err := app.CommunityPostStore.Create(ctx, nil, post)
	require.NoError(t, err)
	return post
}
