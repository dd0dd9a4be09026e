package lost_posts_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/app/server_test"
)

func createImported(
	t *testing.T,
	ctx context.Context,
	app *server_test.TestServer,
	received time.Time,
	lineID models.SubwayLineID,
	categoryID models.CategoryID,
	title string,
) *models.LostPost {
	post := models.NewImportedLostPost(
		models.NewTime(time.Now()),
		models.NewTime(received),
		&lineID,
		&categoryID,
		title,
		"Found on the platform",
		"Seoul station lost and found",
		"02-1234-5678",
		fmt.Sprintf("https://www.lost112.go.kr/find/%s", title),
		"",
	)
	require.NoError(t, app.LostPostStore.Create(ctx, nil, post))
	return post
}

func TestLostPostSearchPagination(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()

	line, _ := server_test.CreateSubwayLine(t, ctx, app, "")
	category := server_test.CreateCategory(t, ctx, app, "wallet")
	member := server_test.CreateMember(t, ctx, app, "writer")

	base := time.Date(2023, 6, 1, 9, 0, 0, 0, time.UTC)
	// Posts 2 and 3 share a received date, so the id breaks the tie
	p1 := createImported(t, ctx, app, base.Add(1*time.Hour), line.ID, category.ID, "p1")
	p2 := createImported(t, ctx, app, base.Add(2*time.Hour), line.ID, category.ID, "p2")
	p3 := createImported(t, ctx, app, base.Add(2*time.Hour), line.ID, category.ID, "p3")
	p4 := createImported(t, ctx, app, base.Add(3*time.Hour), line.ID, category.ID, "p4")
	p5 := createImported(t, ctx, app, base.Add(4*time.Hour), line.ID, category.ID, "p5")
	// Lost type posts and deleted posts must never show up in an acquire search
	server_test.CreateLostPost(t, ctx, app, member.ID, line.ID, category.ID, "lost post")
	deleted := createImported(t, ctx, app, base.Add(5*time.Hour), line.ID, category.ID, "deleted")
	deleted.Type = models.LostPostTypeDeleted
	require.NoError(t, app.LostPostStore.Update(ctx, nil, deleted))

	expected := []models.LostPostID{p5.ID, p4.ID, p3.ID, p2.ID, p1.ID}

	search := &models.LostPostSearch{
		LostType:   models.LostTypeAcquire,
		Pagination: models.NewPagination(2, nil),
	}
	var seen []models.LostPostID
	pages := 0
	for {
		posts, token, err := app.LostPostStore.Search(ctx, nil, search)
		require.NoError(t, err)
		pages++
		for _, post := range posts {
			seen = append(seen, post.ID)
		}
		if token == nil {
			break
		}
		require.Len(t, posts, 2)
		// The token must survive a round trip through its opaque form
		search.Pagination.PageToken, err = models.DecodePageToken(token.Encode())
		require.NoError(t, err)
		require.Less(t, pages, 10, "pagination did not terminate")
	}
	require.Equal(t, expected, seen)
	require.Equal(t, 3, pages)

	t.Run("ExactMultipleOfPageSize", func(t *testing.T) {
		search := &models.LostPostSearch{
			LostType:   models.LostTypeAcquire,
			Pagination: models.NewPagination(5, nil),
		}
		posts, token, err := app.LostPostStore.Search(ctx, nil, search)
		require.NoError(t, err)
		require.Len(t, posts, 5)
		require.Nil(t, token)
	})

	t.Run("TokenForDeletedRow", func(t *testing.T) {
		search := &models.LostPostSearch{
			LostType:   models.LostTypeAcquire,
			Pagination: models.NewPagination(2, nil),
		}
		posts, token, err := app.LostPostStore.Search(ctx, nil, search)
		require.NoError(t, err)
		require.Equal(t, p4.ID, posts[1].ID)
		require.NotNil(t, token)

		// Delete the row the token points at; the next page carries on after where it was
		removed, err := app.LostPostStore.Read(ctx, nil, p4.ID)
		require.NoError(t, err)
		removed.Type = models.LostPostTypeDeleted
		require.NoError(t, app.LostPostStore.Update(ctx, nil, removed))
		defer func() {
			removed.Type = models.LostPostTypeCreated
			require.NoError(t, app.LostPostStore.Update(ctx, nil, removed))
		}()

		search.Pagination.PageToken = token
		posts, _, err = app.LostPostStore.Search(ctx, nil, search)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		require.Equal(t, p3.ID, posts[0].ID)
		require.Equal(t, p2.ID, posts[1].ID)
	})

	t.Run("LostTypeOrdersByCreatedAt", func(t *testing.T) {
		search := &models.LostPostSearch{
			LostType:   models.LostTypeLost,
			Pagination: models.NewPagination(10, nil),
		}
		posts, token, err := app.LostPostStore.Search(ctx, nil, search)
		require.NoError(t, err)
		require.Nil(t, token)
		require.Len(t, posts, 1)
		require.Equal(t, "lost post", posts[0].Title)
	})

	t.Run("InvalidPageSize", func(t *testing.T) {
		search := &models.LostPostSearch{
			LostType:   models.LostTypeAcquire,
			Pagination: models.NewPagination(0, nil),
		}
		_, _, err := app.LostPostStore.Search(ctx, nil, search)
		require.Error(t, err)
	})
}

func TestLostPostSearchFilters(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()

	line1, _ := server_test.CreateSubwayLine(t, ctx, app, "")
	line2, _ := server_test.CreateSubwayLine(t, ctx, app, "")
	wallet := server_test.CreateCategory(t, ctx, app, "wallet")
	phone := server_test.CreateCategory(t, ctx, app, "phone")

	now := time.Now()
	createImported(t, ctx, app, now, line1.ID, wallet.ID, "brown wallet")
	createImported(t, ctx, app, now, line1.ID, phone.ID, "black phone")
	createImported(t, ctx, app, now, line2.ID, wallet.ID, "red wallet")

	search := func(s *models.LostPostSearch) []string {
		s.LostType = models.LostTypeAcquire
		s.Pagination = models.NewPagination(10, nil)
		posts, _, err := app.LostPostStore.Search(ctx, nil, s)
		require.NoError(t, err)
		var titles []string
		for _, post := range posts {
			titles = append(titles, post.Title)
		}
		return titles
	}

	require.ElementsMatch(t, []string{"brown wallet", "black phone"}, search(&models.LostPostSearch{SubwayLineID: &line1.ID}))
	require.ElementsMatch(t, []string{"brown wallet", "red wallet"}, search(&models.LostPostSearch{CategoryID: &wallet.ID}))
	require.ElementsMatch(t, []string{"black phone"}, search(&models.LostPostSearch{Keyword: "phone"}))
	require.Empty(t, search(&models.LostPostSearch{SubwayLineID: &line2.ID, CategoryID: &phone.ID}))

	t.Run("WildcardsMatchLiterally", func(t *testing.T) {
		require.Empty(t, search(&models.LostPostSearch{Keyword: "%"}))
		require.Empty(t, search(&models.LostPostSearch{Keyword: "_"}))
		require.Empty(t, search(&models.LostPostSearch{Keyword: `\`}))

		createImported(t, ctx, app, now, line2.ID, phone.ID, "100% charged")
		createImported(t, ctx, app, now, line2.ID, phone.ID, "phone_case")
		require.ElementsMatch(t, []string{"100% charged"}, search(&models.LostPostSearch{Keyword: "0%"}))
		require.ElementsMatch(t, []string{"phone_case"}, search(&models.LostPostSearch{Keyword: "_"}))
		require.ElementsMatch(t, []string{"black phone", "phone_case"}, search(&models.LostPostSearch{Keyword: "phone"}))
	})
}

func TestLostPostListRandom(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()

	line, _ := server_test.CreateSubwayLine(t, ctx, app, "")
	other, _ := server_test.CreateSubwayLine(t, ctx, app, "")
	wallet := server_test.CreateCategory(t, ctx, app, "wallet")
	phone := server_test.CreateCategory(t, ctx, app, "phone")

	now := time.Now()
	self := createImported(t, ctx, app, now, line.ID, wallet.ID, "self")
	sameCategory := createImported(t, ctx, app, now, line.ID, wallet.ID, "same")
	otherCategory := createImported(t, ctx, app, now, line.ID, phone.ID, "different")
	createImported(t, ctx, app, now, other.ID, wallet.ID, "other line")

	posts, err := app.LostPostStore.ListRandom(ctx, nil, self.ID, line.ID, wallet.ID, true, 5)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, sameCategory.ID, posts[0].ID)

	posts, err = app.LostPostStore.ListRandom(ctx, nil, self.ID, line.ID, wallet.ID, false, 5)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, otherCategory.ID, posts[0].ID)

	posts, err = app.LostPostStore.ListRandom(ctx, nil, self.ID, line.ID, wallet.ID, true, 0)
	require.NoError(t, err)
	require.Empty(t, posts)
}

func TestLostPostListExistingPageURLs(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()

	line, _ := server_test.CreateSubwayLine(t, ctx, app, "")
	category := server_test.CreateCategory(t, ctx, app, "wallet")
	post := createImported(t, ctx, app, time.Now(), line.ID, category.ID, "known")

	existing, err := app.LostPostStore.ListExistingPageURLs(ctx, nil, []string{post.PageURL, "https://www.lost112.go.kr/find/unknown"})
	require.NoError(t, err)
	require.Equal(t, []string{post.PageURL}, existing)

	existing, err = app.LostPostStore.ListExistingPageURLs(ctx, nil, nil)
	require.NoError(t, err)
	require.Empty(t, existing)
}
