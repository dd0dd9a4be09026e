package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/api/rest/documents"
	"github.com/ahachul/ahachul-backend/server/app/server_test"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestLostPostSearchAPI(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()
	app.AppAPIServer.Start()
	defer app.AppAPIServer.Stop(ctx)

	writer := server_test.CreateMember(t, ctx, app, "writer")
	line, _ := server_test.CreateSubwayLine(t, ctx, app, "")
	category := server_test.CreateCategory(t, ctx, app, "Wallet")
	created := map[models.LostPostID]bool{}
	for i := 0; i < 5; i++ {
		post := server_test.CreateLostPost(t, ctx, app, writer.ID, line.ID, category.ID, fmt.Sprintf("Lost wallet %d", i))
		created[post.ID] = true
	}
	client := newTestClient(t, app, "")

	t.Run("FollowNextURL", func(t *testing.T) {
		seen := map[models.LostPostID]bool{}
		next := fmt.Sprintf("%s/v1/lost-posts?lostType=LOST&page_size=2&subwayLineId=%s", app.AppAPIServer.GetServerURL(), line.ID)
		var pages int
		for next != "" {
			res := &page{}
			require.Equal(t, http.StatusOK, client.send(client.newRequest(http.MethodGet, next, nil), res))
			var summaries []*documents.LostPostSummary
			require.NoError(t, json.Unmarshal(res.Results, &summaries))
			for _, summary := range summaries {
				require.False(t, seen[summary.ID], "post %s returned twice", summary.ID)
				seen[summary.ID] = true
				require.Equal(t, "writer", *summary.Writer)
				require.Equal(t, "Wallet", *summary.CategoryName)
			}
			require.Equal(t, res.HasNext, res.NextURL != "")
			next = res.NextURL
			pages++
		}
		require.Equal(t, 3, pages)
		require.Equal(t, created, seen)
	})

	t.Run("KeywordAndCategory", func(t *testing.T) {
		query := url.Values{}
		query.Set("lostType", "LOST")
		query.Set("keyword", "wallet 3")
		query.Set("category", "Wallet")
		res := &page{}
		require.Equal(t, http.StatusOK, client.do(http.MethodGet, "/v1/lost-posts?"+query.Encode(), nil, res))
		var summaries []*documents.LostPostSummary
		require.NoError(t, json.Unmarshal(res.Results, &summaries))
		require.Len(t, summaries, 1)
		require.Equal(t, "Lost wallet 3", summaries[0].Title)
		require.False(t, res.HasNext)
	})

	t.Run("MissingLostType", func(t *testing.T) {
		status, code := client.errorCode(http.MethodGet, "/v1/lost-posts", nil)
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, "InvalidQueryParameter", code)
	})

	t.Run("BadPageToken", func(t *testing.T) {
		status, _ := client.errorCode(http.MethodGet, "/v1/lost-posts?lostType=LOST&page_token=garbage", nil)
		require.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("Categories", func(t *testing.T) {
		var categories []*documents.LostCategory
		require.Equal(t, http.StatusOK, client.do(http.MethodGet, "/v1/lost-categories", nil, &categories))
		require.Len(t, categories, 1)
		require.Equal(t, "Wallet", categories[0].Name)
	})
}

func TestLostPostAPI(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()
	app.AppAPIServer.Start()
	defer app.AppAPIServer.Stop(ctx)

	writer := server_test.CreateMember(t, ctx, app, "writer")
	stranger := server_test.CreateMember(t, ctx, app, "stranger")
	line, _ := server_test.CreateSubwayLine(t, ctx, app, "")
	server_test.CreateCategory(t, ctx, app, "Phone")
	anonymous := newTestClient(t, app, "")
	writerClient := newTestClient(t, app, server_test.AccessToken(t, app, writer.ID))
	strangerClient := newTestClient(t, app, server_test.AccessToken(t, app, stranger.ID))

	categoryName := "Phone"
	create := &documents.CreateLostPostRequest{
		Title:        "Lost my phone",
		Content:      "Black phone left on the seat",
		SubwayLineID: line.ID,
		LostType:     models.LostTypeLost,
		CategoryName: &categoryName,
	}

	t.Run("CreateRequiresLogin", func(t *testing.T) {
		status, code := anonymous.errorCode(http.MethodPost, "/v1/lost-posts", create)
		require.Equal(t, http.StatusUnauthorized, status)
		require.Equal(t, "Unauthorized", code)
	})

	t.Run("CreateValidation", func(t *testing.T) {
		invalid := *create
		invalid.Title = ""
		status, code := writerClient.errorCode(http.MethodPost, "/v1/lost-posts", &invalid)
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, "ValidationFailed", code)
	})

	// Create with an image, sent as a multipart request
	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	content, err := json.Marshal(create)
	require.NoError(t, err)
	require.NoError(t, form.WriteField("content", string(content)))
	part, err := form.CreateFormFile("files", "phone.png")
	require.NoError(t, err)
	_, err = part.Write(pngHeader)
	require.NoError(t, err)
	require.NoError(t, form.Close())
	req, err := http.NewRequest(http.MethodPost, writerClient.baseURL+"/v1/lost-posts", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+writerClient.token)
	saved := &documents.SavedLostPost{}
	require.Equal(t, http.StatusCreated, writerClient.send(req, saved))
	require.Len(t, saved.Images, 1)
	postPath := fmt.Sprintf("/v1/lost-posts/%s", saved.ID)

	t.Run("Get", func(t *testing.T) {
		detail := &documents.LostPost{}
		require.Equal(t, http.StatusOK, anonymous.do(http.MethodGet, postPath, nil, detail))
		require.Equal(t, "Lost my phone", detail.Title)
		require.Equal(t, "Phone", *detail.CategoryName)
		require.Equal(t, "writer", *detail.Writer)
		require.Len(t, detail.Images, 1)
		require.NotNil(t, detail.RecommendPosts)
	})

	t.Run("GetImage", func(t *testing.T) {
		res, err := http.Get(anonymous.baseURL + saved.Images[0].ImageURL)
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)
		require.Equal(t, "image/png", res.Header.Get("Content-Type"))
	})

	t.Run("GetMissing", func(t *testing.T) {
		status, code := anonymous.errorCode(http.MethodGet, "/v1/lost-posts/987654", nil)
		require.Equal(t, http.StatusNotFound, status)
		require.Equal(t, "PostNotFound", code)
		status, _ = anonymous.errorCode(http.MethodGet, "/v1/lost-posts/abc", nil)
		require.Equal(t, http.StatusNotFound, status)
	})

	t.Run("PatchByStranger", func(t *testing.T) {
		title := "Mine now"
		status, _ := strangerClient.errorCode(http.MethodPatch, postPath, &documents.PatchLostPostRequest{Title: &title})
		require.Equal(t, http.StatusForbidden, status)
	})

	t.Run("PatchStatus", func(t *testing.T) {
		updated := &documents.SavedLostPost{}
		status := writerClient.do(http.MethodPatch, postPath+"/status", &documents.PatchLostPostStatusRequest{Status: models.LostStatusComplete}, updated)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, models.LostStatusComplete, updated.Status)
	})

	t.Run("Delete", func(t *testing.T) {
		require.Equal(t, http.StatusOK, writerClient.do(http.MethodDelete, postPath, nil, nil))
		status, _ := anonymous.errorCode(http.MethodGet, postPath, nil)
		require.Equal(t, http.StatusNotFound, status)
	})
}
