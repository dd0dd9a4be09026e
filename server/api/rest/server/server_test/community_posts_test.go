package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/api/rest/documents"
	"github.com/ahachul/ahachul-backend/server/api/rest/middleware"
	"github.com/ahachul/ahachul-backend/server/app/server_test"
)

func TestCommunityPostAPI(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()
	app.AppAPIServer.Start()
	defer app.AppAPIServer.Stop(ctx)

	writer := server_test.CreateMember(t, ctx, app, "writer")
	reader := server_test.CreateMember(t, ctx, app, "reader")
	line, _ := server_test.CreateSubwayLine(t, ctx, app, "")
	anonymous := newTestClient(t, app, "")
	writerClient := newTestClient(t, app, server_test.AccessToken(t, app, writer.ID))
	readerClient := newTestClient(t, app, server_test.AccessToken(t, app, reader.ID))

	post := &documents.CommunityPost{}
	status := writerClient.do(http.MethodPost, "/v1/community-posts", &documents.CreateCommunityPostRequest{
		Title:        "Which car is the coolest?",
		Content:      "Asking for a friend",
		CategoryType: models.CommunityCategoryInsight,
		SubwayLineID: line.ID,
	}, post)
	require.Equal(t, http.StatusCreated, status)
	postPath := fmt.Sprintf("/v1/community-posts/%s", post.ID)

	t.Run("UnknownLine", func(t *testing.T) {
		status, code := writerClient.errorCode(http.MethodPost, "/v1/community-posts", &documents.CreateCommunityPostRequest{
			Title:        "Lost in the network",
			Content:      "Which line is this?",
			CategoryType: models.CommunityCategoryFree,
			SubwayLineID: models.SubwayLineIDFromResourceID(line.ID.ResourceID + 1000),
		})
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, "InvalidSubwayLine", code)
	})

	t.Run("Search", func(t *testing.T) {
		res := &page{}
		require.Equal(t, http.StatusOK, anonymous.do(http.MethodGet, "/v1/community-posts?categoryType=insight&content=coolest", nil, res))
		var summaries []*documents.CommunityPostSummary
		require.NoError(t, json.Unmarshal(res.Results, &summaries))
		require.Len(t, summaries, 1)
		require.Equal(t, "writer", *summaries[0].Writer)

		status, _ := anonymous.errorCode(http.MethodGet, "/v1/community-posts?categoryType=GOSSIP", nil)
		require.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("GetCountsViews", func(t *testing.T) {
		detail := &documents.CommunityPost{}
		require.Equal(t, http.StatusOK, anonymous.do(http.MethodGet, postPath, nil, detail))
		require.Equal(t, int64(1), detail.Views)
		require.Equal(t, "writer", *detail.Writer)
	})

	t.Run("Comments", func(t *testing.T) {
		comment := &documents.Comment{}
		status := readerClient.do(http.MethodPost, "/v1/comments", &documents.CreateCommentRequest{
			PostType: models.PostTypeCommunity,
			PostID:   post.ID.ResourceID,
			Content:  "Car 1, always",
		}, comment)
		require.Equal(t, http.StatusCreated, status)

		var comments []*documents.Comment
		commentsPath := fmt.Sprintf("/v1/comments?postType=COMMUNITY&postId=%s", post.ID)
		require.Equal(t, http.StatusOK, anonymous.do(http.MethodGet, commentsPath, nil, &comments))
		require.Len(t, comments, 1)
		require.Equal(t, "reader", *comments[0].Writer)

		status, _ = writerClient.errorCode(http.MethodPatch, fmt.Sprintf("/v1/comments/%s", comment.ID), &documents.PatchCommentRequest{Content: "Car 10"})
		require.Equal(t, http.StatusForbidden, status)

		require.Equal(t, http.StatusOK, readerClient.do(http.MethodDelete, fmt.Sprintf("/v1/comments/%s", comment.ID), nil, nil))
		require.Equal(t, http.StatusOK, anonymous.do(http.MethodGet, commentsPath, nil, &comments))
		require.Len(t, comments, 1)
		require.Empty(t, comments[0].Content)
		require.Equal(t, models.CommentStatusDeleted, comments[0].Status)
	})

	t.Run("PatchByStranger", func(t *testing.T) {
		title := "Hijacked"
		status, _ := readerClient.errorCode(http.MethodPatch, postPath, &documents.PatchCommunityPostRequest{Title: &title})
		require.Equal(t, http.StatusForbidden, status)
	})

	t.Run("Patch", func(t *testing.T) {
		title := "Which car is the warmest?"
		updated := &documents.CommunityPost{}
		require.Equal(t, http.StatusOK, writerClient.do(http.MethodPatch, postPath, &documents.PatchCommunityPostRequest{Title: &title}, updated))
		require.Equal(t, title, updated.Title)
	})

	t.Run("Delete", func(t *testing.T) {
		require.Equal(t, http.StatusOK, writerClient.do(http.MethodDelete, postPath, nil, nil))
		status, code := anonymous.errorCode(http.MethodGet, postPath, nil)
		require.Equal(t, http.StatusNotFound, status)
		require.Equal(t, "PostNotFound", code)
		status, _ = readerClient.errorCode(http.MethodPost, "/v1/comments", &documents.CreateCommentRequest{
			PostType: models.PostTypeCommunity,
			PostID:   post.ID.ResourceID,
			Content:  "Too late",
		})
		require.Equal(t, http.StatusNotFound, status)
	})
}

func TestCommunityHotPostsAPI(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()
	app.AppAPIServer.Start()
	defer app.AppAPIServer.Stop(ctx)

	writer := server_test.CreateMember(t, ctx, app, "writer")
	line, _ := server_test.CreateSubwayLine(t, ctx, app, "")
	hot := server_test.CreateCommunityPost(t, ctx, app, writer.ID, line.ID, "hot")
	server_test.CreateCommunityPost(t, ctx, app, writer.ID, line.ID, "cold")
	client := newTestClient(t, app, "")
	for i := 0; i < models.DefaultHotPostViews; i++ {
		require.Equal(t, http.StatusOK, client.do(http.MethodGet, fmt.Sprintf("/v1/community-posts/%s", hot.ID), nil, nil))
	}

	res := &page{}
	require.Equal(t, http.StatusOK, client.do(http.MethodGet, "/v1/community-hot-posts", nil, res))
	var summaries []*documents.CommunityPostSummary
	require.NoError(t, json.Unmarshal(res.Results, &summaries))
	require.Len(t, summaries, 1)
	require.Equal(t, hot.ID, summaries[0].ID)
}

func TestReportAPI(t *testing.T) {
	ctx := context.Background()
	config := server_test.TestConfig(t)
	// The first member created in a fresh database is the admin
	config.AdminMemberIDs = middleware.AdminMemberIDs{models.MemberIDFromResourceID(1)}
	app, cleanup, err := server_test.New(config)
	require.NoError(t, err)
	defer cleanup()
	app.AppAPIServer.Start()
	defer app.AppAPIServer.Stop(ctx)

	admin := server_test.CreateMember(t, ctx, app, "admin")
	if admin.ID != config.AdminMemberIDs[0] {
		t.Skipf("admin routes need a fresh database; first member has id %s", admin.ID)
	}
	writer := server_test.CreateMember(t, ctx, app, "writer")
	line, _ := server_test.CreateSubwayLine(t, ctx, app, "")
	post := server_test.CreateCommunityPost(t, ctx, app, writer.ID, line.ID, "")
	reportPath := fmt.Sprintf("/v1/reports/community-posts/%s", post.ID)
	adminClient := newTestClient(t, app, server_test.AccessToken(t, app, admin.ID))
	writerClient := newTestClient(t, app, server_test.AccessToken(t, app, writer.ID))
	action := &documents.ActionOnMemberRequest{TargetMemberID: writer.ID}

	status, code := writerClient.errorCode(http.MethodPost, reportPath, nil)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "InvalidReportRequest", code)

	for i := 0; i < models.MinReportCount; i++ {
		reporter := server_test.CreateMember(t, ctx, app, fmt.Sprintf("reporter%d", i))
		reporterClient := newTestClient(t, app, server_test.AccessToken(t, app, reporter.ID))
		require.Equal(t, http.StatusCreated, reporterClient.do(http.MethodPost, reportPath, nil, nil))
		if i == 0 {
			status, code := reporterClient.errorCode(http.MethodPost, reportPath, nil)
			require.Equal(t, http.StatusBadRequest, status)
			require.Equal(t, "DuplicateReportRequest", code)

			status, code = adminClient.errorCode(http.MethodPost, "/v1/admin/reports/action", action)
			require.Equal(t, http.StatusBadRequest, status)
			require.Equal(t, "InvalidConditionToBlockMember", code)
		}
	}

	// Enough reports block the post
	status, _ = adminClient.errorCode(http.MethodGet, fmt.Sprintf("/v1/community-posts/%s", post.ID), nil)
	require.Equal(t, http.StatusNotFound, status)

	status, _ = writerClient.errorCode(http.MethodPost, "/v1/admin/reports/action", action)
	require.Equal(t, http.StatusForbidden, status)

	suspended := &documents.Member{}
	require.Equal(t, http.StatusOK, adminClient.do(http.MethodPost, "/v1/admin/reports/action", action, suspended))
	require.Equal(t, writer.ID, suspended.MemberID)

	status, code = adminClient.errorCode(http.MethodPost, "/v1/admin/reports/action", action)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "InvalidReportAction", code)

	// The suspended writer's token no longer works
	status, code = writerClient.errorCode(http.MethodGet, "/v1/members", nil)
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, "MemberSuspended", code)
}
