package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/api/rest/documents"
	"github.com/ahachul/ahachul-backend/server/app/server_test"
)

func TestComplaintAPI(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()
	app.AppAPIServer.Start()
	defer app.AppAPIServer.Stop(ctx)

	member := server_test.CreateMember(t, ctx, app, "passenger")
	line, _ := server_test.CreateSubwayLine(t, ctx, app, "")
	client := newTestClient(t, app, server_test.AccessToken(t, app, member.ID))
	send := &documents.SendComplaintRequest{
		ComplaintType:    models.ComplaintTypeDisorderly,
		ShortContentType: "NOISE",
		Content:          "Someone is playing music out loud",
		TrainNo:          "3102",
		Location:         6,
		SubwayLineID:     line.ID,
	}

	for i := 0; i < 3; i++ {
		message := &models.ComplaintMessage{}
		require.Equal(t, http.StatusCreated, client.do(http.MethodPost, "/v1/complaints/messages", send, message))
		require.Equal(t, "3102", message.TrainNo)
	}

	invalid := *send
	invalid.TrainNo = ""
	status, code := client.errorCode(http.MethodPost, "/v1/complaints/messages", &invalid)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "ValidationFailed", code)

	res := &page{}
	require.Equal(t, http.StatusOK, client.do(http.MethodGet, "/v1/complaints/messages?page_size=2", nil, res))
	var messages []*models.ComplaintMessage
	require.NoError(t, json.Unmarshal(res.Results, &messages))
	require.Len(t, messages, 2)
	require.True(t, res.HasNext)

	require.Equal(t, http.StatusOK, client.send(client.newRequest(http.MethodGet, res.NextURL, nil), res))
	require.NoError(t, json.Unmarshal(res.Results, &messages))
	require.Len(t, messages, 1)
	require.False(t, res.HasNext)

	status, _ = newTestClient(t, app, "").errorCode(http.MethodGet, "/v1/complaints/messages", nil)
	require.Equal(t, http.StatusUnauthorized, status)
}
