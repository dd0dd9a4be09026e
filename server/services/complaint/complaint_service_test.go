package complaint_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/app/server_test"
	"github.com/ahachul/ahachul-backend/server/dto"
)

func sendComplaint(lineID models.SubwayLineID) *dto.SendComplaint {
	return &dto.SendComplaint{
		ComplaintType:    models.ComplaintTypeTemperature,
		ShortContentType: "TOO_HOT",
		Content:          " Please turn on the aircon ",
		PhoneNumber:      "010-1234-5678",
		TrainNo:          "2240",
		Location:         4,
		SubwayLineID:     lineID,
	}
}

func TestComplaintSend(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()

	member := server_test.CreateMember(t, ctx, app, "passenger")
	line, _ := server_test.CreateSubwayLine(t, ctx, app, "")

	message, err := app.ComplaintService.Send(ctx, member.ID, sendComplaint(line.ID))
	require.NoError(t, err)
	require.True(t, message.ID.Valid())
	require.Equal(t, "Please turn on the aircon", message.Content)
	require.Equal(t, member.ID, message.MemberID)

	t.Run("UnknownType", func(t *testing.T) {
		send := sendComplaint(line.ID)
		send.ComplaintType = "NOISE"
		_, err := app.ComplaintService.Send(ctx, member.ID, send)
		require.True(t, gerror.IsValidationFailed(err))
	})

	t.Run("MissingTrain", func(t *testing.T) {
		send := sendComplaint(line.ID)
		send.TrainNo = "  "
		_, err := app.ComplaintService.Send(ctx, member.ID, send)
		require.True(t, gerror.IsValidationFailed(err))
	})

	t.Run("UnknownLine", func(t *testing.T) {
		send := sendComplaint(models.SubwayLineIDFromResourceID(line.ID.ResourceID + 1000))
		_, err := app.ComplaintService.Send(ctx, member.ID, send)
		require.True(t, gerror.IsInvalidSubwayLine(err))
	})
}

func TestComplaintListMine(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := server_test.New(server_test.TestConfig(t))
	require.NoError(t, err)
	defer cleanup()

	member := server_test.CreateMember(t, ctx, app, "passenger")
	someoneElse := server_test.CreateMember(t, ctx, app, "other")
	line, _ := server_test.CreateSubwayLine(t, ctx, app, "")

	var sent []models.ComplaintMessageID
	for i := 0; i < 5; i++ {
		message, err := app.ComplaintService.Send(ctx, member.ID, sendComplaint(line.ID))
		require.NoError(t, err)
		sent = append(sent, message.ID)
	}
	_, err = app.ComplaintService.Send(ctx, someoneElse.ID, sendComplaint(line.ID))
	require.NoError(t, err)

	var listed []models.ComplaintMessageID
	pagination := models.NewPagination(2, nil)
	for {
		messages, token, err := app.ComplaintService.ListMine(ctx, member.ID, pagination)
		require.NoError(t, err)
		for _, message := range messages {
			require.Equal(t, member.ID, message.MemberID)
			listed = append(listed, message.ID)
		}
		if token == nil {
			break
		}
		pagination.PageToken = token
	}

	// Newest first
	require.Len(t, listed, len(sent))
	for i := range sent {
		require.Equal(t, sent[len(sent)-1-i], listed[i])
	}

	_, _, err = app.ComplaintService.ListMine(ctx, member.ID, models.NewPagination(0, nil))
	require.Error(t, err)
}
