package train_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ahachul/ahachul-backend/common/httpclient"
	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/services/train"
)

func TestParseCarPercentages(t *testing.T) {
	percentages, err := train.ParseCarPercentages("20|31|36|100|41|38|50|51|38|230")
	require.NoError(t, err)
	require.Equal(t, []int{20, 31, 36, 100, 41, 38, 50, 51, 38, 230}, percentages)

	cars := train.CarCongestions(percentages)
	require.Len(t, cars, 10)
	expected := []models.Congestion{
		models.CongestionSmooth,
		models.CongestionSmooth,
		models.CongestionModerate,
		models.CongestionCongested,
		models.CongestionModerate,
		models.CongestionModerate,
		models.CongestionModerate,
		models.CongestionModerate,
		models.CongestionModerate,
		models.CongestionVeryCongested,
	}
	for i, car := range cars {
		require.Equal(t, i+1, car.SectionNo)
		require.Equal(t, expected[i], car.Congestion, "car %d", car.SectionNo)
	}

	percentages, err = train.ParseCarPercentages("")
	require.NoError(t, err)
	require.Empty(t, percentages)

	_, err = train.ParseCarPercentages("20|x")
	require.Error(t, err)
}

func TestLineNumber(t *testing.T) {
	require.Equal(t, "2", train.LineNumber("2호선"))
	require.Equal(t, "12", train.LineNumber("12"))
	require.Equal(t, "", train.LineNumber("신분당선"))
}

func TestCongestionClient(t *testing.T) {
	var requestedPath, appKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		appKey = r.Header.Get("appkey")
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/trains/2/9999" {
			fmt.Fprint(w, `{"success": false, "code": 404}`)
			return
		}
		fmt.Fprint(w, `{"success": true, "code": 100, "data": {"subwayLine": "2", "trainY": "2034",
			"congestionResult": {"congestionTrain": "35", "congestionCar": "20|80|130", "congestionType": 1}}}`)
	}))
	defer server.Close()

	logFactory := logger.NoOpLogFactory
	client := train.NewCongestionClient(
		train.CongestionClientConfig{APIURL: server.URL + "/trains/", AppKey: "test-key"},
		httpclient.NewClient(httpclient.DefaultConfig(), logFactory("HTTPClient")),
		logFactory)

	percentages, err := client.GetCarPercentages(context.Background(), "2", "2034")
	require.NoError(t, err)
	require.Equal(t, []int{20, 80, 130}, percentages)
	require.Equal(t, "/trains/2/2034", requestedPath)
	require.Equal(t, "test-key", appKey)

	_, err = client.GetCarPercentages(context.Background(), "2", "9999")
	require.Error(t, err)
}
