package lost112

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ahachul/ahachul-backend/common/httpclient"
	"github.com/ahachul/ahachul-backend/common/logger"
)

func TestClientFetchItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"title":"우산","received_date":"2023-08-02","subway_line":"2호선","page_url":"https://www.lost112.go.kr/find/2"}]`))
	}))
	defer server.Close()

	config := httpclient.DefaultConfig()
	config.RetryMax = 0
	client := NewClient(ClientConfig{FeedURL: server.URL}, httpclient.NewClient(config, logger.NewNoOpLog()), logger.NoOpLogFactory)
	items, err := client.FetchItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "우산", items[0].Title)
	require.Equal(t, "2호선", items[0].SubwayLine)

	client = NewClient(ClientConfig{FeedURL: server.URL + "/%zz"}, httpclient.NewClient(config, logger.NewNoOpLog()), logger.NoOpLogFactory)
	_, err = client.FetchItems(context.Background())
	require.Error(t, err)
}

func TestParseReceivedDate(t *testing.T) {
	for value, expected := range map[string]time.Time{
		"2023-08-01T09:30:00+09:00": time.Date(2023, 8, 1, 0, 30, 0, 0, time.UTC),
		"2023-08-01 09:30:00":       time.Date(2023, 8, 1, 0, 30, 0, 0, time.UTC),
		"2023-08-01 09:30":          time.Date(2023, 8, 1, 0, 30, 0, 0, time.UTC),
		" 2023-08-01 ":              time.Date(2023, 7, 31, 15, 0, 0, 0, time.UTC),
	} {
		item := &Item{ReceivedDate: value}
		parsed, err := item.ParseReceivedDate()
		require.NoError(t, err, value)
		require.True(t, expected.Equal(parsed), "%q parsed as %s", value, parsed)
	}
	_, err := (&Item{ReceivedDate: "08/01/2023"}).ParseReceivedDate()
	require.Error(t, err)
}
