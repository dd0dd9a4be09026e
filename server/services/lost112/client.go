package lost112

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/ahachul/ahachul-backend/common/httpclient"
	"github.com/ahachul/ahachul-backend/common/logger"
)

// kst is the zone Lost112 reports dates in.
var kst = time.FixedZone("KST", 9*60*60)

var receivedDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Item is a found item as published in the Lost112 feed.
type Item struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	ReceivedDate  string `json:"received_date"`
	Storage       string `json:"storage"`
	StorageNumber string `json:"storage_number"`
	Category      string `json:"category"`
	SubwayLine    string `json:"subway_line"`
	ImageURL      string `json:"image_url"`
	PageURL       string `json:"page_url"`
}

// ParseReceivedDate parses the date the item was handed in. Dates without a zone are in Korean time.
func (i *Item) ParseReceivedDate() (time.Time, error) {
	value := strings.TrimSpace(i.ReceivedDate)
	for _, layout := range receivedDateLayouts {
		t, err := time.ParseInLocation(layout, value, kst)
		if err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.Errorf("error unrecognized received date %q", i.ReceivedDate)
}

type ClientConfig struct {
	FeedURL string
}

// Client downloads the Lost112 found item feed.
type Client struct {
	config ClientConfig
	client *httpclient.Client
	logger.Log
}

func NewClient(config ClientConfig, client *httpclient.Client, logFactory logger.LogFactory) *Client {
	return &Client{
		config: config,
		client: client,
		Log:    logFactory("Lost112Client"),
	}
}

// FetchItems returns every item currently in the feed.
func (c *Client) FetchItems(ctx context.Context) ([]*Item, error) {
	var items []*Item
	err := c.client.GetJSON(ctx, c.config.FeedURL, nil, &items)
	if err != nil {
		return nil, errors.Wrap(err, "error fetching Lost112 feed")
	}
	c.Tracef("Fetched %d items from Lost112 feed", len(items))
	return items, nil
}
