package train

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/httpclient"
	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
)

// DefaultCongestionAPIURL is the real time train congestion endpoint of the SK open API.
const DefaultCongestionAPIURL = "https://apis.openapi.sk.com/puzzle/subway/congestion/rltm/trains"

type CongestionClientConfig struct {
	APIURL string
	AppKey string
}

type congestionResponse struct {
	Success bool `json:"success"`
	Code    int  `json:"code"`
	Data    *struct {
		SubwayLine       string `json:"subwayLine"`
		TrainY           string `json:"trainY"`
		CongestionResult struct {
			CongestionTrain string `json:"congestionTrain"`
			CongestionCar   string `json:"congestionCar"`
			CongestionType  int    `json:"congestionType"`
		} `json:"congestionResult"`
	} `json:"data"`
}

// CongestionClient fetches the percentage of capacity used in each car of a running train.
type CongestionClient struct {
	config CongestionClientConfig
	client *httpclient.Client
	logger.Log
}

func NewCongestionClient(config CongestionClientConfig, client *httpclient.Client, logFactory logger.LogFactory) *CongestionClient {
	if config.APIURL == "" {
		config.APIURL = DefaultCongestionAPIURL
	}
	return &CongestionClient{
		config: config,
		client: client,
		Log:    logFactory("CongestionClient"),
	}
}

// GetCarPercentages returns the congestion percentage of each car of a train, front car first.
func (c *CongestionClient) GetCarPercentages(ctx context.Context, lineNumber string, trainNo string) ([]int, error) {
	requestURL := fmt.Sprintf("%s/%s/%s",
		strings.TrimSuffix(c.config.APIURL, "/"), url.PathEscape(lineNumber), url.PathEscape(trainNo))
	headers := http.Header{}
	headers.Set("appkey", c.config.AppKey)
	response := &congestionResponse{}
	err := c.client.GetJSON(ctx, requestURL, headers, response)
	if err != nil {
		return nil, errors.Wrap(err, "error fetching train congestion")
	}
	if !response.Success || response.Data == nil {
		return nil, gerror.NewErrHttpOperationFailed(
			fmt.Sprintf("Congestion API returned code %d", response.Code), http.StatusOK)
	}
	return ParseCarPercentages(response.Data.CongestionResult.CongestionCar)
}

// ParseCarPercentages parses a pipe separated list of percentages such as "20|31|136".
func ParseCarPercentages(cars string) ([]int, error) {
	if strings.TrimSpace(cars) == "" {
		return []int{}, nil
	}
	parts := strings.Split(cars, "|")
	percentages := make([]int, 0, len(parts))
	for _, part := range parts {
		percentage, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.Wrapf(err, "error parsing car congestion %q", part)
		}
		percentages = append(percentages, percentage)
	}
	return percentages, nil
}

// CarCongestions classifies each percentage, numbering cars from 1.
func CarCongestions(percentages []int) []*models.CarCongestion {
	cars := make([]*models.CarCongestion, 0, len(percentages))
	for i, percentage := range percentages {
		cars = append(cars, &models.CarCongestion{
			SectionNo:  i + 1,
			Congestion: models.CongestionFromPercentage(percentage),
		})
	}
	return cars
}
