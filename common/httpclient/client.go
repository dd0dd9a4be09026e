package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/logger"
)

const maxErrorBodyBytes = 1024

type Config struct {
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

func DefaultConfig() Config {
	return Config{
		Timeout:      10 * time.Second,
		RetryMax:     3,
		RetryWaitMin: time.Millisecond * 100,
		RetryWaitMax: time.Second * 2,
	}
}

// Client makes requests to third party HTTP APIs, retrying on connection errors and 5xx responses.
type Client struct {
	retryableClient *retryablehttp.Client
	log             logger.Log
}

func NewClient(config Config, log logger.Log) *Client {
	retryableClient := retryablehttp.NewClient()
	retryableClient.RetryWaitMin = config.RetryWaitMin
	retryableClient.RetryWaitMax = config.RetryWaitMax
	retryableClient.RetryMax = config.RetryMax
	retryableClient.Logger = NewLeveledLogger(log)
	retryableClient.HTTPClient = &http.Client{Timeout: config.Timeout}
	return &Client{
		retryableClient: retryableClient,
		log:             log,
	}
}

// StandardClient returns an *http.Client that retries in the same way as this client, for libraries that
// make their own requests.
func (c *Client) StandardClient() *http.Client {
	return c.retryableClient.StandardClient()
}

// GetJSON performs an HTTP GET and decodes the JSON response body into out.
// Returns gerror.ErrHttpOperationFailed if the response status is not 2xx.
func (c *Client) GetJSON(ctx context.Context, url string, headers http.Header, out interface{}) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "error making request")
	}
	for k, v := range headers {
		for _, vv := range v {
			req.Header.Add(k, vv)
		}
	}
	req.Header.Set("Accept", "application/json")
	res, err := c.retryableClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return gerror.NewErrTimeout(fmt.Sprintf("GET %s", req.URL.Host)).Wrap(err)
		}
		return errors.Wrap(err, "error during request")
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBodyBytes))
		return gerror.NewErrHttpOperationFailed(
			fmt.Sprintf("GET %s returned %s", req.URL.Host, res.Status), res.StatusCode).IDetail("body", string(body))
	}
	err = json.NewDecoder(res.Body).Decode(out)
	if err != nil {
		return errors.Wrap(err, "error decoding response body")
	}
	return nil
}
