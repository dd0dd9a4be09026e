package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ahachul/ahachul-backend/server/api/rest/documents"
	"github.com/ahachul/ahachul-backend/server/app/server_test"
)

// testClient makes JSON requests against a running test server, optionally as a member.
type testClient struct {
	t       *testing.T
	baseURL string
	token   string
}

func newTestClient(t *testing.T, app *server_test.TestServer, token string) *testClient {
	return &testClient{t: t, baseURL: app.AppAPIServer.GetServerURL(), token: token}
}

// do sends body as JSON and decodes the response into out if it is set and the request succeeded.
// Returns the response status code.
func (c *testClient) do(method string, path string, body interface{}, out interface{}) int {
	return c.send(c.newRequest(method, c.baseURL+path, body), out)
}

func (c *testClient) newRequest(method string, url string, body interface{}) *http.Request {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req
}

func (c *testClient) send(req *http.Request, out interface{}) int {
	res, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(c.t, err)
	if out != nil && res.StatusCode < 300 {
		require.NoError(c.t, json.Unmarshal(data, out), string(data))
	}
	return res.StatusCode
}

// errorCode makes a request that is expected to fail and returns the status and error code.
func (c *testClient) errorCode(method string, path string, body interface{}) (int, string) {
	res, err := http.DefaultClient.Do(c.newRequest(method, c.baseURL+path, body))
	require.NoError(c.t, err)
	defer res.Body.Close()
	doc := &documents.ErrorDocument{}
	require.NoError(c.t, json.NewDecoder(res.Body).Decode(doc))
	return res.StatusCode, string(doc.Code)
}

// page is a page of results with the results left undecoded.
type page struct {
	Results       json.RawMessage `json:"results"`
	HasNext       bool            `json:"has_next"`
	NextPageToken string          `json:"next_page_token"`
	NextURL       string          `json:"next_url"`
}
