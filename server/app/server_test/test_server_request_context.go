package server_test

import "github.com/ahachul/ahachul-backend/server/api/rest/routes"

// TestServerRequestContext provides a BaseURL() function returning a URL that can be used for link
// construction during integration tests, pointing back to the local test server.
type TestServerRequestContext struct {
	baseURL string
}

// NewTestServerRequestContext creates a new request context that is suitable for URL construction during integration
// tests, pointing back to the local test server.
func NewTestServerRequestContext(app *TestServer) routes.RequestContext {
	return &TestServerRequestContext{
		baseURL: app.AppAPIServer.GetServerURL(),
	}
}

func (c *TestServerRequestContext) BaseURL() string {
	return c.baseURL
}
