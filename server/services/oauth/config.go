package oauth

import (
	"strings"

	"golang.org/x/oauth2"
)

// ClientConfig configures the app registration with a single OAuth provider.
// A provider is only enabled if its ClientID is set.
type ClientConfig struct {
	ClientID     string
	ClientSecret string
	// RedirectURL is where the provider sends members after login, when the login did not
	// say which host it came from.
	RedirectURL string
	// RedirectPath is appended to the origin host of a login to make the redirect URL.
	RedirectPath string
	// Scopes to request, if any.
	Scopes []string
}

func (c ClientConfig) Enabled() bool {
	return c.ClientID != ""
}

// redirectURL returns the URL the provider should send the member back to.
func (c ClientConfig) redirectURL(originHost string) string {
	if originHost == "" {
		return c.RedirectURL
	}
	if !strings.HasPrefix(originHost, "http://") && !strings.HasPrefix(originHost, "https://") {
		originHost = "https://" + originHost
	}
	return strings.TrimSuffix(originHost, "/") + "/" + strings.TrimPrefix(c.RedirectPath, "/")
}

func (c ClientConfig) oauth2Config(endpoint oauth2.Endpoint, originHost string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint:     endpoint,
		RedirectURL:  c.redirectURL(originHost),
		Scopes:       c.Scopes,
	}
}
