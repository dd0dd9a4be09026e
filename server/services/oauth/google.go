package oauth

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/httpclient"
	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
)

var GoogleEndpoint = oauth2.Endpoint{
	AuthURL:   "https://accounts.google.com/o/oauth2/auth",
	TokenURL:  "https://oauth2.googleapis.com/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

const GoogleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var DefaultGoogleScopes = []string{
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
}

type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type GoogleProvider struct {
	config      ClientConfig
	endpoint    oauth2.Endpoint
	userInfoURL string
	client      *httpclient.Client
	logger.Log
}

func NewGoogleProvider(config ClientConfig, client *httpclient.Client, logFactory logger.LogFactory) *GoogleProvider {
	if len(config.Scopes) == 0 {
		config.Scopes = DefaultGoogleScopes
	}
	return &GoogleProvider{
		config:      config,
		endpoint:    GoogleEndpoint,
		userInfoURL: GoogleUserInfoURL,
		client:      client,
		Log:         logFactory("GoogleProvider"),
	}
}

// WithEndpoints points the provider at a different server, for tests.
func (p *GoogleProvider) WithEndpoints(endpoint oauth2.Endpoint, userInfoURL string) *GoogleProvider {
	p.endpoint = endpoint
	p.userInfoURL = userInfoURL
	return p
}

func (p *GoogleProvider) Type() models.ProviderType {
	return models.ProviderTypeGoogle
}

func (p *GoogleProvider) AuthCodeURL(state string, originHost string) string {
	return p.config.oauth2Config(p.endpoint, originHost).AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (p *GoogleProvider) FetchUser(ctx context.Context, code string, originHost string) (*models.OAuthUser, error) {
	token, err := exchangeCode(ctx, p.client, p.config.oauth2Config(p.endpoint, originHost), code)
	if err != nil {
		return nil, err
	}
	info := &googleUserInfo{}
	err = fetchUserInfo(ctx, p.client, p.userInfoURL, token, info)
	if err != nil {
		return nil, err
	}
	if info.ID == "" {
		return nil, gerror.NewErrInvalidOAuthAccessToken().IDetail("reason", "missing google user id")
	}
	return &models.OAuthUser{
		Provider:       models.ProviderTypeGoogle,
		ProviderUserID: info.ID,
		Email:          info.Email,
	}, nil
}
