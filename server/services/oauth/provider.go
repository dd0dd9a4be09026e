package oauth

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/httpclient"
)

// exchangeCode trades an authorization code for tokens at the provider's token endpoint.
// Returns gerror.ErrInvalidOAuthAuthorizationCode if the provider rejects the code.
func exchangeCode(
	ctx context.Context,
	client *httpclient.Client,
	config *oauth2.Config,
	code string,
	opts ...oauth2.AuthCodeOption,
) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, client.StandardClient())
	token, err := config.Exchange(ctx, code, opts...)
	if err != nil {
		return nil, gerror.NewErrInvalidOAuthAuthorizationCode().Wrap(err)
	}
	return token, nil
}

// fetchUserInfo reads the signed in user's profile from the provider using the access token.
// Returns gerror.ErrInvalidOAuthAccessToken if the provider rejects the token.
func fetchUserInfo(ctx context.Context, client *httpclient.Client, url string, token *oauth2.Token, out interface{}) error {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+token.AccessToken)
	err := client.GetJSON(ctx, url, headers, out)
	if err != nil {
		if gerror.IsHttpOperationFailed(err) {
			return gerror.NewErrInvalidOAuthAccessToken().Wrap(err)
		}
		return err
	}
	return nil
}
