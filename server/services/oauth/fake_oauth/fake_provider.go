package fake_oauth

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/models"
)

// FakeProvider is an OAuth provider for tests. Any code of the form "<provider user id>:<email>" is accepted
// and identifies that user; any other code is rejected.
type FakeProvider struct {
	providerType models.ProviderType
}

func NewFakeProvider(providerType models.ProviderType) *FakeProvider {
	return &FakeProvider{providerType: providerType}
}

// MakeCode returns an authorization code that FetchUser will accept for the specified user.
func MakeCode(providerUserID string, email string) string {
	return fmt.Sprintf("%s:%s", providerUserID, email)
}

func (p *FakeProvider) Type() models.ProviderType {
	return p.providerType
}

func (p *FakeProvider) AuthCodeURL(state string, originHost string) string {
	values := url.Values{}
	values.Set("state", state)
	values.Set("origin", originHost)
	return fmt.Sprintf("https://oauth.example.com/%s/authorize?%s", strings.ToLower(p.providerType.String()), values.Encode())
}

func (p *FakeProvider) FetchUser(ctx context.Context, code string, originHost string) (*models.OAuthUser, error) {
	parts := strings.SplitN(code, ":", 2)
	if len(parts) != 2 || parts[0] == "" {
		return nil, gerror.NewErrInvalidOAuthAuthorizationCode()
	}
	return &models.OAuthUser{
		Provider:       p.providerType,
		ProviderUserID: parts[0],
		Email:          parts[1],
	}, nil
}
