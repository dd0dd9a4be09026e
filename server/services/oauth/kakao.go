package oauth

import (
	"context"
	"strconv"

	"golang.org/x/oauth2"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/httpclient"
	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
)

var KakaoEndpoint = oauth2.Endpoint{
	AuthURL:   "https://kauth.kakao.com/oauth/authorize",
	TokenURL:  "https://kauth.kakao.com/oauth/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

const KakaoUserInfoURL = "https://kapi.kakao.com/v2/user/me"

type kakaoUserInfo struct {
	ID           int64 `json:"id"`
	KakaoAccount struct {
		Email string `json:"email"`
	} `json:"kakao_account"`
}

type KakaoProvider struct {
	config      ClientConfig
	endpoint    oauth2.Endpoint
	userInfoURL string
	client      *httpclient.Client
	logger.Log
}

func NewKakaoProvider(config ClientConfig, client *httpclient.Client, logFactory logger.LogFactory) *KakaoProvider {
	return &KakaoProvider{
		config:      config,
		endpoint:    KakaoEndpoint,
		userInfoURL: KakaoUserInfoURL,
		client:      client,
		Log:         logFactory("KakaoProvider"),
	}
}

// WithEndpoints points the provider at a different server, for tests.
func (p *KakaoProvider) WithEndpoints(endpoint oauth2.Endpoint, userInfoURL string) *KakaoProvider {
	p.endpoint = endpoint
	p.userInfoURL = userInfoURL
	return p
}

func (p *KakaoProvider) Type() models.ProviderType {
	return models.ProviderTypeKakao
}

func (p *KakaoProvider) AuthCodeURL(state string, originHost string) string {
	return p.config.oauth2Config(p.endpoint, originHost).AuthCodeURL(state)
}

func (p *KakaoProvider) FetchUser(ctx context.Context, code string, originHost string) (*models.OAuthUser, error) {
	token, err := exchangeCode(ctx, p.client, p.config.oauth2Config(p.endpoint, originHost), code)
	if err != nil {
		return nil, err
	}
	info := &kakaoUserInfo{}
	err = fetchUserInfo(ctx, p.client, p.userInfoURL, token, info)
	if err != nil {
		return nil, err
	}
	if info.ID == 0 {
		return nil, gerror.NewErrInvalidOAuthAccessToken().IDetail("reason", "missing kakao user id")
	}
	return &models.OAuthUser{
		Provider:       models.ProviderTypeKakao,
		ProviderUserID: strconv.FormatInt(info.ID, 10),
		Email:          info.KakaoAccount.Email,
	}, nil
}
