package documents

import (
	"net/http"

	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/dto"
)

type GetRedirectURLResponse struct {
	RedirectURL string `json:"redirect_url"`
}

type LoginRequest struct {
	ProviderType models.ProviderType `json:"provider_type" validate:"required,oneof=KAKAO GOOGLE APPLE"`
	ProviderCode string              `json:"provider_code" validate:"required"`
	// State must match the state of the redirect url the member signed in through, if the session has one.
	State string `json:"state"`
	// OriginHost is the host the provider redirected back to, if it was not the default.
	OriginHost string `json:"origin_host"`
}

func (d *LoginRequest) Bind(r *http.Request) error {
	return Validate(d)
}

func (d *LoginRequest) ToDTO() *dto.Login {
	return &dto.Login{
		Provider:   d.ProviderType,
		Code:       d.ProviderCode,
		OriginHost: d.OriginHost,
	}
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	// AccessTokenExpiresIn is the lifetime of the access token in seconds.
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
	RefreshToken         string `json:"refresh_token,omitempty"`
	// RefreshTokenExpiresIn is the lifetime of the refresh token in seconds, or zero if it was not reissued.
	RefreshTokenExpiresIn int64 `json:"refresh_token_expires_in,omitempty"`
}

func MakeTokenResponse(pair *dto.TokenPair) *TokenResponse {
	return &TokenResponse{
		AccessToken:           pair.AccessToken,
		AccessTokenExpiresIn:  int64(pair.AccessTokenExpiresIn.Seconds()),
		RefreshToken:          pair.RefreshToken,
		RefreshTokenExpiresIn: int64(pair.RefreshTokenExpiresIn.Seconds()),
	}
}

type LoginResponse struct {
	MemberID                 models.MemberID `json:"member_id"`
	IsNeedAdditionalUserInfo bool            `json:"is_need_additional_user_info"`
	*TokenResponse
}

func MakeLoginResponse(result *dto.LoginResult) *LoginResponse {
	return &LoginResponse{
		MemberID:                 result.MemberID,
		IsNeedAdditionalUserInfo: result.IsNeedAdditionalUserInfo,
		TokenResponse:            MakeTokenResponse(&result.TokenPair),
	}
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (d *RefreshTokenRequest) Bind(r *http.Request) error {
	return Validate(d)
}
