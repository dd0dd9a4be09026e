package dto

import (
	"time"

	"github.com/ahachul/ahachul-backend/common/models"
)

// TokenPair is the result of issuing credentials to a member. RefreshToken is empty when a refresh did not
// rotate the refresh token.
type TokenPair struct {
	AccessToken           string
	AccessTokenExpiresIn  time.Duration
	RefreshToken          string
	RefreshTokenExpiresIn time.Duration
}

type LoginResult struct {
	TokenPair
	MemberID                 models.MemberID
	IsNeedAdditionalUserInfo bool
}

type Login struct {
	Provider   models.ProviderType
	Code       string
	OriginHost string
}
