package credential

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
)

type JWTConfig struct {
	SecretKey          string
	Issuer             string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

type CredentialService struct {
	clk    clock.Clock
	config JWTConfig
	secret []byte
	logger.Log
}

func NewCredentialService(clk clock.Clock, config JWTConfig, logFactory logger.LogFactory) (*CredentialService, error) {
	if len(config.SecretKey) < 32 {
		return nil, fmt.Errorf("error JWT secret key must be at least 32 characters")
	}
	if config.Issuer == "" {
		config.Issuer = DefaultJWTIssuer
	}
	if config.AccessTokenExpiry <= 0 {
		config.AccessTokenExpiry = DefaultAccessTokenExpiry
	}
	if config.RefreshTokenExpiry <= 0 {
		config.RefreshTokenExpiry = DefaultRefreshTokenExpiry
	}
	return &CredentialService{
		clk:    clk,
		config: config,
		secret: []byte(config.SecretKey),
		Log:    logFactory("CredentialService"),
	}, nil
}

func (s *CredentialService) IssueAccessToken(memberID models.MemberID) (string, time.Duration, error) {
	return s.issue(memberID, TokenTypeAccess, s.config.AccessTokenExpiry)
}

func (s *CredentialService) IssueRefreshToken(memberID models.MemberID) (string, time.Duration, error) {
	return s.issue(memberID, TokenTypeRefresh, s.config.RefreshTokenExpiry)
}

func (s *CredentialService) VerifyAccessToken(token string) (models.MemberID, time.Time, error) {
	return s.verify(token, TokenTypeAccess)
}

func (s *CredentialService) VerifyRefreshToken(token string) (models.MemberID, time.Time, error) {
	return s.verify(token, TokenTypeRefresh)
}

func (s *CredentialService) issue(memberID models.MemberID, tokenType TokenType, expiry time.Duration) (string, time.Duration, error) {
	token, _, err := CreateMemberJWT(memberID, tokenType, s.config.Issuer, s.clk.Now(), expiry, s.secret)
	if err != nil {
		return "", 0, fmt.Errorf("error creating %s token: %w", tokenType, err)
	}
	return token, expiry, nil
}

func (s *CredentialService) verify(token string, tokenType TokenType) (models.MemberID, time.Time, error) {
	claims, err := ParseMemberJWT(token, s.secret)
	if err != nil {
		return models.MemberID{}, time.Time{}, gerror.NewErrInvalidAccessToken().Wrap(err)
	}
	if claims.TokenType != tokenType {
		return models.MemberID{}, time.Time{}, gerror.NewErrInvalidAccessToken().
			IDetail("expected_token_type", tokenType).
			IDetail("token_type", claims.TokenType)
	}
	if claims.Issuer != s.config.Issuer {
		return models.MemberID{}, time.Time{}, gerror.NewErrInvalidAccessToken().IDetail("issuer", claims.Issuer)
	}
	if claims.ExpiresAt == nil || !claims.VerifyExpiresAt(s.clk.Now(), true) {
		return models.MemberID{}, time.Time{}, gerror.NewErrExpiredAccessToken()
	}
	resourceID, err := models.ParseResourceID(claims.Subject)
	if err != nil {
		return models.MemberID{}, time.Time{}, gerror.NewErrInvalidAccessToken().Wrap(err)
	}
	return models.MemberIDFromResourceID(resourceID), claims.ExpiresAt.Time, nil
}
