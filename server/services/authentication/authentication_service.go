package authentication

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
	"github.com/ahachul/ahachul-backend/server/dto"
	"github.com/ahachul/ahachul-backend/server/services"
	"github.com/ahachul/ahachul-backend/server/services/oauth"
	"github.com/ahachul/ahachul-backend/server/store"
)

// RefreshTokenRotationWindow is how close to expiry a refresh token must be before Refresh replaces it.
const RefreshTokenRotationWindow = 7 * 24 * time.Hour

type AuthenticationService struct {
	db                *store.DB
	memberStore       store.MemberStore
	providerRegistry  *oauth.ProviderRegistry
	credentialService services.CredentialService
	logoutService     services.LogoutService
	clk               clock.Clock
	logger.Log
}

func NewAuthenticationService(
	db *store.DB,
	memberStore store.MemberStore,
	providerRegistry *oauth.ProviderRegistry,
	credentialService services.CredentialService,
	logoutService services.LogoutService,
	clk clock.Clock,
	logFactory logger.LogFactory,
) *AuthenticationService {
	return &AuthenticationService{
		db:                db,
		memberStore:       memberStore,
		providerRegistry:  providerRegistry,
		credentialService: credentialService,
		logoutService:     logoutService,
		clk:               clk,
		Log:               logFactory("AuthenticationService"),
	}
}

func (s *AuthenticationService) RedirectURL(ctx context.Context, providerType models.ProviderType, state string, originHost string) (string, error) {
	provider, err := s.providerRegistry.Get(providerType)
	if err != nil {
		return "", err
	}
	return provider.AuthCodeURL(state, originHost), nil
}

func (s *AuthenticationService) Login(ctx context.Context, login *dto.Login) (*dto.LoginResult, error) {
	provider, err := s.providerRegistry.Get(login.Provider)
	if err != nil {
		return nil, err
	}
	if login.Code == "" {
		return nil, gerror.NewErrInvalidOAuthAuthorizationCode()
	}
	user, err := provider.FetchUser(ctx, login.Code, login.OriginHost)
	if err != nil {
		return nil, err
	}

	var (
		member                   *models.Member
		created                  bool
		isNeedAdditionalUserInfo bool
	)
	err = s.db.WithTx(ctx, nil, func(tx *store.Tx) error {
		memberData := models.NewMember(models.NewTime(s.clk.Now()), user.Provider, user.ProviderUserID, user.Email)
		member, created, err = s.memberStore.FindOrCreate(ctx, tx, memberData)
		if err != nil {
			return errors.Wrap(err, "error finding or creating member")
		}
		isNeedAdditionalUserInfo = member.IsNeedAdditionalUserInfo()
		if !isNeedAdditionalUserInfo {
			taken, err := s.memberStore.NicknameTaken(ctx, tx, member.GetNickname(), &member.ID)
			if err != nil {
				return errors.Wrap(err, "error checking nickname")
			}
			isNeedAdditionalUserInfo = taken
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if member.IsSuspended() {
		return nil, gerror.NewErrMemberSuspended().IDetail("member_id", member.ID)
	}
	if created {
		s.Infof("Created member %s for %s user %s", member.ID, user.Provider, user.ProviderUserID)
	}

	tokens, err := s.issueTokens(member.ID, true)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResult{
		TokenPair:                *tokens,
		MemberID:                 member.ID,
		IsNeedAdditionalUserInfo: isNeedAdditionalUserInfo,
	}, nil
}

func (s *AuthenticationService) Logout(ctx context.Context, accessToken string) error {
	memberID, expiresAt, err := s.credentialService.VerifyAccessToken(accessToken)
	if err != nil {
		return err
	}
	err = s.logoutService.Revoke(ctx, accessToken, expiresAt)
	if err != nil {
		return fmt.Errorf("error revoking access token: %w", err)
	}
	s.Infof("Member %s logged out", memberID)
	return nil
}

func (s *AuthenticationService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	memberID, expiresAt, err := s.credentialService.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	member, err := s.memberStore.Read(ctx, nil, memberID)
	if err != nil {
		if gerror.IsNotFound(err) {
			return nil, gerror.NewErrInvalidAccessToken().Wrap(err)
		}
		return nil, err
	}
	if member.IsSuspended() {
		return nil, gerror.NewErrMemberSuspended().IDetail("member_id", member.ID)
	}
	rotate := expiresAt.Sub(s.clk.Now()) < RefreshTokenRotationWindow
	return s.issueTokens(memberID, rotate)
}

func (s *AuthenticationService) AuthenticateAccessToken(ctx context.Context, accessToken string) (*models.Member, error) {
	memberID, _, err := s.credentialService.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, err
	}
	revoked, err := s.logoutService.IsRevoked(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, gerror.NewErrInvalidAccessToken().IDetail("reason", "logged out")
	}
	member, err := s.memberStore.Read(ctx, nil, memberID)
	if err != nil {
		if gerror.IsNotFound(err) {
			return nil, gerror.NewErrInvalidAccessToken().Wrap(err)
		}
		return nil, err
	}
	if member.IsSuspended() {
		return nil, gerror.NewErrMemberSuspended().IDetail("member_id", member.ID)
	}
	return member, nil
}

func (s *AuthenticationService) issueTokens(memberID models.MemberID, includeRefreshToken bool) (*dto.TokenPair, error) {
	tokens := &dto.TokenPair{}
	var err error
	tokens.AccessToken, tokens.AccessTokenExpiresIn, err = s.credentialService.IssueAccessToken(memberID)
	if err != nil {
		return nil, err
	}
	if includeRefreshToken {
		tokens.RefreshToken, tokens.RefreshTokenExpiresIn, err = s.credentialService.IssueRefreshToken(memberID)
		if err != nil {
			return nil, err
		}
	}
	return tokens, nil
}
