package oauth

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/oauth2"

	"github.com/ahachul/ahachul-backend/common/certificates"
	"github.com/ahachul/ahachul-backend/common/gerror"
	"github.com/ahachul/ahachul-backend/common/httpclient"
	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/models"
)

const (
	AppleAudience           = "https://appleid.apple.com"
	appleClientSecretExpiry = 5 * time.Minute
)

var AppleEndpoint = oauth2.Endpoint{
	AuthURL:   "https://appleid.apple.com/auth/authorize",
	TokenURL:  "https://appleid.apple.com/auth/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

var DefaultAppleScopes = []string{"name", "email"}

type AppleConfig struct {
	ClientConfig
	TeamID string
	KeyID  string
	// PrivateKeyFile holds the PEM encoded key used to sign client secrets.
	PrivateKeyFile certificates.PrivateKeyFile
}

type appleIDTokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AppleProvider signs members in with Apple. Apple has no user info endpoint, so the member's
// identity is read from the id token returned by the code exchange.
type AppleProvider struct {
	config     AppleConfig
	endpoint   oauth2.Endpoint
	privateKey *ecdsa.PrivateKey
	client     *httpclient.Client
	clk        clock.Clock
	logger.Log
}

func NewAppleProvider(
	config AppleConfig,
	client *httpclient.Client,
	clk clock.Clock,
	logFactory logger.LogFactory,
) (*AppleProvider, error) {
	privateKey, err := certificates.LoadECDSAPrivateKeyFromPEMFile(config.PrivateKeyFile)
	if err != nil {
		return nil, fmt.Errorf("error loading Apple client secret signing key: %w", err)
	}
	return NewAppleProviderWithKey(config, privateKey, client, clk, logFactory), nil
}

func NewAppleProviderWithKey(
	config AppleConfig,
	privateKey *ecdsa.PrivateKey,
	client *httpclient.Client,
	clk clock.Clock,
	logFactory logger.LogFactory,
) *AppleProvider {
	if len(config.Scopes) == 0 {
		config.Scopes = DefaultAppleScopes
	}
	return &AppleProvider{
		config:     config,
		endpoint:   AppleEndpoint,
		privateKey: privateKey,
		client:     client,
		clk:        clk,
		Log:        logFactory("AppleProvider"),
	}
}

// WithEndpoint points the provider at a different server, for tests.
func (p *AppleProvider) WithEndpoint(endpoint oauth2.Endpoint) *AppleProvider {
	p.endpoint = endpoint
	return p
}

func (p *AppleProvider) Type() models.ProviderType {
	return models.ProviderTypeApple
}

func (p *AppleProvider) AuthCodeURL(state string, originHost string) string {
	return p.config.oauth2Config(p.endpoint, originHost).AuthCodeURL(state)
}

func (p *AppleProvider) FetchUser(ctx context.Context, code string, originHost string) (*models.OAuthUser, error) {
	clientSecret, err := p.makeClientSecret()
	if err != nil {
		return nil, err
	}
	config := p.config.oauth2Config(p.endpoint, originHost)
	config.ClientSecret = clientSecret
	token, err := exchangeCode(ctx, p.client, config, code)
	if err != nil {
		return nil, err
	}
	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return nil, gerror.NewErrInvalidOAuthAccessToken().IDetail("reason", "missing apple id token")
	}
	// The token came straight from Apple over TLS so its signature is not checked again
	claims := &appleIDTokenClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(idToken, claims)
	if err != nil {
		return nil, gerror.NewErrInvalidOAuthAccessToken().Wrap(err)
	}
	if claims.Subject == "" {
		return nil, gerror.NewErrInvalidOAuthAccessToken().IDetail("reason", "missing apple user id")
	}
	return &models.OAuthUser{
		Provider:       models.ProviderTypeApple,
		ProviderUserID: claims.Subject,
		Email:          claims.Email,
	}, nil
}

// makeClientSecret signs the short-lived JWT that Apple accepts in place of a static client secret.
func (p *AppleProvider) makeClientSecret() (string, error) {
	now := p.clk.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    p.config.TeamID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(appleClientSecretExpiry)),
		Audience:  jwt.ClaimStrings{AppleAudience},
		Subject:   p.config.ClientID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	token.Header["kid"] = p.config.KeyID
	secret, err := token.SignedString(p.privateKey)
	if err != nil {
		return "", fmt.Errorf("error signing Apple client secret: %w", err)
	}
	return secret, nil
}
