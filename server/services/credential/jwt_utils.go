package credential

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/ahachul/ahachul-backend/common/models"
)

const (
	DefaultAccessTokenExpiry  = 24 * time.Hour
	DefaultRefreshTokenExpiry = 30 * 24 * time.Hour
	DefaultJWTIssuer          = "ahachul"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "ACCESS"
	TokenTypeRefresh TokenType = "REFRESH"
)

type MemberTokenClaims struct {
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// CreateMemberJWT creates a new JWT (JSON Web Token) that can be used to authenticate as the specified member.
// The JWT is signed with HMAC SHA-256 using the supplied secret.
func CreateMemberJWT(
	memberID models.MemberID,
	tokenType TokenType,
	issuer string,
	now time.Time,
	expiryDuration time.Duration,
	secret []byte,
) (string, *MemberTokenClaims, error) {
	claims := &MemberTokenClaims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   memberID.String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", nil, err
	}
	return tokenString, claims, nil
}

// ParseMemberJWT verifies the signature on the supplied JWT and returns its claims. Time based claims are
// NOT validated; the caller must check expiry against its own clock.
func ParseMemberJWT(tokenStr string, secret []byte) (*MemberTokenClaims, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, err := parser.ParseWithClaims(tokenStr, &MemberTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("error unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error parsing member JWT: %w", err)
	}
	return token.Claims.(*MemberTokenClaims), nil
}
