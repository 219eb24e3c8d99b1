package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token kinds. A token issued for one purpose is never accepted where the
// other is required (kind isolation).
const (
	TokenKindAccess  = "access"
	TokenKindRefresh = "refresh"
)

var (
	// ErrTokenExpired is returned when the token is past its validity window.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned for a bad signature, malformed structure,
	// or a kind mismatch.
	ErrTokenInvalid = errors.New("invalid token")
)

var (
	jwtSecret       = []byte("reviewhub-secret-key-change-in-production")
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

// Claims carries the identity claims embedded in access and refresh tokens.
// Refresh tokens carry only the user ID and kind.
type Claims struct {
	UserID uint   `json:"uid"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	Kind   string `json:"kind"`
	jwt.RegisteredClaims
}

// SetJWTSecret sets the HMAC signing secret.
func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

// SetTokenTTLs overrides the access and refresh token lifetimes.
func SetTokenTTLs(access, refresh time.Duration) {
	accessTokenTTL = access
	refreshTokenTTL = refresh
}

// GenerateAccessToken issues a short-lived access token carrying the user's
// identity and account-level role.
func GenerateAccessToken(userID uint, email, role string) (string, error) {
	return generateToken(&Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		Kind:   TokenKindAccess,
	}, accessTokenTTL)
}

// GenerateRefreshToken issues a longer-lived refresh token carrying only the
// user ID.
func GenerateRefreshToken(userID uint) (string, error) {
	return generateToken(&Claims{
		UserID: userID,
		Kind:   TokenKindRefresh,
	}, refreshTokenTTL)
}

func generateToken(claims *Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseToken verifies a token's signature and validity window and checks that
// its kind matches expectedKind. Expiry is reported as ErrTokenExpired; every
// other failure, including a kind mismatch, as ErrTokenInvalid.
func ParseToken(tokenString, expectedKind string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Kind != expectedKind {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
