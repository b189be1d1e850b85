// Package auth issues and verifies access tokens and guards HTTP routes
// behind them.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophcatalog/internal/common"
	"github.com/dmitrijs2005/gophcatalog/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the access token claims: sub carries the user id, exp and iat
// the validity window.
type Claims struct {
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Verifier validates access tokens.
type Verifier interface {
	Verify(token string, now time.Time) (*Claims, error)
}

// TokenManager mints and checks HS256 access tokens and generates opaque
// refresh tokens. It is immutable and safe for concurrent use.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}
	return &TokenManager{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}, nil
}

func (m *TokenManager) AccessTTL() time.Duration  { return m.accessTTL }
func (m *TokenManager) RefreshTTL() time.Duration { return m.refreshTTL }

// IssueAccessToken signs a token for the user valid from now for the access
// lifetime. Identical inputs produce identical tokens.
func (m *TokenManager) IssueAccessToken(userID uuid.UUID, username string, role models.Role, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
	})

	s, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return s, nil
}

// NewRefreshToken returns a fresh random refresh token value.
func (m *TokenManager) NewRefreshToken() string {
	return uuid.NewString()
}

// Verify checks the signature (HS256 only) and that exp is after now.
// Every failure is reported as common.ErrInvalidToken.
func (m *TokenManager) Verify(tokenString string, now time.Time) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || !claims.Role.Valid() {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
