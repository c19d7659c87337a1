// Package token issues and verifies HS256 session tokens.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
	"github.com/ericfisherdev/marketplace/internal/domain/port/driven"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.TokenIssuer   = (*Manager)(nil)
	_ driven.TokenVerifier = (*Manager)(nil)
)

const bearerPrefix = "Bearer "

// sessionClaims is the JWT payload. exp comes from the embedded registered claims.
type sessionClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and verifies session tokens with a single process-wide secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a Manager. The secret is copied.
func NewManager(secret []byte, ttl time.Duration) *Manager {
	return &Manager{
		secret: append([]byte(nil), secret...),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns the lifetime of issued tokens.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token for the given identity that expires after the configured TTL.
func (m *Manager) Issue(userID, username string, role model.Role) (string, time.Time, error) {
	now := m.now()
	expiresAt := jwt.NewNumericDate(now.Add(m.ttl))

	claims := sessionClaims{
		UserID:   userID,
		Username: username,
		Role:     string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: expiresAt,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt.Time, nil
}

// Verify validates rawHeader, with or without the "Bearer " prefix, and
// returns its claims.
func (m *Manager) Verify(rawHeader string) (model.Claims, error) {
	raw := strings.TrimSpace(rawHeader)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, bearerPrefix))
	if raw == "" {
		return model.Claims{}, driven.ErrMissingToken
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return model.Claims{}, driven.ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return model.Claims{}, driven.ErrMalformedToken
	default:
		return model.Claims{}, fmt.Errorf("%w: %w", driven.ErrInvalidToken, err)
	}

	if claims.UserID == "" || claims.Username == "" {
		return model.Claims{}, driven.ErrMalformedToken
	}

	role, ok := model.ParseRole(claims.Role)
	if !ok {
		return model.Claims{}, driven.ErrMalformedToken
	}

	return model.Claims{
		UserID:    claims.UserID,
		Username:  claims.Username,
		Role:      role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
