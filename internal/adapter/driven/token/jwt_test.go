package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
	"github.com/ericfisherdev/marketplace/internal/domain/port/driven"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestManager(now time.Time) *Manager {
	m := NewManager(testSecret, 24*time.Hour)
	m.now = func() time.Time { return now }
	return m
}

func TestManager_IssueAndVerify(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	m := newTestManager(now)

	tok, expiresAt, err := m.Issue("u-1", "alice", model.RoleSeller)
	require.NoError(t, err)
	assert.Equal(t, now.Add(24*time.Hour), expiresAt.UTC())

	for _, header := range []string{tok, "Bearer " + tok, "  Bearer " + tok + "  "} {
		claims, err := m.Verify(header)
		require.NoError(t, err)
		assert.Equal(t, "u-1", claims.UserID)
		assert.Equal(t, "alice", claims.Username)
		assert.Equal(t, model.RoleSeller, claims.Role)
		assert.True(t, claims.ExpiresAt.Equal(expiresAt))
	}
}

func TestManager_VerifyMissing(t *testing.T) {
	m := newTestManager(time.Now())

	for _, header := range []string{"", "   ", "Bearer ", "Bearer    "} {
		_, err := m.Verify(header)
		assert.ErrorIs(t, err, driven.ErrMissingToken, "header %q", header)
	}
}

func TestManager_VerifyTampered(t *testing.T) {
	m := newTestManager(time.Now())

	tok, _, err := m.Issue("u-1", "alice", model.RoleBuyer)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)

	// Flip one character of the payload segment.
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = m.Verify(tampered)
	assert.ErrorIs(t, err, driven.ErrInvalidToken)

	_, err = m.Verify("not-a-jwt")
	assert.ErrorIs(t, err, driven.ErrInvalidToken)
}

func TestManager_VerifyWrongSecret(t *testing.T) {
	other := NewManager([]byte("ffffffffffffffffffffffffffffffff"), time.Hour)

	tok, _, err := other.Issue("u-1", "alice", model.RoleBuyer)
	require.NoError(t, err)

	_, err = newTestManager(time.Now()).Verify(tok)
	assert.ErrorIs(t, err, driven.ErrInvalidToken)
}

func TestManager_VerifyExpired(t *testing.T) {
	issuedAt := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	tok, _, err := newTestManager(issuedAt).Issue("u-1", "alice", model.RoleBuyer)
	require.NoError(t, err)

	_, err = newTestManager(issuedAt.Add(25 * time.Hour)).Verify(tok)
	assert.ErrorIs(t, err, driven.ErrExpiredToken)

	_, err = newTestManager(issuedAt.Add(23 * time.Hour)).Verify(tok)
	assert.NoError(t, err)
}

func TestManager_VerifyMissingClaims(t *testing.T) {
	now := time.Now()
	m := newTestManager(now)
	exp := jwt.NewNumericDate(now.Add(time.Hour))

	tests := []struct {
		name   string
		claims sessionClaims
	}{
		{
			name:   "no user id",
			claims: sessionClaims{Username: "alice", Role: "buyer", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp}},
		},
		{
			name:   "no username",
			claims: sessionClaims{UserID: "u-1", Role: "buyer", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp}},
		},
		{
			name:   "no expiry",
			claims: sessionClaims{UserID: "u-1", Username: "alice", Role: "buyer"},
		},
		{
			name:   "unknown role",
			claims: sessionClaims{UserID: "u-1", Username: "alice", Role: "admin", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tt.claims).SignedString(testSecret)
			require.NoError(t, err)

			_, err = m.Verify(tok)
			assert.ErrorIs(t, err, driven.ErrMalformedToken)
		})
	}
}

func TestManager_VerifyRejectsOtherAlgorithms(t *testing.T) {
	m := newTestManager(time.Now())
	claims := sessionClaims{
		UserID:           "u-1",
		Username:         "alice",
		Role:             "buyer",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Verify(none)
	assert.ErrorIs(t, err, driven.ErrInvalidToken)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(testSecret)
	require.NoError(t, err)
	_, err = m.Verify(hs512)
	assert.ErrorIs(t, err, driven.ErrInvalidToken)
}
