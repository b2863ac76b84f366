package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, now time.Time) *TokenManager {
	t.Helper()
	m, err := NewTokenManager("test-secret", time.Hour, "travelapi")
	require.NoError(t, err)
	m.now = func() time.Time { return now }
	return m
}

func TestNewTokenManager_Validation(t *testing.T) {
	_, err := NewTokenManager("", time.Hour, "x")
	assert.Error(t, err)
	_, err = NewTokenManager("s", 0, "x")
	assert.Error(t, err)
}

func TestTokenManager_RoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m := newTestManager(t, now)

	token, issued, err := m.Issue("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "user-1", issued.UserID())
	assert.NotEmpty(t, issued.ID)
	assert.Equal(t, now.Add(time.Hour).Unix(), issued.ExpiresAt.Unix())

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, issued.ID, claims.ID)
}

func TestTokenManager_UniqueIDs(t *testing.T) {
	m := newTestManager(t, time.Now())
	_, a, err := m.Issue("u")
	require.NoError(t, err)
	_, b, err := m.Issue("u")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestTokenManager_Expired(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m := newTestManager(t, now)
	token, _, err := m.Issue("user-1")
	require.NoError(t, err)

	m.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = m.Parse(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestTokenManager_WrongSecretOrIssuer(t *testing.T) {
	now := time.Now()
	m := newTestManager(t, now)
	token, _, err := m.Issue("user-1")
	require.NoError(t, err)

	other, err := NewTokenManager("other-secret", time.Hour, "travelapi")
	require.NoError(t, err)
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	otherIssuer, err := NewTokenManager("test-secret", time.Hour, "someone-else")
	require.NoError(t, err)
	_, err = otherIssuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsNoneAlg(t *testing.T) {
	m := newTestManager(t, time.Now())
	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		ID:        "jti",
		Issuer:    "travelapi",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Garbage(t *testing.T) {
	m := newTestManager(t, time.Now())
	_, err := m.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
