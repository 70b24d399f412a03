package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", "urocareerz-api", 1)

	token, err := tm.GenerateToken("user-1", "mentee@example.com", "MENTEE")
	require.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "mentee@example.com", claims.Email)
	assert.Equal(t, "MENTEE", claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, time.Hour, tm.GetExpirationTime())
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", "urocareerz-api", 1).GenerateToken("user-1", "a@example.com", "ADMIN")
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", "urocareerz-api", 1).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongIssuer(t *testing.T) {
	token, err := NewTokenManager("secret", "someone-else", 1).GenerateToken("user-1", "a@example.com", "ADMIN")
	require.NoError(t, err)

	_, err = NewTokenManager("secret", "urocareerz-api", 1).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager("secret", "urocareerz-api", 1)
	past := time.Now().Add(-2 * time.Hour)
	claims := SessionClaims{
		UserID: "user-1",
		Email:  "a@example.com",
		Role:   "MENTOR",
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(past.Add(time.Hour)),
			IssuedAt:  gojwt.NewNumericDate(past),
			Issuer:    "urocareerz-api",
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_MissingRole(t *testing.T) {
	tm := NewTokenManager("secret", "urocareerz-api", 1)
	token, err := tm.GenerateToken("user-1", "a@example.com", "")
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidClaim)
}

func TestTokenManager_Garbage(t *testing.T) {
	_, err := NewTokenManager("secret", "urocareerz-api", 1).ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
