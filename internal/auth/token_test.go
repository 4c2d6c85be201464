package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	tok, err := CreateToken(secret, "asha@example.com", time.Hour)
	require.NoError(t, err)

	email, err := ParseToken(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", email)
}

func TestParseToken_Rejects(t *testing.T) {
	expired, err := CreateToken(secret, "a@example.com", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(secret, expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, err := CreateToken([]byte("other"), "a@example.com", time.Hour)
	require.NoError(t, err)
	_, err = ParseToken(secret, other)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"email": "a@example.com"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ParseToken(secret, none)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken(secret, "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMissingSecret(t *testing.T) {
	_, err := CreateToken(nil, "a@example.com", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
	_, err = ParseToken(nil, "x")
	assert.ErrorIs(t, err, ErrMissingSecret)
}
