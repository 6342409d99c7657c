package jwt

import (
	"testing"
	"time"

	"foodgram/domain"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	service := NewJWTServiceWithSecret("test-secret")

	token := service.GenerateTokenUser("8b0c4a1e-2f7a-4d38-9a53-3c1f1d0a6b11")
	require.NotEmpty(t, token)

	userID, err := service.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "8b0c4a1e-2f7a-4d38-9a53-3c1f1d0a6b11", userID)
}

func TestTokenSignedWithAnotherSecretIsRejected(t *testing.T) {
	token := NewJWTServiceWithSecret("first").GenerateTokenUser("user")

	_, err := NewJWTServiceWithSecret("second").GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestExpiredToken(t *testing.T) {
	claims := jwtUserClaim{
		"user",
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			Issuer:    "FOODGRAM",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWTServiceWithSecret("secret").GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}
