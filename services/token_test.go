package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenManager("secret", time.Hour)

	token, err := tokens.GenerateToken("user-1")
	require.NoError(t, err)

	userID, err := tokens.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestValidateTokenRejects(t *testing.T) {
	tokens := NewTokenManager("secret", time.Hour)

	other, err := NewTokenManager("other-secret", time.Hour).GenerateToken("user-1")
	require.NoError(t, err)
	_, err = tokens.ValidateToken(other)
	assert.ErrorIs(t, err, ErrUnauthorized)

	expired, err := NewTokenManager("secret", -time.Minute).GenerateToken("user-1")
	require.NoError(t, err)
	_, err = tokens.ValidateToken(expired)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = tokens.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
