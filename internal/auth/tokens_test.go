package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tokenSecret = "token-test-secret"

func TestUserTokenRoundTrip(t *testing.T) {
	token, err := CreateUserToken(tokenSecret, 7, false)
	require.NoError(t, err)

	claims, err := VerifyToken(tokenSecret, token)
	require.NoError(t, err)

	require.NotNil(t, claims.UserID)
	assert.Equal(t, int64(7), *claims.UserID)
	assert.Nil(t, claims.OwnerID)
	assert.False(t, claims.IsOwner())
	assert.False(t, claims.IsAdmin)
}

func TestOwnerTokenRoundTrip(t *testing.T) {
	token, err := CreateOwnerToken(tokenSecret, 3, true)
	require.NoError(t, err)

	claims, err := VerifyToken(tokenSecret, token)
	require.NoError(t, err)

	require.NotNil(t, claims.OwnerID)
	assert.Equal(t, int64(3), *claims.OwnerID)
	assert.Nil(t, claims.UserID)
	assert.True(t, claims.IsOwner())
	assert.True(t, claims.IsAdmin)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token, err := CreateUserToken(tokenSecret, 7, false)
	require.NoError(t, err)

	_, err = VerifyToken("another-secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Garbage(t *testing.T) {
	_, err := VerifyToken(tokenSecret, "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
