package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizhub-api/internal/auth"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, salt, err := auth.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.Len(t, hash, 32)
	assert.Len(t, salt, 16)

	assert.True(t, auth.VerifyPassword("correct horse battery staple", hash, salt))
	assert.False(t, auth.VerifyPassword("correct horse battery stable", hash, salt))
	assert.False(t, auth.VerifyPassword("", hash, salt))
}

func TestHashPasswordUsesFreshSalt(t *testing.T) {
	h1, s1, err := auth.HashPassword("secret")
	require.NoError(t, err)
	h2, s2, err := auth.HashPassword("secret")
	require.NoError(t, err)

	assert.NotEqual(t, s1, s2)
	assert.NotEqual(t, h1, h2)
}

func TestVerifyPasswordWithoutStoredCredentials(t *testing.T) {
	assert.False(t, auth.VerifyPassword("secret", nil, nil))
}
