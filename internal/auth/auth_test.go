package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasherRoundTrip(t *testing.T) {
	hasher := NewPasswordHasher()

	hash, err := hasher.Hash("correct horse")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$v=19$")

	ok, err := hasher.Verify("correct horse", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("wrong horse", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = hasher.Verify("anything", "not-a-hash")
	assert.Error(t, err)
}

func TestRandomPassword(t *testing.T) {
	a, err := RandomPassword(12)
	require.NoError(t, err)
	b, err := RandomPassword(12)
	require.NoError(t, err)

	assert.Len(t, a, 12)
	assert.NotEqual(t, a, b)
	for _, r := range a {
		assert.Contains(t, randomPasswordAlphabet, string(r))
	}
}

func TestTokenManager(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Generate("3f0c9f8e-1111-2222-3333-444455556666", "grandma")
	require.NoError(t, err)

	claims, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "3f0c9f8e-1111-2222-3333-444455556666", claims.UserID)
	assert.Equal(t, "grandma", claims.Username)

	_, err = NewTokenManager("other-secret", time.Hour).Validate(token)
	assert.Error(t, err)

	expired := NewTokenManager("test-secret", -time.Minute)
	stale, err := expired.Generate("id", "name")
	require.NoError(t, err)
	_, err = tm.Validate(stale)
	assert.Error(t, err)
}
