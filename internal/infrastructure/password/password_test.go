package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.NoError(t, CheckPassword("password123", hash))
	assert.ErrorIs(t, CheckPassword("wrong", hash), ErrMismatch)

	assert.True(t, Matches("password123", hash))
	assert.False(t, Matches("wrong", hash))
}

func TestMatches_MalformedHash(t *testing.T) {
	// a plain string stored where a hash is expected never matches
	assert.False(t, Matches("user@example.com", "user@example.com"))
	assert.Error(t, CheckPassword("x", "not-a-bcrypt-hash"))
}
