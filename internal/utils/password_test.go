package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("pw1", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "pw1", hash)

	assert.True(t, VerifyPassword(hash, "pw1"))
	assert.False(t, VerifyPassword(hash, "pw2"))
}

func TestHashPassword_Salted(t *testing.T) {
	h1, err := HashPassword("same", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("same", bcrypt.MinCost)
	require.NoError(t, err)

	// Different salts, both verify.
	assert.NotEqual(t, h1, h2)
	assert.True(t, VerifyPassword(h1, "same"))
	assert.True(t, VerifyPassword(h2, "same"))
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	assert.False(t, VerifyPassword("", "pw"))
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "pw"))
	assert.False(t, VerifyPassword("$2a$garbage", "pw"))
}

func TestDummyHash_IsValidBcrypt(t *testing.T) {
	// The dummy hash must be parseable so the unknown-user login path runs
	// a full-cost comparison.
	err := bcrypt.CompareHashAndPassword([]byte(DummyHash), []byte("anything"))
	assert.ErrorIs(t, err, bcrypt.ErrMismatchedHashAndPassword)
}
