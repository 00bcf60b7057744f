package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionToken(t *testing.T) {
	t1, err := NewSessionToken()
	require.NoError(t, err)
	t2, err := NewSessionToken()
	require.NoError(t, err)

	assert.Len(t, t1, 64)
	assert.NotEqual(t, t1, t2)
}

func TestHashSessionToken_Stable(t *testing.T) {
	raw, err := NewSessionToken()
	require.NoError(t, err)

	h := HashSessionToken(raw)
	assert.Equal(t, h, HashSessionToken(raw))
	assert.NotEqual(t, raw, h)
	assert.Len(t, h, 64) // sha256 hex
}

func TestNewAccessToken(t *testing.T) {
	access, err := NewAccessToken("secret", "alice", 15)
	require.NoError(t, err)
	require.NotEmpty(t, access.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), access.Exp, 5*time.Second)

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(access.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	assert.Equal(t, "alice", claims["sub"])
}

func TestNewAccessToken_WrongSecretRejected(t *testing.T) {
	access, err := NewAccessToken("secret", "alice", 15)
	require.NoError(t, err)

	_, err = jwt.Parse(access.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	})
	assert.Error(t, err)
}
