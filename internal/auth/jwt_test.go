package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, "schoolbooks")

	token, err := m.Issue("user-1")
	require.NoError(t, err)

	userID, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour, "x").Issue("user-1")
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", time.Hour, "x").Parse(token)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	m := NewTokenManager("secret", -time.Minute, "x")
	token, err := m.Issue("user-1")
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, "x")
	_, err := m.Parse("not.a.token")
	assert.Error(t, err)
}
