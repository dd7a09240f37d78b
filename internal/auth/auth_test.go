package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	s := New("rahasia")
	hash, err := s.HashPassword("password123")
	require.NoError(t, err)
	require.NotEqual(t, "password123", hash)

	require.True(t, s.CheckPassword(hash, "password123"))
	require.False(t, s.CheckPassword(hash, "password124"))
}

func TestTokenRoundTrip(t *testing.T) {
	s := New("rahasia")
	token, err := s.IssueToken("budi@mail.com")
	require.NoError(t, err)

	sub, err := s.VerifyToken(token)
	require.NoError(t, err)
	require.Equal(t, "budi@mail.com", sub)
}

func TestTokenExpired(t *testing.T) {
	s := New("rahasia")
	token, err := s.IssueToken("budi@mail.com")
	require.NoError(t, err)

	// maju 25 jam: lewat TTL 24 jam
	s.now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	_, err = s.VerifyToken(token)
	require.Error(t, err)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := New("rahasia").IssueToken("budi@mail.com")
	require.NoError(t, err)

	_, err = New("rahasia-lain").VerifyToken(token)
	require.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	_, err := New("rahasia").VerifyToken("bukan.token.jwt")
	require.Error(t, err)
}
