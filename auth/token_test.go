package auth

import (
	"testing"
	"time"

	"chat-session/domain"

	"github.com/stretchr/testify/require"
)

func TestSessions_MintResolveRoundTrip(t *testing.T) {
	req := require.New(t)
	sessions := NewSessions([]byte("secret"), time.Hour)
	identity := domain.Identity{UserID: "user-1", Name: "Nina", Email: "nina@example.com"}

	token, err := sessions.Mint(identity, time.Now())
	req.NoError(err)

	resolved, err := sessions.Resolve(token)
	req.NoError(err)
	req.Equal(identity, resolved)
}

func TestSessions_ExpiredTokenRejected(t *testing.T) {
	req := require.New(t)
	sessions := NewSessions([]byte("secret"), time.Minute)

	token, err := sessions.Mint(domain.Identity{UserID: "user-1"}, time.Now().Add(-2*time.Minute))
	req.NoError(err)

	_, err = sessions.Resolve(token)
	req.Error(err)
}

func TestSessions_WrongSecretRejected(t *testing.T) {
	req := require.New(t)
	minter := NewSessions([]byte("secret-a"), time.Hour)
	verifier := NewSessions([]byte("secret-b"), time.Hour)

	token, err := minter.Mint(domain.Identity{UserID: "user-1"}, time.Now())
	req.NoError(err)

	_, err = verifier.Resolve(token)
	req.Error(err)
}

func TestSessions_GarbageTokenRejected(t *testing.T) {
	sessions := NewSessions([]byte("secret"), time.Hour)
	_, err := sessions.Resolve("not.a.jwt")
	require.Error(t, err)
}
