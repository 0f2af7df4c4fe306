package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chat-session/domain"
)

func TestStatusRepository_UpsertAndList(t *testing.T) {
	req := require.New(t)
	repo := NewStatusRepository(setupTestDB(t), testLogger())

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	req.NoError(repo.UpsertOnline(domain.Identity{UserID: "u1", Name: "Nina", Email: "nina@example.com"}, base))
	req.NoError(repo.UpsertOnline(domain.Identity{UserID: "u2", Name: "Omar", Email: "omar@example.com"}, base.Add(time.Minute)))

	online, err := repo.ListOnline()
	req.NoError(err)
	req.Len(online, 2)
	// Most recently seen first.
	req.Equal("u2", online[0].UserID)
	req.Equal("u1", online[1].UserID)
	req.True(online[0].IsOnline)
}

func TestStatusRepository_UpsertIsIdempotent(t *testing.T) {
	req := require.New(t)
	repo := NewStatusRepository(setupTestDB(t), testLogger())

	identity := domain.Identity{UserID: "u1", Name: "Nina", Email: "nina@example.com"}
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	req.NoError(repo.UpsertOnline(identity, base))
	req.NoError(repo.UpsertOnline(identity, base.Add(time.Hour)))

	online, err := repo.ListOnline()
	req.NoError(err)
	req.Len(online, 1)
	req.Equal(base.Add(time.Hour), online[0].LastSeen)
}

func TestStatusRepository_MarkOffline(t *testing.T) {
	req := require.New(t)
	repo := NewStatusRepository(setupTestDB(t), testLogger())

	identity := domain.Identity{UserID: "u1", Name: "Nina", Email: "nina@example.com"}
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	req.NoError(repo.UpsertOnline(identity, base))
	req.NoError(repo.MarkOffline("u1", base.Add(time.Minute)))

	online, err := repo.ListOnline()
	req.NoError(err)
	req.Empty(online)
}

func TestStatusRepository_MarkOfflineUnknownUserIsNoOp(t *testing.T) {
	repo := NewStatusRepository(setupTestDB(t), testLogger())
	require.NoError(t, repo.MarkOffline("ghost", time.Now()))
}
