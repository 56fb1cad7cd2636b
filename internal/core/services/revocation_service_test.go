package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/smartentrance/backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevoke_RejectsOlderTokensOnly(t *testing.T) {
	repo := newFakeRevocationRepo()
	revoker := NewRevocationService(repo, 30*24*time.Hour)
	userID := uuid.New()

	before := time.Now().Add(-time.Minute)
	assert.False(t, revoker.IsRevoked(userID, before), "no revocation recorded yet")

	require.NoError(t, revoker.Revoke(context.Background(), userID))

	assert.True(t, revoker.IsRevoked(userID, before))
	assert.True(t, revoker.IsRevoked(userID, time.Now().Add(-time.Second)))
	assert.False(t, revoker.IsRevoked(userID, time.Now().Add(time.Second)),
		"tokens minted after the revocation stay valid")

	assert.False(t, revoker.IsRevoked(uuid.New(), before), "other users unaffected")
}

func TestRevoke_SurvivesRestartViaDurableLog(t *testing.T) {
	repo := newFakeRevocationRepo()
	revoker := NewRevocationService(repo, 30*24*time.Hour)
	userID := uuid.New()
	issued := time.Now().Add(-time.Minute)

	require.NoError(t, revoker.Revoke(context.Background(), userID))
	require.True(t, revoker.IsRevoked(userID, issued))

	// a fresh process knows nothing until it loads the log
	restarted := NewRevocationService(repo, 30*24*time.Hour)
	assert.False(t, restarted.IsRevoked(userID, issued))

	snapshot, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	restarted.LoadRevocations(snapshot)

	assert.True(t, restarted.IsRevoked(userID, issued))
}

func TestRevoke_DurableFailureStillRevokesInProcess(t *testing.T) {
	repo := newFakeRevocationRepo()
	repo.appendErr = errors.New("disk full")
	revoker := NewRevocationService(repo, 30*24*time.Hour)
	userID := uuid.New()
	issued := time.Now().Add(-time.Minute)

	err := revoker.Revoke(context.Background(), userID)
	require.Error(t, err, "the degraded write must be surfaced")

	assert.True(t, revoker.IsRevoked(userID, issued),
		"in-memory revocation takes effect regardless of the durable write")
	assert.Empty(t, repo.entries)
}

func TestRevoke_PrunesEntriesBeyondRememberWindow(t *testing.T) {
	repo := newFakeRevocationRepo()
	window := time.Hour
	stale := uuid.New()
	repo.entries = append(repo.entries, entryAgo(stale, 2*time.Hour))
	fresh := uuid.New()
	repo.entries = append(repo.entries, entryAgo(fresh, time.Minute))

	revoker := NewRevocationService(repo, window)
	require.NoError(t, revoker.Revoke(context.Background(), uuid.New()))

	snapshot, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, snapshot, stale, "entries older than the remember window are pruned")
	assert.Contains(t, snapshot, fresh)
}

func TestLoadRevocations_KeepsNewestInstant(t *testing.T) {
	repo := newFakeRevocationRepo()
	revoker := NewRevocationService(repo, time.Hour)
	userID := uuid.New()

	require.NoError(t, revoker.Revoke(context.Background(), userID))
	issuedAfter := time.Now().Add(time.Second)

	// merging an older snapshot must not roll the index backwards
	revoker.LoadRevocations(map[uuid.UUID]int64{
		userID: time.Now().Add(-time.Hour).UnixMilli(),
	})

	assert.True(t, revoker.IsRevoked(userID, time.Now().Add(-time.Minute)))
	assert.False(t, revoker.IsRevoked(userID, issuedAfter))
}

func entryAgo(userID uuid.UUID, age time.Duration) domain.RevocationEntry {
	return domain.RevocationEntry{
		UserID:    userID,
		RevokedAt: time.Now().Add(-age).UnixMilli(),
	}
}
