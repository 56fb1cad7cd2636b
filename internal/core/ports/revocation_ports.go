package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smartentrance/backend/internal/core/domain"
)

// RevocationRepository is the durable, append-only side of the token
// revocation cache.
type RevocationRepository interface {
	Append(ctx context.Context, entry domain.RevocationEntry) error
	DeleteOlderThan(ctx context.Context, threshold int64) error
	// LoadAll returns the newest revocation instant per user, in unix
	// milliseconds.
	LoadAll(ctx context.Context) (map[uuid.UUID]int64, error)
}

// TokenRevoker tracks "every token issued to user U before instant R is
// invalid". Revoke is immediately visible to subsequent IsRevoked calls
// within the process, even when the durable write fails.
type TokenRevoker interface {
	Revoke(ctx context.Context, userID uuid.UUID) error
	IsRevoked(userID uuid.UUID, issuedAt time.Time) bool
	LoadRevocations(snapshot map[uuid.UUID]int64)
}
