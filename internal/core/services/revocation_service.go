package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/smartentrance/backend/internal/core/domain"
	"github.com/smartentrance/backend/internal/core/ports"
)

// revocationService keeps the last revocation instant per user in an
// expiring in-memory index, mirrored to a durable append log. The index
// TTL equals the maximum remembered-session window: an entry that aged
// out can no longer reject any live token, since no token outlives the
// window. The index is process-local and must be warmed from the log
// via LoadRevocations before serving authentication checks.
type revocationService struct {
	index          *expirable.LRU[uuid.UUID, int64]
	revocationRepo ports.RevocationRepository
	rememberWindow time.Duration
}

func NewRevocationService(revocationRepo ports.RevocationRepository, rememberWindow time.Duration) ports.TokenRevoker {
	return &revocationService{
		index:          expirable.NewLRU[uuid.UUID, int64](0, nil, rememberWindow),
		revocationRepo: revocationRepo,
		rememberWindow: rememberWindow,
	}
}

func (s *revocationService) Revoke(ctx context.Context, userID uuid.UUID) error {
	now := time.Now().UnixMilli()

	// In-memory first: the revocation must hold for this process even
	// when the durable write below fails.
	s.index.Add(userID, now)

	entry := domain.RevocationEntry{UserID: userID, RevokedAt: now}
	if err := s.revocationRepo.Append(ctx, entry); err != nil {
		log.Printf("revocation for user %s not persisted, other instances will not see it: %v", userID, err)
		return fmt.Errorf("failed to persist revocation: %w", err)
	}

	threshold := now - s.rememberWindow.Milliseconds()
	if err := s.revocationRepo.DeleteOlderThan(ctx, threshold); err != nil {
		log.Printf("failed to prune revocation log: %v", err)
	}

	return nil
}

func (s *revocationService) IsRevoked(userID uuid.UUID, issuedAt time.Time) bool {
	lastRevocation, ok := s.index.Get(userID)
	if !ok {
		return false
	}
	return issuedAt.UnixMilli() < lastRevocation
}

func (s *revocationService) LoadRevocations(snapshot map[uuid.UUID]int64) {
	for userID, revokedAt := range snapshot {
		if existing, ok := s.index.Get(userID); ok && existing >= revokedAt {
			continue
		}
		s.index.Add(userID, revokedAt)
	}
}
