package ports

import (
	"context"

	"github.com/google/uuid"
)

// AccessControl evaluates ownership predicates over the building
// hierarchy. Every predicate is a total, side-effect-free read that
// resolves to false when any referenced entity cannot be found, so the
// authorization boundary never leaks existence through error branching.
type AccessControl interface {
	HasManagementRights(ctx context.Context, buildingID, userID uuid.UUID) bool
	HasMembership(ctx context.Context, buildingID, userID uuid.UUID) bool
	CanCastVote(ctx context.Context, pollID, unitID, userID uuid.UUID) bool
	CanManagePoll(ctx context.Context, pollID, userID uuid.UUID) bool
}
