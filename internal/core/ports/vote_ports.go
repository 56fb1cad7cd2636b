package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smartentrance/backend/internal/core/domain"
)

type VoteRepository interface {
	// Upsert inserts the vote or, when a row already exists for the same
	// (poll, unit) pair, replaces its option, voter and timestamp. The
	// vote's ID and VotedAt are set from the committed row, so on
	// conflict the caller observes the surviving row's identity.
	Upsert(ctx context.Context, vote *domain.Vote) error
	CountByOption(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]int64, error)
	FindVotedOption(ctx context.Context, pollID, userID uuid.UUID) (*uuid.UUID, error)
}

type CastVoteInput struct {
	BuildingID uuid.UUID
	PollID     uuid.UUID
	UnitID     uuid.UUID
	OptionID   uuid.UUID
	VoterID    uuid.UUID
}

type CastVoteResult struct {
	VoteID     uuid.UUID `json:"vote_id"`
	UnitNumber int       `json:"unit_number"`
	VotedAt    time.Time `json:"voted_at"`
}

type VoteService interface {
	CastVote(ctx context.Context, input CastVoteInput) (*CastVoteResult, error)
}
