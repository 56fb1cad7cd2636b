package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/smartentrance/backend/internal/core/domain"
	"github.com/smartentrance/backend/internal/core/ports"
)

type voteService struct {
	pollRepo    ports.PollRepository
	unitRepo    ports.UnitRepository
	voteRepo    ports.VoteRepository
	pollService ports.PollService
	access      ports.AccessControl
}

func NewVoteService(
	pollRepo ports.PollRepository,
	unitRepo ports.UnitRepository,
	voteRepo ports.VoteRepository,
	pollService ports.PollService,
	access ports.AccessControl,
) ports.VoteService {
	return &voteService{
		pollRepo:    pollRepo,
		unitRepo:    unitRepo,
		voteRepo:    voteRepo,
		pollService: pollService,
		access:      access,
	}
}

// CastVote records the unit's current choice on a poll. The (poll, unit)
// pair holds at most one vote at any instant; a later cast replaces the
// earlier one instead of appending.
func (s *voteService) CastVote(ctx context.Context, input ports.CastVoteInput) (*ports.CastVoteResult, error) {
	poll, err := s.pollRepo.GetByID(ctx, input.PollID)
	if err != nil {
		return nil, err
	}

	unit, err := s.unitRepo.GetByID(ctx, input.UnitID)
	if err != nil {
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}
	if unit == nil {
		return nil, domain.ErrUnitNotFound
	}

	// The path carries the building id while the body carries the unit
	// id; all three ownership references must agree.
	if !s.access.CanCastVote(ctx, input.PollID, input.UnitID, input.VoterID) {
		return nil, domain.ErrAccessDenied
	}
	if poll.BuildingID != input.BuildingID || unit.BuildingID != input.BuildingID {
		return nil, domain.ErrBuildingMismatch
	}

	if err := s.pollService.AssertVotable(poll, time.Now()); err != nil {
		return nil, err
	}

	if poll.Option(input.OptionID) == nil {
		return nil, domain.ErrInvalidOption
	}

	vote := &domain.Vote{
		ID:       uuid.New(),
		PollID:   input.PollID,
		UnitID:   input.UnitID,
		UserID:   input.VoterID,
		OptionID: input.OptionID,
	}
	if err := s.voteRepo.Upsert(ctx, vote); err != nil {
		return nil, fmt.Errorf("failed to cast vote: %w", err)
	}

	return &ports.CastVoteResult{
		VoteID:     vote.ID,
		UnitNumber: unit.UnitNumber,
		VotedAt:    vote.VotedAt,
	}, nil
}
