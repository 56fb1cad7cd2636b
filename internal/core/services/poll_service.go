package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smartentrance/backend/internal/core/domain"
	"github.com/smartentrance/backend/internal/core/ports"
)

type pollService struct {
	pollRepo ports.PollRepository
	voteRepo ports.VoteRepository
}

func NewPollService(pollRepo ports.PollRepository, voteRepo ports.VoteRepository) ports.PollService {
	return &pollService{
		pollRepo: pollRepo,
		voteRepo: voteRepo,
	}
}

func (s *pollService) Create(ctx context.Context, input ports.CreatePollInput) (*domain.Poll, error) {
	if input.Title == "" {
		return nil, errors.New("title is required")
	}
	if input.EndAt.Before(input.StartAt) {
		return nil, domain.ErrInvalidDateRange
	}

	pollID := uuid.New()
	now := time.Now()

	poll := &domain.Poll{
		ID:          pollID,
		BuildingID:  input.BuildingID,
		Title:       input.Title,
		Description: input.Description,
		StartAt:     input.StartAt,
		EndAt:       input.EndAt,
		Active:      true,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   now,
	}

	// Blank option texts are dropped, never stored.
	for _, optText := range input.Options {
		if strings.TrimSpace(optText) == "" {
			continue
		}
		poll.Options = append(poll.Options, domain.PollOption{
			ID:        uuid.New(),
			PollID:    pollID,
			Text:      optText,
			CreatedAt: now,
		})
	}

	if err := s.pollRepo.Save(ctx, poll); err != nil {
		return nil, fmt.Errorf("failed to save poll: %w", err)
	}

	return poll, nil
}

func (s *pollService) List(ctx context.Context, buildingID uuid.UUID, filter ports.PollFilter) ([]*domain.Poll, error) {
	return s.pollRepo.ListByBuilding(ctx, buildingID, filter, time.Now())
}

func (s *pollService) GetResults(ctx context.Context, pollID, callerID uuid.UUID) (*domain.PollResults, error) {
	poll, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	counts, err := s.voteRepo.CountByOption(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}

	votedOption, err := s.voteRepo.FindVotedOption(ctx, pollID, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch caller vote: %w", err)
	}

	results := &domain.PollResults{
		Poll:          poll,
		Options:       make([]domain.PollOptionResult, 0, len(poll.Options)),
		VotedOptionID: votedOption,
	}
	for _, opt := range poll.Options {
		results.Options = append(results.Options, domain.PollOptionResult{
			OptionID:  opt.ID,
			Text:      opt.Text,
			VoteCount: counts[opt.ID],
		})
	}

	return results, nil
}

// AssertVotable is the gate the vote ledger calls before every mutation:
// the poll must be flagged active and now must fall inside its window.
func (s *pollService) AssertVotable(poll *domain.Poll, now time.Time) error {
	if !poll.Active || now.Before(poll.StartAt) || now.After(poll.EndAt) {
		return domain.ErrPollNotActive
	}
	return nil
}
