package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smartentrance/backend/internal/core/domain"
)

type PollFilter string

const (
	FilterAll     PollFilter = "ALL"
	FilterActive  PollFilter = "ACTIVE"
	FilterHistory PollFilter = "HISTORY"
)

// ParsePollFilter maps a query-string value onto a filter, defaulting
// to ALL for anything unrecognized.
func ParsePollFilter(s string) PollFilter {
	switch PollFilter(s) {
	case FilterActive:
		return FilterActive
	case FilterHistory:
		return FilterHistory
	default:
		return FilterAll
	}
}

type PollRepository interface {
	Save(ctx context.Context, poll *domain.Poll) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	ListByBuilding(ctx context.Context, buildingID uuid.UUID, filter PollFilter, now time.Time) ([]*domain.Poll, error)
}

type CreatePollInput struct {
	BuildingID  uuid.UUID
	Title       string
	Description string
	StartAt     time.Time
	EndAt       time.Time
	Options     []string
	CreatedBy   uuid.UUID
}

// PollService owns the poll lifecycle. Create assumes the caller already
// passed the management-rights guard; it does not re-check authorization.
type PollService interface {
	Create(ctx context.Context, input CreatePollInput) (*domain.Poll, error)
	List(ctx context.Context, buildingID uuid.UUID, filter PollFilter) ([]*domain.Poll, error)
	GetResults(ctx context.Context, pollID, callerID uuid.UUID) (*domain.PollResults, error)
	AssertVotable(poll *domain.Poll, now time.Time) error
}
