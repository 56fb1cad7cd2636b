package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vote is a unit's current choice within a poll. At most one vote row
// exists per (poll, unit) pair; a later cast for the same pair replaces
// the option, voter and timestamp in place.
type Vote struct {
	ID       uuid.UUID `json:"id"`
	PollID   uuid.UUID `json:"poll_id"`
	UnitID   uuid.UUID `json:"unit_id"`
	UserID   uuid.UUID `json:"user_id"`
	OptionID uuid.UUID `json:"option_id"`
	VotedAt  time.Time `json:"voted_at"`
}
