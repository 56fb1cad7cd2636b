package domain

import (
	"time"

	"github.com/google/uuid"
)

// Poll is a time-windowed question posed to a building's units. The
// window is fixed at creation and never updated afterwards.
type Poll struct {
	ID          uuid.UUID    `json:"id"`
	BuildingID  uuid.UUID    `json:"building_id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	StartAt     time.Time    `json:"start_at"`
	EndAt       time.Time    `json:"end_at"`
	Active      bool         `json:"active"`
	CreatedBy   uuid.UUID    `json:"created_by"`
	Options     []PollOption `json:"options"`
	CreatedAt   time.Time    `json:"created_at"`
}

type PollOption struct {
	ID        uuid.UUID `json:"id"`
	PollID    uuid.UUID `json:"poll_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Option returns the poll option with the given id, or nil when the id
// does not belong to this poll.
func (p *Poll) Option(id uuid.UUID) *PollOption {
	for i := range p.Options {
		if p.Options[i].ID == id {
			return &p.Options[i]
		}
	}
	return nil
}
