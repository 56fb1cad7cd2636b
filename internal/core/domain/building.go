package domain

import (
	"time"

	"github.com/google/uuid"
)

type Building struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	ManagerID uuid.UUID `json:"manager_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Unit is an occupiable subdivision of a building. Its building never
// changes after creation; the responsible user link may be nil.
type Unit struct {
	ID                uuid.UUID  `json:"id"`
	BuildingID        uuid.UUID  `json:"building_id"`
	UnitNumber        int        `json:"unit_number"`
	ResponsibleUserID *uuid.UUID `json:"responsible_user_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}
