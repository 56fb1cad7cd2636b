package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartentrance/backend/internal/core/domain"
)

// BuildingRepository and UnitRepository expose the read-only collaborator
// records the authorization layer traverses. Lookups that miss return
// (nil, nil) so callers can treat "absent" and "denied" uniformly.
type BuildingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Building, error)
	ExistsWithManager(ctx context.Context, buildingID, managerID uuid.UUID) (bool, error)
}

type UnitRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Unit, error)
	ExistsResponsibleInBuilding(ctx context.Context, buildingID, userID uuid.UUID) (bool, error)
}
