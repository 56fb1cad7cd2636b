package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/smartentrance/backend/internal/core/domain"
	"github.com/smartentrance/backend/internal/core/ports"
)

type BuildingRepository struct {
	db *sql.DB
}

func NewBuildingRepository(db *sql.DB) ports.BuildingRepository {
	return &BuildingRepository{db: db}
}

func (r *BuildingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Building, error) {
	query := `SELECT id, name, address, manager_id, created_at FROM buildings WHERE id = $1`
	building := &domain.Building{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&building.ID,
		&building.Name,
		&building.Address,
		&building.ManagerID,
		&building.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get building: %w", err)
	}
	return building, nil
}

func (r *BuildingRepository) ExistsWithManager(ctx context.Context, buildingID, managerID uuid.UUID) (bool, error) {
	query := `SELECT 1 FROM buildings WHERE id = $1 AND manager_id = $2 LIMIT 1`
	var exists int
	err := r.db.QueryRowContext(ctx, query, buildingID, managerID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check building manager: %w", err)
	}
	return true, nil
}
