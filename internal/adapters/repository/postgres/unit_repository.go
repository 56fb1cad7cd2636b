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

type UnitRepository struct {
	db *sql.DB
}

func NewUnitRepository(db *sql.DB) ports.UnitRepository {
	return &UnitRepository{db: db}
}

func (r *UnitRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Unit, error) {
	query := `SELECT id, building_id, unit_number, responsible_user_id, created_at FROM units WHERE id = $1`
	unit := &domain.Unit{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&unit.ID,
		&unit.BuildingID,
		&unit.UnitNumber,
		&unit.ResponsibleUserID,
		&unit.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}
	return unit, nil
}

func (r *UnitRepository) ExistsResponsibleInBuilding(ctx context.Context, buildingID, userID uuid.UUID) (bool, error) {
	query := `SELECT 1 FROM units WHERE building_id = $1 AND responsible_user_id = $2 LIMIT 1`
	var exists int
	err := r.db.QueryRowContext(ctx, query, buildingID, userID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check unit responsibility: %w", err)
	}
	return true, nil
}
