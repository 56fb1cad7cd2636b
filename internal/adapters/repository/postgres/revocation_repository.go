package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/smartentrance/backend/internal/core/domain"
	"github.com/smartentrance/backend/internal/core/ports"
)

type revocationRepository struct {
	db *sql.DB
}

func NewRevocationRepository(db *sql.DB) ports.RevocationRepository {
	return &revocationRepository{db: db}
}

func (r *revocationRepository) Append(ctx context.Context, entry domain.RevocationEntry) error {
	query := `INSERT INTO revocations (user_id, revoked_at_ms) VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, query, entry.UserID, entry.RevokedAt)
	if err != nil {
		return fmt.Errorf("failed to append revocation: %w", err)
	}
	return nil
}

func (r *revocationRepository) DeleteOlderThan(ctx context.Context, threshold int64) error {
	query := `DELETE FROM revocations WHERE revoked_at_ms < $1`
	_, err := r.db.ExecContext(ctx, query, threshold)
	if err != nil {
		return fmt.Errorf("failed to prune revocations: %w", err)
	}
	return nil
}

func (r *revocationRepository) LoadAll(ctx context.Context) (map[uuid.UUID]int64, error) {
	query := `SELECT user_id, MAX(revoked_at_ms) FROM revocations GROUP BY user_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load revocations: %w", err)
	}
	defer rows.Close()

	snapshot := make(map[uuid.UUID]int64)
	for rows.Next() {
		var userID uuid.UUID
		var revokedAt int64
		if err := rows.Scan(&userID, &revokedAt); err != nil {
			return nil, fmt.Errorf("failed to scan revocation: %w", err)
		}
		snapshot[userID] = revokedAt
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating revocations: %w", err)
	}
	return snapshot, nil
}
