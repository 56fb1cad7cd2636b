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

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

// Upsert relies on the unique index over (poll_id, unit_id): two
// concurrent casts for the same pair serialize on the index and the
// loser turns into an update of the winner's row. RETURNING hands back
// the surviving row's id and timestamp.
func (r *voteRepository) Upsert(ctx context.Context, vote *domain.Vote) error {
	query := `
		INSERT INTO votes (id, poll_id, unit_id, user_id, option_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (poll_id, unit_id) DO UPDATE
		SET option_id = EXCLUDED.option_id,
		    user_id = EXCLUDED.user_id,
		    voted_at = NOW()
		RETURNING id, voted_at
	`
	err := r.db.QueryRowContext(ctx, query,
		vote.ID, vote.PollID, vote.UnitID, vote.UserID, vote.OptionID,
	).Scan(&vote.ID, &vote.VotedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert vote: %w", err)
	}
	return nil
}

func (r *voteRepository) CountByOption(ctx context.Context, pollID uuid.UUID) (map[uuid.UUID]int64, error) {
	query := `
		SELECT option_id, COUNT(*)
		FROM votes
		WHERE poll_id = $1
		GROUP BY option_id
	`
	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int64)
	for rows.Next() {
		var optionID uuid.UUID
		var count int64
		if err := rows.Scan(&optionID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		counts[optionID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vote counts: %w", err)
	}
	return counts, nil
}

func (r *voteRepository) FindVotedOption(ctx context.Context, pollID, userID uuid.UUID) (*uuid.UUID, error) {
	query := `
		SELECT option_id
		FROM votes
		WHERE poll_id = $1 AND user_id = $2
		ORDER BY voted_at DESC
		LIMIT 1
	`
	var optionID uuid.UUID
	err := r.db.QueryRowContext(ctx, query, pollID, userID).Scan(&optionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find voted option: %w", err)
	}
	return &optionID, nil
}
