package repository

import (
	"context"
	"time"

	"petfarm_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SpinRepository struct {
	db *pgxpool.Pool
}

func NewSpinRepository(db *pgxpool.Pool) *SpinRepository {
	return &SpinRepository{db: db}
}

// GetSegments loads the wheel layout in display order. An empty table means
// the caller falls back to the built-in defaults.
func (r *SpinRepository) GetSegments(ctx context.Context) ([]domain.SpinSegment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, reward_type, amount, label, color, COALESCE(emoji, ''), weight
		 FROM spin_segments
		 ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var segments []domain.SpinSegment
	for rows.Next() {
		var s domain.SpinSegment
		if err := rows.Scan(&s.ID, &s.RewardType, &s.Amount, &s.Label, &s.Color, &s.Emoji, &s.Weight); err != nil {
			return nil, err
		}
		segments = append(segments, s)
	}
	return segments, rows.Err()
}

// LastFreeSpinAt returns when the user last used their free spin, nil if
// never, locked inside the given tx so two free spins cannot race.
func (r *SpinRepository) LastFreeSpinAt(ctx context.Context, tx pgx.Tx, userID int64) (*time.Time, error) {
	var last *time.Time
	err := tx.QueryRow(ctx,
		`SELECT last_free_spin_at FROM users WHERE id = $1 FOR UPDATE`,
		userID).Scan(&last)
	return last, err
}

// GetLastFreeSpinAt is the lock-free read used by the wheel status endpoint.
func (r *SpinRepository) GetLastFreeSpinAt(ctx context.Context, userID int64) (*time.Time, error) {
	var last *time.Time
	err := r.db.QueryRow(ctx,
		`SELECT last_free_spin_at FROM users WHERE id = $1`,
		userID).Scan(&last)
	return last, err
}

// SetLastFreeSpinWithTx stamps the start of a new free-spin window.
func (r *SpinRepository) SetLastFreeSpinWithTx(ctx context.Context, tx pgx.Tx, userID int64, at time.Time) error {
	_, err := tx.Exec(ctx,
		`UPDATE users SET last_free_spin_at = $1 WHERE id = $2`,
		at, userID)
	return err
}
