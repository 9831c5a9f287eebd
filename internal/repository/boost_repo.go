package repository

import (
	"context"
	"errors"
	"time"

	"petfarm_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BoostRepository struct {
	db *pgxpool.Pool
}

func NewBoostRepository(db *pgxpool.Pool) *BoostRepository {
	return &BoostRepository{db: db}
}

const activeSubscriptionQuery = `SELECT id, user_id, months, commission_percent, started_at, expires_at
	 FROM auto_claim_subscriptions
	 WHERE user_id = $1 AND expires_at > now()
	 ORDER BY expires_at DESC
	 LIMIT 1`

func scanSubscription(row pgx.Row) (*domain.AutoClaimSubscription, error) {
	var s domain.AutoClaimSubscription
	err := row.Scan(&s.ID, &s.UserID, &s.Months, &s.CommissionPercent, &s.StartedAt, &s.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetActiveSubscription returns the user's live auto-claim subscription or
// nil when none covers the current moment.
func (r *BoostRepository) GetActiveSubscription(ctx context.Context, userID int64) (*domain.AutoClaimSubscription, error) {
	return scanSubscription(r.db.QueryRow(ctx, activeSubscriptionQuery, userID))
}

// GetActiveSubscriptionWithTx is GetActiveSubscription inside the purchase
// tx. The caller must already hold the user row lock so two concurrent buys
// cannot both see no live subscription.
func (r *BoostRepository) GetActiveSubscriptionWithTx(ctx context.Context, tx pgx.Tx, userID int64) (*domain.AutoClaimSubscription, error) {
	return scanSubscription(tx.QueryRow(ctx, activeSubscriptionQuery, userID))
}

// CreateSubscriptionWithTx starts a new subscription inside the purchase tx.
func (r *BoostRepository) CreateSubscriptionWithTx(ctx context.Context, tx pgx.Tx, s *domain.AutoClaimSubscription) error {
	if s.StartedAt.IsZero() {
		s.StartedAt = time.Now()
	}
	s.ExpiresAt = s.StartedAt.AddDate(0, s.Months, 0)
	return tx.QueryRow(ctx,
		`INSERT INTO auto_claim_subscriptions (user_id, months, commission_percent, started_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		s.UserID, s.Months, s.CommissionPercent, s.StartedAt, s.ExpiresAt,
	).Scan(&s.ID)
}
