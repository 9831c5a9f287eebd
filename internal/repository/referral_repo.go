package repository

import (
	"context"

	"petfarm_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReferralRepository struct {
	db *pgxpool.Pool
}

func NewReferralRepository(db *pgxpool.Pool) *ReferralRepository {
	return &ReferralRepository{db: db}
}

// GetLevelConfigs loads the commission ladder; the seed migration inserts
// the defaults so this is never empty in a provisioned database.
func (r *ReferralRepository) GetLevelConfigs(ctx context.Context) ([]domain.ReferralLevelConfig, error) {
	rows, err := r.db.Query(ctx,
		`SELECT level, percent, unlock_threshold FROM referral_levels ORDER BY level`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []domain.ReferralLevelConfig
	for rows.Next() {
		var lvl domain.ReferralLevelConfig
		if err := rows.Scan(&lvl.Level, &lvl.Percent, &lvl.UnlockThreshold); err != nil {
			return nil, err
		}
		levels = append(levels, lvl)
	}
	if len(levels) == 0 {
		levels = domain.DefaultReferralLevels
	}
	return levels, rows.Err()
}

// CreateReferral links a referred user to their upline, once.
func (r *ReferralRepository) CreateReferral(ctx context.Context, referrerID, referredID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO referrals (referrer_id, referred_id)
		 VALUES ($1, $2)
		 ON CONFLICT (referred_id) DO NOTHING`,
		referrerID, referredID)
	return err
}

// MarkActiveWithTx flips the referral to active when the referred user buys
// their first pet. Active referrals are what unlock ladder levels.
func (r *ReferralRepository) MarkActiveWithTx(ctx context.Context, tx pgx.Tx, referredID int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE referrals SET active = true WHERE referred_id = $1 AND NOT active`,
		referredID)
	return err
}

// UplineChain walks referred_by up to maxDepth levels; index 0 is the direct
// referrer (ladder level 1).
func (r *ReferralRepository) UplineChain(ctx context.Context, tx pgx.Tx, userID int64, maxDepth int) ([]int64, error) {
	rows, err := tx.Query(ctx,
		`WITH RECURSIVE upline AS (
			SELECT u.referred_by AS id, 1 AS depth
			FROM users u WHERE u.id = $1 AND u.referred_by IS NOT NULL
			UNION ALL
			SELECT u.referred_by, up.depth + 1
			FROM users u
			JOIN upline up ON u.id = up.id
			WHERE u.referred_by IS NOT NULL AND up.depth < $2
		)
		SELECT id FROM upline ORDER BY depth`,
		userID, maxDepth)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chain []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		chain = append(chain, id)
	}
	return chain, rows.Err()
}

// ActiveDirectCount counts level-1 active referrals for an upline. Used both
// for ladder display and for the unlock check on commission payout.
func (r *ReferralRepository) ActiveDirectCount(ctx context.Context, tx pgx.Tx, uplineID int64) (int, error) {
	var n int
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM referrals WHERE referrer_id = $1 AND active`,
		uplineID).Scan(&n)
	return n, err
}

// CountActiveByLevel counts active referrals at each ladder depth of the
// user's downline tree.
func (r *ReferralRepository) CountActiveByLevel(ctx context.Context, userID int64, maxDepth int) (map[int]int, error) {
	rows, err := r.db.Query(ctx,
		`WITH RECURSIVE downline AS (
			SELECT referred_id, active, 1 AS depth
			FROM referrals WHERE referrer_id = $1
			UNION ALL
			SELECT r.referred_id, r.active, d.depth + 1
			FROM referrals r
			JOIN downline d ON r.referrer_id = d.referred_id
			WHERE d.depth < $2
		)
		SELECT depth, COUNT(*) FROM downline WHERE active GROUP BY depth`,
		userID, maxDepth)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var depth, n int
		if err := rows.Scan(&depth, &n); err != nil {
			return nil, err
		}
		counts[depth] = n
	}
	return counts, rows.Err()
}

// AddEarningsWithTx accumulates commission per ladder level.
func (r *ReferralRepository) AddEarningsWithTx(ctx context.Context, tx pgx.Tx, userID int64, level int, amount domain.Money) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO referral_earnings (user_id, level, earned)
		 VALUES ($1, $2, $3::numeric)
		 ON CONFLICT (user_id, level)
		 DO UPDATE SET earned = ROUND(referral_earnings.earned + $3::numeric, 2)`,
		userID, level, amount.String())
	return err
}

// EarnedByLevel returns cumulative commission per ladder level.
func (r *ReferralRepository) EarnedByLevel(ctx context.Context, userID int64) (map[int]domain.Money, error) {
	rows, err := r.db.Query(ctx,
		`SELECT level, earned FROM referral_earnings WHERE user_id = $1`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	earned := make(map[int]domain.Money)
	for rows.Next() {
		var (
			level  int
			amount domain.Money
		)
		if err := rows.Scan(&level, &amount); err != nil {
			return nil, err
		}
		earned[level] = amount
	}
	return earned, rows.Err()
}
