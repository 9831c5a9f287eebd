package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"petfarm_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrInsufficientFunds = errors.New("insufficient funds")

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, tg_id, COALESCE(username, ''), COALESCE(first_name, ''),
	balance, max_slots, COALESCE(referral_code, ''), referred_by, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID,
		&u.TgID,
		&u.Username,
		&u.FirstName,
		&u.Balance,
		&u.MaxSlots,
		&u.ReferralCode,
		&u.ReferredBy,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByTgID(ctx context.Context, tgID int64) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE tg_id = $1`, tgID))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// Create inserts a new user with a fresh referral code and the default slot
// allotment.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	if u.MaxSlots == 0 {
		u.MaxSlots = 3
	}
	u.ReferralCode = generateReferralCode()

	return r.db.QueryRow(ctx,
		`INSERT INTO users (tg_id, username, first_name, max_slots, referral_code)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, balance, created_at`,
		u.TgID, u.Username, u.FirstName, u.MaxSlots, u.ReferralCode,
	).Scan(&u.ID, &u.Balance, &u.CreatedAt)
}

func generateReferralCode() string {
	bytes := make([]byte, 6)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// GetBalance returns the current balance without locking.
func (r *UserRepository) GetBalance(ctx context.Context, userID int64) (domain.Money, error) {
	var balance domain.Money
	err := r.db.QueryRow(ctx, `SELECT balance FROM users WHERE id = $1`, userID).Scan(&balance)
	return balance, err
}

// LockBalance reads the balance under FOR UPDATE inside the given tx.
func (r *UserRepository) LockBalance(ctx context.Context, tx pgx.Tx, userID int64) (domain.Money, error) {
	var balance domain.Money
	err := tx.QueryRow(ctx, `SELECT balance FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&balance)
	return balance, err
}

// AdjustBalanceWithTx applies a signed delta inside the given tx and rejects
// any move that would take the balance negative.
func (r *UserRepository) AdjustBalanceWithTx(ctx context.Context, tx pgx.Tx, userID int64, delta domain.Money) (domain.Money, error) {
	var newBalance domain.Money
	err := tx.QueryRow(ctx,
		`UPDATE users SET balance = ROUND(balance + $1::numeric, 2)
		 WHERE id = $2 AND balance + $1::numeric >= 0
		 RETURNING balance`,
		delta.String(), userID,
	).Scan(&newBalance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrInsufficientFunds
	}
	return newBalance, err
}

// SetReferredBy records the upline once; a second attempt is a no-op.
func (r *UserRepository) SetReferredBy(ctx context.Context, userID, referrerID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET referred_by = $1 WHERE id = $2 AND referred_by IS NULL`,
		referrerID, userID)
	return err
}

func (r *UserRepository) GetByReferralCode(ctx context.Context, code string) (int64, error) {
	var userID int64
	err := r.db.QueryRow(ctx, `SELECT id FROM users WHERE referral_code = $1`, code).Scan(&userID)
	return userID, err
}
