package service

import (
	"context"
	"errors"

	"petfarm_webapp/internal/domain"
	"petfarm_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidAmount     = errors.New("invalid amount")
)

// BalanceService owns every balance move. A move is a row lock, an adjusted
// balance and a journal entry in one database transaction; nothing else in
// the codebase writes users.balance.
type BalanceService struct {
	db              *pgxpool.Pool
	userRepo        *repository.UserRepository
	transactionRepo *repository.TransactionRepository
}

func NewBalanceService(db *pgxpool.Pool) *BalanceService {
	return &BalanceService{
		db:              db,
		userRepo:        repository.NewUserRepository(db),
		transactionRepo: repository.NewTransactionRepository(db),
	}
}

// GetBalance returns the user's current balance.
func (s *BalanceService) GetBalance(ctx context.Context, userID int64) (domain.Money, error) {
	balance, err := s.userRepo.GetBalance(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrUserNotFound
	}
	return balance, err
}

// GetBalanceWithTx reads the balance inside an existing transaction.
func (s *BalanceService) GetBalanceWithTx(ctx context.Context, tx pgx.Tx, userID int64) (domain.Money, error) {
	var balance domain.Money
	err := tx.QueryRow(ctx, `SELECT balance FROM users WHERE id = $1`, userID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrUserNotFound
	}
	return balance, err
}

// DebitWithTx deducts inside an existing transaction and journals the move.
func (s *BalanceService) DebitWithTx(ctx context.Context, tx pgx.Tx, userID int64, amount domain.Money, txType string, meta map[string]interface{}) (domain.Money, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	newBalance, err := s.userRepo.AdjustBalanceWithTx(ctx, tx, userID, -amount)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientFunds) {
			var exists bool
			_ = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
			if !exists {
				return 0, ErrUserNotFound
			}
			return 0, ErrInsufficientFunds
		}
		return 0, err
	}

	entry := &domain.Transaction{UserID: userID, Type: txType, Amount: -amount, Meta: meta}
	if err := s.transactionRepo.CreateWithTx(ctx, tx, entry); err != nil {
		return 0, err
	}
	return newBalance, nil
}

// CreditWithTx adds inside an existing transaction and journals the move.
func (s *BalanceService) CreditWithTx(ctx context.Context, tx pgx.Tx, userID int64, amount domain.Money, txType string, meta map[string]interface{}) (domain.Money, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	newBalance, err := s.userRepo.AdjustBalanceWithTx(ctx, tx, userID, amount)
	if err != nil {
		// a credit can only miss the RETURNING row when the user is gone
		if errors.Is(err, repository.ErrInsufficientFunds) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	entry := &domain.Transaction{UserID: userID, Type: txType, Amount: amount, Meta: meta}
	if err := s.transactionRepo.CreateWithTx(ctx, tx, entry); err != nil {
		return 0, err
	}
	return newBalance, nil
}

// Credit runs CreditWithTx in its own transaction.
func (s *BalanceService) Credit(ctx context.Context, userID int64, amount domain.Money, txType string, meta map[string]interface{}) (domain.Money, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	newBalance, err := s.CreditWithTx(ctx, tx, userID, amount, txType, meta)
	if err != nil {
		return 0, err
	}
	return newBalance, tx.Commit(ctx)
}

// GetTransactionHistory returns the user's recent journal entries.
func (s *BalanceService) GetTransactionHistory(ctx context.Context, userID int64, limit int) ([]*domain.Transaction, error) {
	return s.transactionRepo.GetByUserID(ctx, userID, limit)
}
