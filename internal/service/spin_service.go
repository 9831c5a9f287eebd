package service

import (
	"context"
	"errors"
	"time"

	"petfarm_webapp/internal/config"
	"petfarm_webapp/internal/domain"
	"petfarm_webapp/internal/game"
	"petfarm_webapp/internal/metrics"
	"petfarm_webapp/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrFreeSpinNotReady = errors.New("free spin not available yet")

// SpinService runs the wheel. The draw is server-side; the response carries
// the winning index and final angle so the client can only animate to it.
type SpinService struct {
	db       *pgxpool.Pool
	cfg      config.GameConfig
	spinRepo *repository.SpinRepository
	balance  *BalanceService
}

func NewSpinService(db *pgxpool.Pool, cfg config.GameConfig) *SpinService {
	return &SpinService{
		db:       db,
		cfg:      cfg,
		spinRepo: repository.NewSpinRepository(db),
		balance:  NewBalanceService(db),
	}
}

// WheelState is the wheel screen payload.
type WheelState struct {
	Segments       []domain.SpinSegment `json:"segments"`
	SpinCost       domain.Money         `json:"spin_cost"`
	CanFreeSpin    bool                 `json:"can_free_spin"`
	NextFreeSpinAt *time.Time           `json:"next_free_spin_at,omitempty"`
}

// GetWheel returns the segment layout and the user's free-spin window.
func (s *SpinService) GetWheel(ctx context.Context, userID int64) (*WheelState, error) {
	segments, err := s.spinRepo.GetSegments(ctx)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		segments = game.DefaultSegments()
	}

	last, err := s.spinRepo.GetLastFreeSpinAt(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	state := &WheelState{
		Segments:    segments,
		SpinCost:    domain.Money(s.cfg.PaidSpinCost).Round2(),
		CanFreeSpin: game.CanFreeSpin(last, now),
	}
	if !state.CanFreeSpin {
		next := game.NextFreeSpinAt(last, now)
		state.NextFreeSpinAt = &next
	}
	return state, nil
}

// SpinResult is one settled draw.
type SpinResult struct {
	SpinID       string       `json:"spin_id"`
	WinningIndex int          `json:"winning_index"`
	SpinAngle    float64      `json:"spin_angle"`
	AmountWon    domain.Money `json:"amount_won"`
	IsFree       bool         `json:"is_free"`
	NewBalance   domain.Money `json:"new_balance"`
}

// Spin charges the variant's cost (free spins consume the 24h window under
// lock), draws, and credits the win — all in one transaction.
func (s *SpinService) Spin(ctx context.Context, userID int64, isFree bool) (*SpinResult, error) {
	segments, err := s.spinRepo.GetSegments(ctx)
	if err != nil {
		return nil, err
	}
	wheel := game.NewWheel(segments)

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now()
	spinID := uuid.NewString()
	result := &SpinResult{SpinID: spinID, IsFree: isFree}

	if isFree {
		last, err := s.spinRepo.LastFreeSpinAt(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
		if !game.CanFreeSpin(last, now) {
			return nil, ErrFreeSpinNotReady
		}
		if err := s.spinRepo.SetLastFreeSpinWithTx(ctx, tx, userID, now); err != nil {
			return nil, err
		}
	} else {
		cost := domain.Money(s.cfg.PaidSpinCost).Round2()
		if _, err := s.balance.DebitWithTx(ctx, tx, userID, cost, domain.TxSpinCost,
			map[string]interface{}{"spin_id": spinID}); err != nil {
			return nil, err
		}
	}

	seg := wheel.Spin()
	result.WinningIndex = wheel.WinningIndex
	result.SpinAngle = wheel.SpinAngle
	result.AmountWon = wheel.AmountWon()

	if result.AmountWon > 0 {
		result.NewBalance, err = s.balance.CreditWithTx(ctx, tx, userID, result.AmountWon, domain.TxSpinWin,
			map[string]interface{}{"spin_id": spinID, "segment_id": seg.ID, "label": seg.Label})
		if err != nil {
			return nil, err
		}
	} else {
		result.NewBalance, err = s.balance.GetBalanceWithTx(ctx, tx, userID)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	variant := "paid"
	if isFree {
		variant = "free"
	}
	metrics.SpinsTotal.WithLabelValues(variant).Inc()

	return result, nil
}
