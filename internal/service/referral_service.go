package service

import (
	"context"
	"errors"

	"petfarm_webapp/internal/domain"
	"petfarm_webapp/internal/game"
	"petfarm_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrAlreadyReferred = errors.New("already referred")
	ErrSelfReferral    = errors.New("cannot use your own code")
	ErrInvalidCode     = errors.New("invalid referral code")
)

// ReferralService serves the ladder view and referral-code application.
// Commission payout itself lives on the claim path in PetService.
type ReferralService struct {
	db           *pgxpool.Pool
	userRepo     *repository.UserRepository
	referralRepo *repository.ReferralRepository
}

func NewReferralService(db *pgxpool.Pool) *ReferralService {
	return &ReferralService{
		db:           db,
		userRepo:     repository.NewUserRepository(db),
		referralRepo: repository.NewReferralRepository(db),
	}
}

// Overview is the referral screen payload.
type Overview struct {
	Code        string                      `json:"code"`
	Link        string                      `json:"link"`
	Levels      []domain.ReferralLevelStats `json:"levels"`
	TotalEarned domain.Money                `json:"total_earned"`
}

// GetOverview builds the five-level ladder for the user.
func (s *ReferralService) GetOverview(ctx context.Context, userID int64, botUsername string) (*Overview, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	levels, err := s.referralRepo.GetLevelConfigs(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.referralRepo.CountActiveByLevel(ctx, userID, domain.MaxReferralDepth)
	if err != nil {
		return nil, err
	}
	earned, err := s.referralRepo.EarnedByLevel(ctx, userID)
	if err != nil {
		return nil, err
	}

	var total domain.Money
	for _, e := range earned {
		total += e
	}

	return &Overview{
		Code:        user.ReferralCode,
		Link:        "https://t.me/" + botUsername + "?startapp=ref_" + user.ReferralCode,
		Levels:      game.BuildReferralLadder(levels, counts, earned),
		TotalEarned: total.Round2(),
	}, nil
}

// ApplyCode links the user to the code owner's downline, once.
func (s *ReferralService) ApplyCode(ctx context.Context, userID int64, code string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.ReferredBy != nil {
		return ErrAlreadyReferred
	}

	referrerID, err := s.userRepo.GetByReferralCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvalidCode
		}
		return err
	}
	if referrerID == userID {
		return ErrSelfReferral
	}

	if err := s.referralRepo.CreateReferral(ctx, referrerID, userID); err != nil {
		return err
	}
	return s.userRepo.SetReferredBy(ctx, userID, referrerID)
}
