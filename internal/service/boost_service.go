package service

import (
	"context"
	"errors"
	"time"

	"petfarm_webapp/internal/config"
	"petfarm_webapp/internal/domain"
	"petfarm_webapp/internal/game"
	"petfarm_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrInvalidSnack       = errors.New("unknown snack type")
	ErrSubscriptionActive = errors.New("auto-claim subscription already active")
	ErrInvalidPlan        = errors.New("unknown subscription plan")
	ErrBoostNotBuyable    = errors.New("boost option is not purchasable")
)

// BoostService prices and sells the three modifiers. All prices originate here
// or in config; clients only echo them back.
type BoostService struct {
	db          *pgxpool.Pool
	cfg         config.GameConfig
	petRepo     *repository.PetRepository
	petTypeRepo *repository.PetTypeRepository
	boostRepo   *repository.BoostRepository
	userRepo    *repository.UserRepository
	balance     *BalanceService
}

func NewBoostService(db *pgxpool.Pool, cfg config.GameConfig) *BoostService {
	return &BoostService{
		db:          db,
		cfg:         cfg,
		petRepo:     repository.NewPetRepository(db),
		petTypeRepo: repository.NewPetTypeRepository(db),
		boostRepo:   repository.NewBoostRepository(db),
		userRepo:    repository.NewUserRepository(db),
		balance:     NewBalanceService(db),
	}
}

func (s *BoostService) snackPrices() map[domain.SnackType]domain.Money {
	return map[domain.SnackType]domain.Money{
		domain.SnackCookie: domain.Money(s.cfg.SnackCookiePrice).Round2(),
		domain.SnackSteak:  domain.Money(s.cfg.SnackSteakPrice).Round2(),
		domain.SnackCake:   domain.Money(s.cfg.SnackCakePrice).Round2(),
	}
}

func (s *BoostService) roiPrices(pet *domain.Pet) map[float64]domain.Money {
	prices := make(map[float64]domain.Money, len(domain.ROIBoostSteps))
	for _, step := range domain.ROIBoostSteps {
		prices[step] = domain.Money(pet.InvestedTotal.Float64() * step / 100 * s.cfg.ROIBoostPriceFactor).Round2()
	}
	return prices
}

// SnackQuotes prices the snack menu for one pet.
func (s *BoostService) SnackQuotes(ctx context.Context, userID int64, petID string) ([]game.SnackQuote, error) {
	pet, err := s.petRepo.GetByPublicID(ctx, userID, petID)
	if err != nil {
		return nil, err
	}
	pt, err := s.petTypeRepo.GetByID(ctx, pet.PetTypeID)
	if err != nil {
		return nil, err
	}
	return game.SnackQuotes(pet, pt, s.snackPrices()), nil
}

// BuySnack queues a snack on the pet, debiting its price.
func (s *BoostService) BuySnack(ctx context.Context, userID int64, petID string, snack domain.SnackType) (domain.Money, error) {
	if !snack.Valid() {
		return 0, ErrInvalidSnack
	}
	price := s.snackPrices()[snack]

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	pet, err := s.petRepo.LockByPublicID(ctx, tx, userID, petID)
	if err != nil {
		return 0, err
	}
	if err := game.QueueSnack(pet, snack); err != nil {
		return 0, err
	}

	newBalance, err := s.balance.DebitWithTx(ctx, tx, userID, price, domain.TxSnack,
		map[string]interface{}{"pet_id": pet.PublicID, "snack_type": string(snack)})
	if err != nil {
		return 0, err
	}

	if err := s.petRepo.UpdateWithTx(ctx, tx, pet); err != nil {
		return 0, err
	}
	return newBalance, tx.Commit(ctx)
}

// ROIBoostQuotes prices the permanent boost steps for one pet.
func (s *BoostService) ROIBoostQuotes(ctx context.Context, userID int64, petID string) ([]game.ROIBoostQuote, float64, error) {
	pet, err := s.petRepo.GetByPublicID(ctx, userID, petID)
	if err != nil {
		return nil, 0, err
	}
	return game.ROIBoostQuotes(pet, s.roiPrices(pet)), pet.ROIBoost, nil
}

// BuyROIBoost applies a permanent boost step, debiting its price. The price
// is recomputed under lock so a stale quote cannot be replayed cheaper.
func (s *BoostService) BuyROIBoost(ctx context.Context, userID int64, petID string, step float64) (domain.Money, float64, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	pet, err := s.petRepo.LockByPublicID(ctx, tx, userID, petID)
	if err != nil {
		return 0, 0, err
	}

	price, ok := s.roiPrices(pet)[step]
	if !ok {
		return 0, 0, ErrBoostNotBuyable
	}

	if err := game.ApplyROIBoost(pet, step); err != nil {
		return 0, 0, err
	}

	newBalance, err := s.balance.DebitWithTx(ctx, tx, userID, price, domain.TxROIBoost,
		map[string]interface{}{"pet_id": pet.PublicID, "boost_percent": step})
	if err != nil {
		return 0, 0, err
	}

	if err := s.petRepo.UpdateWithTx(ctx, tx, pet); err != nil {
		return 0, 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, 0, err
	}
	return newBalance, pet.ROIBoost, nil
}

// AutoClaimStatus is the subscription state plus the purchasable plans.
type AutoClaimStatus struct {
	IsActive          bool                  `json:"is_active"`
	DaysRemaining     int                   `json:"days_remaining"`
	CommissionPercent float64               `json:"commission_percent"`
	Plans             []game.AutoClaimQuote `json:"plans"`
}

// GetAutoClaimStatus reports the account-wide auto-claim state.
func (s *BoostService) GetAutoClaimStatus(ctx context.Context, userID int64) (*AutoClaimStatus, error) {
	sub, err := s.boostRepo.GetActiveSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	status := &AutoClaimStatus{
		IsActive:          sub.Active(now),
		DaysRemaining:     sub.DaysRemaining(now),
		CommissionPercent: s.cfg.AutoClaimCommission,
		Plans:             game.AutoClaimQuotes(domain.Money(s.cfg.AutoClaimBasePerMonth), sub.Active(now)),
	}
	return status, nil
}

// BuyAutoClaim starts a subscription for the chosen plan. Rejected while a
// previous one is still running.
func (s *BoostService) BuyAutoClaim(ctx context.Context, userID int64, months int) (*domain.AutoClaimSubscription, domain.Money, error) {
	var plan *domain.AutoClaimPlan
	for i := range domain.AutoClaimPlans {
		if domain.AutoClaimPlans[i].Months == months {
			plan = &domain.AutoClaimPlans[i]
			break
		}
	}
	if plan == nil {
		return nil, 0, ErrInvalidPlan
	}

	full := s.cfg.AutoClaimBasePerMonth * float64(plan.Months)
	price := domain.Money(full * (1 - plan.DiscountPercent/100)).Round2()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// the user row lock serializes concurrent buys; without it two requests
	// could both pass the active check and both get debited
	if _, err := s.userRepo.LockBalance(ctx, tx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, ErrUserNotFound
		}
		return nil, 0, err
	}
	existing, err := s.boostRepo.GetActiveSubscriptionWithTx(ctx, tx, userID)
	if err != nil {
		return nil, 0, err
	}
	if existing.Active(time.Now()) {
		return nil, 0, ErrSubscriptionActive
	}

	newBalance, err := s.balance.DebitWithTx(ctx, tx, userID, price, domain.TxAutoClaimPurchase,
		map[string]interface{}{"months": months, "discount_percent": plan.DiscountPercent})
	if err != nil {
		return nil, 0, err
	}

	sub := &domain.AutoClaimSubscription{
		UserID:            userID,
		Months:            months,
		CommissionPercent: s.cfg.AutoClaimCommission,
	}
	if err := s.boostRepo.CreateSubscriptionWithTx(ctx, tx, sub); err != nil {
		return nil, 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, 0, err
	}
	return sub, newBalance, nil
}
