package service

import (
	"context"
	"errors"
	"time"

	"petfarm_webapp/internal/config"
	"petfarm_webapp/internal/domain"
	"petfarm_webapp/internal/game"
	"petfarm_webapp/internal/logger"
	"petfarm_webapp/internal/metrics"
	"petfarm_webapp/internal/repository"
	"petfarm_webapp/internal/ws"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNoFreeSlots     = errors.New("no free slots")
	ErrSlotOccupied    = errors.New("slot already occupied")
	ErrInvalidSlot     = errors.New("invalid slot index")
	ErrPetTypeInactive = errors.New("pet type is not available")
)

// Notifier pushes live events to connected clients. Nil-safe by contract:
// PetService never requires a listener to be online.
type Notifier interface {
	NotifyUser(userID int64, event string, payload interface{})
}

// PetService drives the pet lifecycle. Every transition that moves money
// runs inside one database transaction with the pet row locked, so racing
// requests (double claim, concurrent buy into one slot) settle serially.
type PetService struct {
	db           *pgxpool.Pool
	cfg          config.GameConfig
	petRepo      *repository.PetRepository
	petTypeRepo  *repository.PetTypeRepository
	referralRepo *repository.ReferralRepository
	balance      *BalanceService
	notifier     Notifier
}

func NewPetService(db *pgxpool.Pool, cfg config.GameConfig) *PetService {
	return &PetService{
		db:           db,
		cfg:          cfg,
		petRepo:      repository.NewPetRepository(db),
		petTypeRepo:  repository.NewPetTypeRepository(db),
		referralRepo: repository.NewReferralRepository(db),
		balance:      NewBalanceService(db),
	}
}

// SetNotifier wires the live-update hub after construction.
func (s *PetService) SetNotifier(n Notifier) { s.notifier = n }

func (s *PetService) notify(userID int64, event string, payload interface{}) {
	if s.notifier != nil {
		s.notifier.NotifyUser(userID, event, payload)
	}
}

// SlotView is one slot as the pets screen renders it.
type SlotView struct {
	SlotIndex int      `json:"slot_index"`
	Pet       *PetView `json:"pet"`
}

// PetView is the pet with its preview figures attached. The figures are
// display-only; the claim path recomputes everything server-side.
type PetView struct {
	domain.Pet
	TypeName    string       `json:"type_name"`
	Emoji       string       `json:"emoji"`
	DailyProfit domain.Money `json:"daily_profit"`
	ROICap      domain.Money `json:"roi_cap"`
	ROIProgress float64      `json:"roi_progress"`
	IsReady     bool         `json:"is_ready"`
}

// ListSlots returns all slots of the user, empty ones included.
func (s *PetService) ListSlots(ctx context.Context, userID int64, maxSlots int) ([]SlotView, error) {
	pets, err := s.petRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	slots := make([]SlotView, maxSlots)
	for i := range slots {
		slots[i].SlotIndex = i
	}
	for _, p := range pets {
		if p.SlotIndex < 0 || p.SlotIndex >= maxSlots {
			continue
		}
		pt, err := s.petTypeRepo.GetByID(ctx, p.PetTypeID)
		if err != nil {
			return nil, err
		}
		slots[p.SlotIndex].Pet = &PetView{
			Pet:         *p,
			TypeName:    pt.Name,
			Emoji:       pt.Emoji,
			DailyProfit: game.DailyProfit(p, pt),
			ROICap:      p.ROICap(pt),
			ROIProgress: game.ROIProgress(p, pt),
			IsReady:     game.IsReady(p, now),
		}
	}
	return slots, nil
}

// Buy purchases a pet into a free slot. The base price is debited and the
// buyer's referral link (if any) becomes active.
func (s *PetService) Buy(ctx context.Context, userID int64, petTypeID int64, slotIndex int) (*domain.Pet, domain.Money, error) {
	if slotIndex < 0 || slotIndex >= s.cfg.MaxSlots {
		return nil, 0, ErrInvalidSlot
	}

	pt, err := s.petTypeRepo.GetByID(ctx, petTypeID)
	if err != nil {
		return nil, 0, err
	}
	if !pt.IsActive {
		return nil, 0, ErrPetTypeInactive
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	used, err := s.petRepo.CountActiveSlots(ctx, tx, userID)
	if err != nil {
		return nil, 0, err
	}
	if used >= s.cfg.MaxSlots {
		return nil, 0, ErrNoFreeSlots
	}

	occupied, err := s.petRepo.SlotOccupied(ctx, tx, userID, slotIndex)
	if err != nil {
		return nil, 0, err
	}
	if occupied {
		return nil, 0, ErrSlotOccupied
	}

	pet := &domain.Pet{
		PublicID:      uuid.NewString(),
		UserID:        userID,
		SlotIndex:     slotIndex,
		PetTypeID:     pt.ID,
		Level:         domain.LevelBaby,
		Status:        domain.StatusOwnedIdle,
		InvestedTotal: pt.BasePrice.Round2(),
	}

	newBalance, err := s.balance.DebitWithTx(ctx, tx, userID, pt.BasePrice, domain.TxBuyPet,
		map[string]interface{}{"pet_type_id": pt.ID, "slot_index": slotIndex, "pet_id": pet.PublicID})
	if err != nil {
		return nil, 0, err
	}

	if err := s.petRepo.CreateWithTx(ctx, tx, pet); err != nil {
		return nil, 0, err
	}

	// First purchase makes the buyer an active referral for the upline.
	if err := s.referralRepo.MarkActiveWithTx(ctx, tx, userID); err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, err
	}

	metrics.PetsBought.Inc()
	return pet, newBalance, nil
}

// StartTraining puts an idle pet into its fixed-duration training cycle.
func (s *PetService) StartTraining(ctx context.Context, userID int64, petID string) (*domain.Pet, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	pet, err := s.petRepo.LockByPublicID(ctx, tx, userID, petID)
	if err != nil {
		return nil, err
	}

	if err := game.StartTraining(pet, time.Now(), s.cfg.TrainingDuration); err != nil {
		return nil, err
	}

	if err := s.petRepo.UpdateWithTx(ctx, tx, pet); err != nil {
		return nil, err
	}
	return pet, tx.Commit(ctx)
}

// ClaimResult is what a settled claim reports back.
type ClaimResult struct {
	Pet        *domain.Pet
	Profit     domain.Money
	Commission domain.Money
	Evolved    bool
	NewBalance domain.Money
}

// Claim settles one finished training cycle for a user-initiated request.
func (s *PetService) Claim(ctx context.Context, userID int64, petID string) (*ClaimResult, error) {
	return s.claim(ctx, userID, petID, 0, domain.TxClaim)
}

// AutoClaim settles a cycle on behalf of a subscribed user, keeping the
// subscription's commission.
func (s *PetService) AutoClaim(ctx context.Context, userID int64, petID string, commissionPercent float64) (*ClaimResult, error) {
	return s.claim(ctx, userID, petID, commissionPercent, domain.TxAutoClaim)
}

func (s *PetService) claim(ctx context.Context, userID int64, petID string, commissionPercent float64, txType string) (*ClaimResult, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	pet, err := s.petRepo.LockByPublicID(ctx, tx, userID, petID)
	if err != nil {
		return nil, err
	}
	pt, err := s.petTypeRepo.GetByID(ctx, pet.PetTypeID)
	if err != nil {
		return nil, err
	}

	outcome, err := game.Claim(pet, pt, time.Now())
	if err != nil {
		return nil, err
	}

	commission := domain.Money(outcome.Profit.Float64() * commissionPercent / 100).Round2()
	credited := (outcome.Profit - commission).Round2()

	result := &ClaimResult{
		Pet:        pet,
		Profit:     credited,
		Commission: commission,
		Evolved:    outcome.Evolved,
	}

	meta := map[string]interface{}{"pet_id": pet.PublicID, "evolved": outcome.Evolved}
	if commission > 0 {
		meta["auto_claim_commission"] = commission.String()
	}
	if outcome.SnackConsumed != nil {
		meta["snack_consumed"] = string(*outcome.SnackConsumed)
	}

	result.NewBalance, err = s.balance.CreditWithTx(ctx, tx, userID, credited, txType, meta)
	if err != nil {
		return nil, err
	}

	if err := s.petRepo.UpdateWithTx(ctx, tx, pet); err != nil {
		return nil, err
	}

	// Commissions are based on the gross claim, paid level by level up the
	// chain, each gated by that upline's own unlock state.
	paid, err := s.payReferralCommissions(ctx, tx, userID, outcome.Profit)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	for _, p := range paid {
		s.notify(p.uplineID, ws.EventBalanceChanged, map[string]interface{}{
			"reason": "referral_commission",
			"level":  p.depth,
			"amount": p.amount.String(),
		})
	}

	metrics.ClaimsTotal.WithLabelValues(txType).Inc()
	if outcome.Evolved {
		metrics.EvolutionsTotal.Inc()
	}

	s.notify(userID, ws.EventPetClaimed, map[string]interface{}{
		"pet_id":      pet.PublicID,
		"profit":      credited.String(),
		"evolved":     outcome.Evolved,
		"new_balance": result.NewBalance.String(),
	})

	return result, nil
}

type commissionPayout struct {
	uplineID int64
	depth    int
	amount   domain.Money
}

func (s *PetService) payReferralCommissions(ctx context.Context, tx pgx.Tx, claimerID int64, claimed domain.Money) ([]commissionPayout, error) {
	chain, err := s.referralRepo.UplineChain(ctx, tx, claimerID, domain.MaxReferralDepth)
	if err != nil {
		return nil, err
	}
	if len(chain) == 0 {
		return nil, nil
	}

	levels, err := s.referralRepo.GetLevelConfigs(ctx)
	if err != nil {
		return nil, err
	}

	var paid []commissionPayout
	for i, uplineID := range chain {
		depth := i + 1
		activeDirect, err := s.referralRepo.ActiveDirectCount(ctx, tx, uplineID)
		if err != nil {
			return nil, err
		}

		commission := game.CommissionFor(levels, depth, activeDirect, claimed)
		if commission <= 0 {
			continue
		}

		meta := map[string]interface{}{"from_user_id": claimerID, "level": depth}
		if _, err := s.balance.CreditWithTx(ctx, tx, uplineID, commission, domain.TxReferralCommission, meta); err != nil {
			return nil, err
		}
		if err := s.referralRepo.AddEarningsWithTx(ctx, tx, uplineID, depth, commission); err != nil {
			return nil, err
		}
		logger.Debug("referral commission paid",
			"upline", uplineID, "claimer", claimerID, "level", depth, "amount", commission.String())
		paid = append(paid, commissionPayout{uplineID: uplineID, depth: depth, amount: commission})
	}
	return paid, nil
}

// Upgrade advances the pet one tier, debiting the tier cost into principal.
func (s *PetService) Upgrade(ctx context.Context, userID int64, petID string) (*domain.Pet, domain.Money, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	pet, err := s.petRepo.LockByPublicID(ctx, tx, userID, petID)
	if err != nil {
		return nil, 0, err
	}
	pt, err := s.petTypeRepo.GetByID(ctx, pet.PetTypeID)
	if err != nil {
		return nil, 0, err
	}

	cost, err := game.Upgrade(pet, pt)
	if err != nil {
		return nil, 0, err
	}

	newBalance, err := s.balance.DebitWithTx(ctx, tx, userID, cost, domain.TxUpgrade,
		map[string]interface{}{"pet_id": pet.PublicID, "new_level": string(pet.Level)})
	if err != nil {
		return nil, 0, err
	}

	if err := s.petRepo.UpdateWithTx(ctx, tx, pet); err != nil {
		return nil, 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, 0, err
	}
	return pet, newBalance, nil
}

// Sell destroys the pet for a partial refund and frees the slot.
func (s *PetService) Sell(ctx context.Context, userID int64, petID string) (domain.Money, domain.Money, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	pet, err := s.petRepo.LockByPublicID(ctx, tx, userID, petID)
	if err != nil {
		return 0, 0, err
	}

	refund, err := game.Sell(pet)
	if err != nil {
		return 0, 0, err
	}

	newBalance, err := s.balance.CreditWithTx(ctx, tx, userID, refund, domain.TxSellRefund,
		map[string]interface{}{"pet_id": pet.PublicID, "invested_total": pet.InvestedTotal.String()})
	if err != nil {
		return 0, 0, err
	}

	if err := s.petRepo.UpdateWithTx(ctx, tx, pet); err != nil {
		return 0, 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, 0, err
	}
	return refund, newBalance, nil
}
