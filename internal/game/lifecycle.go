package game

import (
	"errors"
	"time"

	"petfarm_webapp/internal/domain"
)

// Lifecycle rules for a pet inside its slot. The functions mutate the
// in-memory Pet and return what the caller must settle against the balance;
// persistence and money movement stay in the service layer.

const (
	// SellRefundRate is the fraction of invested principal returned on sell.
	SellRefundRate = 0.7

	// DefaultTrainingDuration is one training cycle.
	DefaultTrainingDuration = 24 * time.Hour
)

var (
	ErrNotIdle          = errors.New("pet is not idle")
	ErrNotReady         = errors.New("training is not finished")
	ErrPetTerminal      = errors.New("pet is no longer active")
	ErrMaxLevel         = errors.New("pet is already at max level")
	ErrSnackQueued      = errors.New("a snack is already queued")
	ErrBoostCapReached  = errors.New("roi boost cap reached")
	ErrInvalidBoostStep = errors.New("invalid roi boost step")
)

// StartTraining moves an idle pet into training for the given duration.
func StartTraining(pet *domain.Pet, now time.Time, duration time.Duration) error {
	if pet.Status.Terminal() {
		return ErrPetTerminal
	}
	if pet.Status != domain.StatusOwnedIdle {
		return ErrNotIdle
	}
	ends := now.Add(duration)
	pet.Status = domain.StatusTraining
	pet.TrainingEndsAt = &ends
	return nil
}

// IsReady is the client-side readiness prediction: training completion is
// time-based, so a pet still reported as TRAINING counts as ready once its
// timer elapsed. Display only — Claim revalidates on its own.
func IsReady(pet *domain.Pet, now time.Time) bool {
	if pet.Status == domain.StatusReadyToClaim {
		return true
	}
	return pet.Status == domain.StatusTraining &&
		pet.TrainingEndsAt != nil && !now.Before(*pet.TrainingEndsAt)
}

// ClaimOutcome is what a successful claim settles.
type ClaimOutcome struct {
	Profit        domain.Money
	Evolved       bool
	SnackConsumed *domain.SnackType
}

// Claim pays out one training cycle. The queued snack is consumed by this
// transition whether or not the pet evolves. When cumulative claimed profit
// reaches the ROI cap the pet evolves instead of returning to idle.
func Claim(pet *domain.Pet, pt *domain.PetType, now time.Time) (ClaimOutcome, error) {
	if pet.Status.Terminal() {
		return ClaimOutcome{}, ErrPetTerminal
	}
	if !IsReady(pet, now) {
		return ClaimOutcome{}, ErrNotReady
	}

	out := ClaimOutcome{Profit: DailyProfit(pet, pt)}

	if pet.ActiveSnack != nil {
		snack := *pet.ActiveSnack
		out.SnackConsumed = &snack
		pet.ActiveSnack = nil
	}

	pet.ProfitClaimed = (pet.ProfitClaimed + out.Profit).Round2()
	pet.TrainingEndsAt = nil

	if pet.ProfitClaimed >= pet.ROICap(pt) {
		pet.Status = domain.StatusEvolved
		out.Evolved = true
	} else {
		pet.Status = domain.StatusOwnedIdle
	}
	return out, nil
}

// Upgrade advances the pet one tier and returns the cost the caller must
// debit. The cost is added to invested principal, which also raises the ROI
// cap. Status is untouched.
func Upgrade(pet *domain.Pet, pt *domain.PetType) (domain.Money, error) {
	if pet.Status.Terminal() {
		return 0, ErrPetTerminal
	}
	next, ok := pet.Level.Next()
	if !ok {
		return 0, ErrMaxLevel
	}
	cost := pt.UpgradePrices[next]
	pet.Level = next
	pet.InvestedTotal = (pet.InvestedTotal + cost).Round2()
	return cost, nil
}

// SellRefund is the partial refund for a user-initiated sell.
func SellRefund(invested domain.Money) domain.Money {
	return domain.Money(invested.Float64() * SellRefundRate).Round2()
}

// Sell destroys the pet from any non-terminal status and returns the refund.
func Sell(pet *domain.Pet) (domain.Money, error) {
	if pet.Status.Terminal() {
		return 0, ErrPetTerminal
	}
	refund := SellRefund(pet.InvestedTotal)
	pet.Status = domain.StatusSold
	pet.TrainingEndsAt = nil
	pet.ActiveSnack = nil
	return refund, nil
}

// QueueSnack attaches a single-use snack; only one may be queued at a time.
func QueueSnack(pet *domain.Pet, snack domain.SnackType) error {
	if pet.Status.Terminal() {
		return ErrPetTerminal
	}
	if pet.ActiveSnack != nil {
		return ErrSnackQueued
	}
	s := snack
	pet.ActiveSnack = &s
	return nil
}

// ApplyROIBoost adds a permanent boost step, honoring the per-pet cap.
func ApplyROIBoost(pet *domain.Pet, step float64) error {
	if pet.Status.Terminal() {
		return ErrPetTerminal
	}
	valid := false
	for _, s := range domain.ROIBoostSteps {
		if s == step {
			valid = true
			break
		}
	}
	if !valid {
		return ErrInvalidBoostStep
	}
	if pet.ROIBoost >= domain.ROIBoostMax {
		return ErrBoostCapReached
	}
	if pet.ROIBoost+step > domain.ROIBoostMax {
		return ErrBoostCapReached
	}
	pet.ROIBoost += step
	return nil
}
