package game

import "petfarm_webapp/internal/domain"

// Yield math shared by the authoritative claim path and the display/preview
// endpoints. Everything here is pure; balances are only ever moved by the
// service layer.

// EffectiveDailyRate is the pet-type base rate plus the level bonus, the
// permanent ROI boost and the queued snack bonus (the snack applies to the
// next claim only, but it is part of the advertised rate while queued).
func EffectiveDailyRate(pet *domain.Pet, pt *domain.PetType) float64 {
	rate := pt.DailyRate + pet.Level.RateBonus() + pet.ROIBoost/100
	if pet.ActiveSnack != nil {
		rate += pet.ActiveSnack.BonusPercent() * pt.DailyRate
	}
	return rate
}

// DailyProfit is the yield one completed training cycle pays out, before the
// ROI cap is applied.
func DailyProfit(pet *domain.Pet, pt *domain.PetType) domain.Money {
	return domain.Money(pet.InvestedTotal.Float64() * EffectiveDailyRate(pet, pt)).Round2()
}

// ROIProgress is profitClaimed relative to the cap, clamped to [0, 1].
func ROIProgress(pet *domain.Pet, pt *domain.PetType) float64 {
	cap := pet.ROICap(pt).Float64()
	if cap <= 0 {
		return 0
	}
	p := pet.ProfitClaimed.Float64() / cap
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// MaxProfit is the lifetime payout ceiling shown in the pre-purchase preview.
func MaxProfit(pt *domain.PetType) domain.Money {
	return domain.Money(pt.BasePrice.Float64() * pt.ROICapMultiplier).Round2()
}

// NetProfit is MaxProfit minus the purchase price.
func NetProfit(pt *domain.PetType) domain.Money {
	return (MaxProfit(pt) - pt.BasePrice).Round2()
}
