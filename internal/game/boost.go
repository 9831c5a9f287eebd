package game

import "petfarm_webapp/internal/domain"

// Preview figures for the three boost purchase modals. All pure; the prices
// themselves come from the catalog/config and are echoed back to the client,
// never recomputed there.

// SnackQuote is one row of the snack purchase preview.
type SnackQuote struct {
	Snack        domain.SnackType `json:"snack_type"`
	BonusPercent float64          `json:"bonus_percent"`
	Price        domain.Money     `json:"price"`
	BonusAmount  domain.Money     `json:"bonus_amount"`
	NetBenefit   domain.Money     `json:"net_benefit"`
	Emoji        string           `json:"emoji"`
	CanBuy       bool             `json:"can_buy"`
}

// SnackBonusAmount is the exact claim delta the snack would add: the daily
// profit with the snack queued minus the profit without it. Quoting anything
// else would promise more than the claim pays.
func SnackBonusAmount(pet *domain.Pet, pt *domain.PetType, s domain.SnackType) domain.Money {
	plain := *pet
	plain.ActiveSnack = nil
	boosted := plain
	boosted.ActiveSnack = &s
	return (DailyProfit(&boosted, pt) - DailyProfit(&plain, pt)).Round2()
}

// SnackQuotes prices every snack against the claim delta it would produce.
// Nothing is purchasable while a snack is already queued.
func SnackQuotes(pet *domain.Pet, pt *domain.PetType, prices map[domain.SnackType]domain.Money) []SnackQuote {
	blocked := pet.ActiveSnack != nil || pet.Status.Terminal()

	quotes := make([]SnackQuote, 0, len(domain.SnackTypes()))
	for _, s := range domain.SnackTypes() {
		bonus := SnackBonusAmount(pet, pt, s)
		price := prices[s]
		quotes = append(quotes, SnackQuote{
			Snack:        s,
			BonusPercent: s.BonusPercent(),
			Price:        price,
			BonusAmount:  bonus,
			NetBenefit:   (bonus - price).Round2(),
			Emoji:        s.Emoji(),
			CanBuy:       !blocked,
		})
	}
	return quotes
}

// ROIBoostQuote is one purchasable permanent-boost step.
type ROIBoostQuote struct {
	Step   float64      `json:"boost_percent"`
	Price  domain.Money `json:"price"`
	CanBuy bool         `json:"can_buy"`
}

// ROIBoostQuotes prices each step against the pet's remaining boost headroom.
// Once the cap is reached every option reports can_buy=false.
func ROIBoostQuotes(pet *domain.Pet, prices map[float64]domain.Money) []ROIBoostQuote {
	quotes := make([]ROIBoostQuote, 0, len(domain.ROIBoostSteps))
	for _, step := range domain.ROIBoostSteps {
		canBuy := !pet.Status.Terminal() &&
			pet.ROIBoost < domain.ROIBoostMax &&
			pet.ROIBoost+step <= domain.ROIBoostMax
		quotes = append(quotes, ROIBoostQuote{
			Step:   step,
			Price:  prices[step],
			CanBuy: canBuy,
		})
	}
	return quotes
}

// AutoClaimQuote is one subscription duration with its discounted price.
type AutoClaimQuote struct {
	Months          int          `json:"months"`
	DiscountPercent float64      `json:"discount_percent"`
	Price           domain.Money `json:"price"`
	CanBuy          bool         `json:"can_buy"`
}

// AutoClaimQuotes applies the volume discount ladder to the flat per-month
// base price. No plan is purchasable while a subscription is active.
func AutoClaimQuotes(basePerMonth domain.Money, subscriptionActive bool) []AutoClaimQuote {
	quotes := make([]AutoClaimQuote, 0, len(domain.AutoClaimPlans))
	for _, plan := range domain.AutoClaimPlans {
		full := basePerMonth.Float64() * float64(plan.Months)
		price := domain.Money(full * (1 - plan.DiscountPercent/100)).Round2()
		quotes = append(quotes, AutoClaimQuote{
			Months:          plan.Months,
			DiscountPercent: plan.DiscountPercent,
			Price:           price,
			CanBuy:          !subscriptionActive,
		})
	}
	return quotes
}
