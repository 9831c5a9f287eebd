package domain

import "time"

// SnackType is a single-use daily-rate booster, consumed on the next claim.
type SnackType string

const (
	SnackCookie SnackType = "cookie"
	SnackSteak  SnackType = "steak"
	SnackCake   SnackType = "cake"
)

// snackInfo carries the fixed bonus and display data for each snack.
type snackInfo struct {
	BonusPercent float64
	Emoji        string
}

var snacks = map[SnackType]snackInfo{
	SnackCookie: {BonusPercent: 0.05, Emoji: "🍪"},
	SnackSteak:  {BonusPercent: 0.10, Emoji: "🥩"},
	SnackCake:   {BonusPercent: 0.20, Emoji: "🍰"},
}

// Valid reports whether the snack type is a known variant.
func (s SnackType) Valid() bool {
	_, ok := snacks[s]
	return ok
}

// BonusPercent is the fraction added on top of the daily profit for the
// single claim the snack applies to.
func (s SnackType) BonusPercent() float64 {
	return snacks[s].BonusPercent
}

func (s SnackType) Emoji() string {
	return snacks[s].Emoji
}

// SnackTypes lists all variants in display order.
func SnackTypes() []SnackType {
	return []SnackType{SnackCookie, SnackSteak, SnackCake}
}

// ROIBoostSteps are the purchasable permanent rate additions, in percentage
// points. Purchases stack until ROIBoostMax.
var ROIBoostSteps = []float64{5, 10, 15, 20, 25}

// ROIBoostMax caps the cumulative permanent boost per pet.
const ROIBoostMax = 25.0

// AutoClaimPlan is one subscription duration option.
type AutoClaimPlan struct {
	Months          int     `json:"months"`
	DiscountPercent float64 `json:"discount_percent"`
}

// AutoClaimPlans lists the purchasable subscription durations with their
// volume discounts off the flat per-month base price.
var AutoClaimPlans = []AutoClaimPlan{
	{Months: 1, DiscountPercent: 0},
	{Months: 3, DiscountPercent: 10},
	{Months: 6, DiscountPercent: 20},
	{Months: 12, DiscountPercent: 30},
}

// AutoClaimSubscription is the account-wide auto-claim state.
type AutoClaimSubscription struct {
	ID                int64     `db:"id" json:"id"`
	UserID            int64     `db:"user_id" json:"user_id"`
	Months            int       `db:"months" json:"months"`
	CommissionPercent float64   `db:"commission_percent" json:"commission_percent"`
	StartedAt         time.Time `db:"started_at" json:"started_at"`
	ExpiresAt         time.Time `db:"expires_at" json:"expires_at"`
}

// Active reports whether the subscription still covers the given moment.
func (s *AutoClaimSubscription) Active(now time.Time) bool {
	return s != nil && now.Before(s.ExpiresAt)
}

// DaysRemaining is the whole number of days left, never negative.
func (s *AutoClaimSubscription) DaysRemaining(now time.Time) int {
	if s == nil || !now.Before(s.ExpiresAt) {
		return 0
	}
	return int(s.ExpiresAt.Sub(now).Hours() / 24)
}
