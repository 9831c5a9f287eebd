package domain

import "time"

// ReferralLevelConfig fixes the five-level commission ladder. Level 1 is
// always unlocked; deeper levels unlock once the count of active referrals
// (those that bought at least one pet) reaches the threshold.
type ReferralLevelConfig struct {
	Level           int     `db:"level" json:"level"`
	Percent         float64 `db:"percent" json:"percent"`
	UnlockThreshold int     `db:"unlock_threshold" json:"unlock_threshold"`
}

// DefaultReferralLevels seeds the ladder; the DB-stored config is
// authoritative at runtime.
var DefaultReferralLevels = []ReferralLevelConfig{
	{Level: 1, Percent: 10, UnlockThreshold: 0},
	{Level: 2, Percent: 5, UnlockThreshold: 3},
	{Level: 3, Percent: 3, UnlockThreshold: 5},
	{Level: 4, Percent: 2, UnlockThreshold: 10},
	{Level: 5, Percent: 1, UnlockThreshold: 20},
}

// MaxReferralDepth is how far up the chain commissions propagate.
const MaxReferralDepth = 5

// ReferralLevelStats is one row of the ladder as shown to the upline user.
type ReferralLevelStats struct {
	Level           int     `json:"level"`
	Percent         float64 `json:"percent"`
	UnlockThreshold int     `json:"unlock_threshold"`
	ReferralsCount  int     `json:"referrals_count"`
	Earned          Money   `json:"earned"`
	Unlocked        bool    `json:"unlocked"`
}

// Referral links a referred user to their direct upline.
type Referral struct {
	ID         int64     `db:"id" json:"id"`
	ReferrerID int64     `db:"referrer_id" json:"referrer_id"`
	ReferredID int64     `db:"referred_id" json:"referred_id"`
	Active     bool      `db:"active" json:"active"` // referred user bought >=1 pet
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
