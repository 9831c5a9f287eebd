package domain

import "time"

// PetStatus is the lifecycle state of a pet within its slot.
type PetStatus string

const (
	StatusOwnedIdle    PetStatus = "owned_idle"
	StatusTraining     PetStatus = "training"
	StatusReadyToClaim PetStatus = "ready_to_claim"
	StatusEvolved      PetStatus = "evolved" // terminal, slot vacated
	StatusSold         PetStatus = "sold"    // terminal, slot vacated
)

// Terminal reports whether the status frees the slot permanently.
func (s PetStatus) Terminal() bool {
	return s == StatusEvolved || s == StatusSold
}

// PetLevel is the ordered tier of a pet.
type PetLevel string

const (
	LevelBaby   PetLevel = "baby"
	LevelAdult  PetLevel = "adult"
	LevelMythic PetLevel = "mythic"
)

// RateBonus is the addition to the base daily rate granted by the level.
func (l PetLevel) RateBonus() float64 {
	switch l {
	case LevelAdult:
		return 0.002
	case LevelMythic:
		return 0.004
	}
	return 0
}

// Next returns the following tier and whether an upgrade is possible.
func (l PetLevel) Next() (PetLevel, bool) {
	switch l {
	case LevelBaby:
		return LevelAdult, true
	case LevelAdult:
		return LevelMythic, true
	}
	return l, false
}

// PetType is a catalog entry. Catalog rows are immutable per version; price
// changes are rolled out as new rows with the old one deactivated.
type PetType struct {
	ID               int64              `db:"id" json:"id"`
	Name             string             `db:"name" json:"name"`
	BasePrice        Money              `db:"base_price" json:"base_price"`
	DailyRate        float64            `db:"daily_rate" json:"daily_rate"` // decimal fraction, 0.01 = 1%/day
	ROICapMultiplier float64            `db:"roi_cap_multiplier" json:"roi_cap_multiplier"`
	UpgradePrices    map[PetLevel]Money `json:"upgrade_prices"`
	IsActive         bool               `db:"is_active" json:"is_active"`
	Emoji            string             `db:"emoji" json:"emoji"`
}

// Pet is one slot-bound instance owned by a user.
type Pet struct {
	ID             int64      `db:"id" json:"-"`
	PublicID       string     `db:"public_id" json:"id"` // opaque uuid exposed to clients
	UserID         int64      `db:"user_id" json:"-"`
	SlotIndex      int        `db:"slot_index" json:"slot_index"`
	PetTypeID      int64      `db:"pet_type_id" json:"pet_type_id"`
	Level          PetLevel   `db:"level" json:"level"`
	Status         PetStatus  `db:"status" json:"status"`
	InvestedTotal  Money      `db:"invested_total" json:"invested_total"`
	ProfitClaimed  Money      `db:"profit_claimed" json:"profit_claimed"`
	ROIBoost       float64    `db:"roi_boost" json:"roi_boost"` // permanent extra rate, percentage points
	ActiveSnack    *SnackType `db:"active_snack" json:"active_snack,omitempty"`
	TrainingEndsAt *time.Time `db:"training_ends_at" json:"training_ends_at,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

// ROICap is the ceiling on cumulative claimed profit for this pet.
func (p *Pet) ROICap(pt *PetType) Money {
	return Money(p.InvestedTotal.Float64() * pt.ROICapMultiplier).Round2()
}
