package domain

import "time"

type User struct {
	ID           int64     `db:"id"`
	TgID         int64     `db:"tg_id"`
	Username     string    `db:"username"`
	FirstName    string    `db:"first_name"`
	Balance      Money     `db:"balance" json:"balance"`
	MaxSlots     int       `db:"max_slots" json:"max_slots"`
	ReferralCode string    `db:"referral_code" json:"referral_code"`
	ReferredBy   *int64    `db:"referred_by" json:"-"`
	CreatedAt    time.Time `db:"created_at"`
}
