package domain

import (
	"testing"
	"time"
)

func TestAutoClaimSubscriptionActive(t *testing.T) {
	now := time.Now()

	var none *AutoClaimSubscription
	if none.Active(now) {
		t.Fatal("nil subscription must not be active")
	}
	if none.DaysRemaining(now) != 0 {
		t.Fatal("nil subscription has no days remaining")
	}

	sub := &AutoClaimSubscription{
		StartedAt: now.AddDate(0, -1, 0),
		ExpiresAt: now.Add(72 * time.Hour),
	}
	if !sub.Active(now) {
		t.Fatal("subscription covering now must be active")
	}
	if got := sub.DaysRemaining(now); got != 3 {
		t.Fatalf("DaysRemaining = %d, want 3", got)
	}

	// expiry moment itself is no longer covered
	if sub.Active(sub.ExpiresAt) {
		t.Fatal("subscription must lapse exactly at expires_at")
	}
	if sub.DaysRemaining(sub.ExpiresAt) != 0 {
		t.Fatal("expired subscription has no days remaining")
	}
}
