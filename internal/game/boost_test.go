package game

import (
	"testing"
	"time"

	"petfarm_webapp/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestSnackQuotes(t *testing.T) {
	pet, pt := catalogPet()
	prices := map[domain.SnackType]domain.Money{
		domain.SnackCookie: 0.5,
		domain.SnackSteak:  1.0,
		domain.SnackCake:   2.0,
	}

	quotes := SnackQuotes(pet, pt, prices)
	require.Len(t, quotes, 3)

	// cookie lifts the rate 0.01 -> 0.0105: profit 0.50 -> 0.53
	cookie := quotes[0]
	require.Equal(t, domain.SnackCookie, cookie.Snack)
	require.Equal(t, domain.Money(0.03), cookie.BonusAmount)
	require.Equal(t, domain.Money(-0.47), cookie.NetBenefit)
	require.True(t, cookie.CanBuy)

	// queued snack blocks every further purchase
	require.NoError(t, QueueSnack(pet, domain.SnackSteak))
	for _, q := range SnackQuotes(pet, pt, prices) {
		require.False(t, q.CanBuy)
	}
}

func TestSnackQuoteMatchesClaimDelta(t *testing.T) {
	pet, pt := catalogPet()
	pet.Level = domain.LevelAdult
	pet.ROIBoost = 5
	now := time.Now()
	ends := now.Add(-time.Minute)
	pet.Status = domain.StatusTraining
	pet.TrainingEndsAt = &ends

	prices := map[domain.SnackType]domain.Money{
		domain.SnackCookie: 0.5,
		domain.SnackSteak:  1.0,
		domain.SnackCake:   2.0,
	}
	quotes := SnackQuotes(pet, pt, prices)

	plain := *pet
	plainOut, err := Claim(&plain, pt, now)
	require.NoError(t, err)

	// the quoted bonus must be exactly what claiming with the snack pays
	// on top of claiming without it
	for _, q := range quotes {
		snack := q.Snack
		boosted := *pet
		boosted.ActiveSnack = &snack
		out, err := Claim(&boosted, pt, now)
		require.NoError(t, err)
		require.Equal(t, (out.Profit - plainOut.Profit).Round2(), q.BonusAmount, "snack %s", q.Snack)
	}

	// steak raises the effective rate 0.062 -> 0.063: profit 3.10 -> 3.15
	require.Equal(t, domain.Money(0.05), SnackBonusAmount(pet, pt, domain.SnackSteak))
}

func TestROIBoostQuotes(t *testing.T) {
	pet, _ := catalogPet()
	prices := map[float64]domain.Money{5: 3.75, 10: 7.5, 15: 11.25, 20: 15, 25: 18.75}

	quotes := ROIBoostQuotes(pet, prices)
	require.Len(t, quotes, 5)
	for _, q := range quotes {
		require.True(t, q.CanBuy)
		require.Equal(t, prices[q.Step], q.Price)
	}

	pet.ROIBoost = 20
	quotes = ROIBoostQuotes(pet, prices)
	for _, q := range quotes {
		require.Equal(t, q.Step == 5, q.CanBuy, "step %v", q.Step)
	}

	pet.ROIBoost = 25
	for _, q := range ROIBoostQuotes(pet, prices) {
		require.False(t, q.CanBuy)
	}
}

func TestAutoClaimQuotes(t *testing.T) {
	quotes := AutoClaimQuotes(10, false)
	require.Len(t, quotes, 4)

	want := map[int]domain.Money{1: 10, 3: 27, 6: 48, 12: 84}
	for _, q := range quotes {
		require.Equal(t, want[q.Months], q.Price, "months %d", q.Months)
		require.True(t, q.CanBuy)
	}

	for _, q := range AutoClaimQuotes(10, true) {
		require.False(t, q.CanBuy)
	}
}
