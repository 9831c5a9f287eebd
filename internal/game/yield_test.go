package game

import (
	"testing"

	"petfarm_webapp/internal/domain"

	"github.com/stretchr/testify/require"
)

func catalogPet() (*domain.Pet, *domain.PetType) {
	pt := &domain.PetType{
		ID:               1,
		Name:             "Dog",
		BasePrice:        50,
		DailyRate:        0.01,
		ROICapMultiplier: 1.5,
		UpgradePrices: map[domain.PetLevel]domain.Money{
			domain.LevelAdult:  25,
			domain.LevelMythic: 50,
		},
		IsActive: true,
	}
	pet := &domain.Pet{
		PublicID:      "test-pet",
		Level:         domain.LevelBaby,
		Status:        domain.StatusOwnedIdle,
		InvestedTotal: 50,
	}
	return pet, pt
}

func TestEffectiveDailyRate(t *testing.T) {
	pet, pt := catalogPet()

	require.InDelta(t, 0.01, EffectiveDailyRate(pet, pt), 1e-9)

	pet.Level = domain.LevelAdult
	require.InDelta(t, 0.012, EffectiveDailyRate(pet, pt), 1e-9)

	pet.Level = domain.LevelMythic
	require.InDelta(t, 0.014, EffectiveDailyRate(pet, pt), 1e-9)

	// permanent boost is percentage points on top
	pet.ROIBoost = 5
	require.InDelta(t, 0.064, EffectiveDailyRate(pet, pt), 1e-9)

	// snack bonus is relative to the base rate
	snack := domain.SnackSteak
	pet.ActiveSnack = &snack
	require.InDelta(t, 0.064+0.10*0.01, EffectiveDailyRate(pet, pt), 1e-9)
}

func TestDailyProfit(t *testing.T) {
	pet, pt := catalogPet()
	require.Equal(t, domain.Money(0.5), DailyProfit(pet, pt))

	// upgrading raises invested principal, so profit scales with it
	pet.InvestedTotal = 75
	pet.Level = domain.LevelAdult
	require.Equal(t, domain.Money(0.9), DailyProfit(pet, pt))
}

func TestROIProgress(t *testing.T) {
	pet, pt := catalogPet()

	require.InDelta(t, 0, ROIProgress(pet, pt), 1e-9)

	pet.ProfitClaimed = 37.5
	require.InDelta(t, 0.5, ROIProgress(pet, pt), 1e-9)

	// clamped at 1 even past the cap
	pet.ProfitClaimed = 100
	require.InDelta(t, 1, ROIProgress(pet, pt), 1e-9)
}

func TestMaxAndNetProfit(t *testing.T) {
	_, pt := catalogPet()
	require.Equal(t, domain.Money(75), MaxProfit(pt))
	require.Equal(t, domain.Money(25), NetProfit(pt))
}
