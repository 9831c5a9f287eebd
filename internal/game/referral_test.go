package game

import (
	"testing"

	"petfarm_webapp/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestBuildReferralLadder(t *testing.T) {
	levels := domain.DefaultReferralLevels

	// 4 active direct referrals: levels 1 and 2 unlocked, 3+ still locked
	counts := map[int]int{1: 4, 2: 7}
	earned := map[int]domain.Money{1: 3.2, 2: 1.1}

	ladder := BuildReferralLadder(levels, counts, earned)
	require.Len(t, ladder, 5)

	require.True(t, ladder[0].Unlocked)
	require.Equal(t, 4, ladder[0].ReferralsCount)
	require.Equal(t, domain.Money(3.2), ladder[0].Earned)

	require.True(t, ladder[1].Unlocked) // threshold 3
	require.False(t, ladder[2].Unlocked)
	require.False(t, ladder[3].Unlocked)
	require.False(t, ladder[4].Unlocked)
}

func TestBuildReferralLadderLevelOneAlwaysOpen(t *testing.T) {
	ladder := BuildReferralLadder(domain.DefaultReferralLevels, nil, nil)
	require.True(t, ladder[0].Unlocked)
	for _, lvl := range ladder[1:] {
		require.False(t, lvl.Unlocked)
	}
}

func TestCommissionFor(t *testing.T) {
	levels := domain.DefaultReferralLevels

	// depth 1 pays 10% regardless of the upline's own referral count
	require.Equal(t, domain.Money(1), CommissionFor(levels, 1, 0, 10))

	// depth 2 pays 5% only once the upline has 3 active directs
	require.Equal(t, domain.Money(0), CommissionFor(levels, 2, 2, 10))
	require.Equal(t, domain.Money(0.5), CommissionFor(levels, 2, 3, 10))

	// depth 5 pays 1% behind a threshold of 20
	require.Equal(t, domain.Money(0), CommissionFor(levels, 5, 19, 100))
	require.Equal(t, domain.Money(1), CommissionFor(levels, 5, 20, 100))

	// beyond the ladder nothing is paid
	require.Equal(t, domain.Money(0), CommissionFor(levels, 6, 100, 100))

	// rounding settles at 2dp
	require.Equal(t, domain.Money(0.12), CommissionFor(levels, 1, 0, 1.23))
}
