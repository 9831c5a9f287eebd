package game

import (
	"testing"
	"time"

	"petfarm_webapp/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestWheelSpinBounds(t *testing.T) {
	w := NewWheel(nil)
	require.Len(t, w.Segments, 8)

	segmentAngle := 360.0 / float64(len(w.Segments))
	for i := 0; i < 200; i++ {
		seg := w.Spin()
		require.GreaterOrEqual(t, w.WinningIndex, 0)
		require.Less(t, w.WinningIndex, len(w.Segments))
		require.Equal(t, w.Segments[w.WinningIndex].ID, seg.ID)

		// 5 full rotations plus somewhere inside the winning wedge
		base := 5*360.0 + float64(w.WinningIndex)*segmentAngle
		require.GreaterOrEqual(t, w.SpinAngle, base)
		require.Less(t, w.SpinAngle, base+segmentAngle)
	}
}

func TestWheelSkipsZeroWeight(t *testing.T) {
	segments := []domain.SpinSegment{
		{ID: 1, RewardType: domain.SpinRewardAmount, Amount: 1, Weight: 0},
		{ID: 2, RewardType: domain.SpinRewardAmount, Amount: 2, Weight: 10},
		{ID: 3, RewardType: domain.SpinRewardNothing, Weight: 0},
	}
	w := NewWheel(segments)
	for i := 0; i < 50; i++ {
		seg := w.Spin()
		require.Equal(t, 2, seg.ID)
	}
}

func TestAmountWon(t *testing.T) {
	segments := []domain.SpinSegment{
		{ID: 1, RewardType: domain.SpinRewardNothing, Weight: 1},
		{ID: 2, RewardType: domain.SpinRewardAmount, Amount: 2.5, Weight: 1},
	}
	w := NewWheel(segments)

	w.WinningIndex = 0
	require.Equal(t, domain.Money(0), w.AmountWon())

	w.WinningIndex = 1
	require.Equal(t, domain.Money(2.5), w.AmountWon())
}

func TestFreeSpinWindow(t *testing.T) {
	now := time.Now()

	require.True(t, CanFreeSpin(nil, now))
	require.True(t, NextFreeSpinAt(nil, now).IsZero())

	last := now.Add(-23 * time.Hour)
	require.False(t, CanFreeSpin(&last, now))
	require.Equal(t, last.Add(FreeSpinWindow), NextFreeSpinAt(&last, now))

	last = now.Add(-24 * time.Hour)
	require.True(t, CanFreeSpin(&last, now))
}

func TestExpectedValue(t *testing.T) {
	segments := []domain.SpinSegment{
		{ID: 1, RewardType: domain.SpinRewardNothing, Weight: 50},
		{ID: 2, RewardType: domain.SpinRewardAmount, Amount: 10, Weight: 50},
	}
	w := NewWheel(segments)
	require.InDelta(t, 5.0, w.ExpectedValue(), 1e-9)
}
